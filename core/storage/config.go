package storage

import "path"

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding product images.
	Bucket string `mapstructure:"bucket" default:"merch"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// ImagePrefix is the folder under which product images are stored.
	ImagePrefix string `mapstructure:"image_prefix" default:"products"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	imageFile     = "image.jpg"
	thumbnailFile = "thumb.jpg"
)

func (c Config) prefix() string {
	if c.ImagePrefix == "" {
		return "products"
	}
	return c.ImagePrefix
}

// ProductFolder returns the folder holding every object of a product,
// with a trailing slash so it can be used as a listing prefix.
func (c Config) ProductFolder(productID string) string {
	return path.Join(c.prefix(), productID) + "/"
}

// ImageKey returns the object key of a product's cropped image.
func (c Config) ImageKey(productID string) string {
	return path.Join(c.prefix(), productID, imageFile)
}

// ThumbnailKey returns the object key of a product's thumbnail.
func (c Config) ThumbnailKey(productID string) string {
	return path.Join(c.prefix(), productID, thumbnailFile)
}

// PlaceholderKey returns the marker object that materialises the image folder.
func (c Config) PlaceholderKey() string {
	return c.prefix() + "/.keep"
}
