// Package storage abstracts the S3-compatible object store holding product images.
//
// The Client interface wraps the subset of minio-go used by the application so
// features can be tested against the testify mock in the mocks sub-package.
//
// # Layout
//
// Every product owns a folder under the configured image prefix:
//
//	products/<product_id>/image.jpg   cropped upload
//	products/<product_id>/thumb.jpg   300px thumbnail
//
// Config exposes ImageKey, ThumbnailKey and ProductFolder to build those keys.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n, err := storage.RemoveFolder(ctx, client, cfg.Storage.Bucket, cfg.Storage.ProductFolder(id))
package storage
