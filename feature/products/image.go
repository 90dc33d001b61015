package products

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// MinCropSize is the smallest accepted crop edge, in source pixels.
	MinCropSize = 10
	// ThumbnailSize bounds the longest edge of generated thumbnails.
	ThumbnailSize = 300
	// MaxImagePixels caps the decoded size of an upload.
	MaxImagePixels = 40_000_000

	jpegQuality = 85
)

// CropRect is a crop selection made on a scaled preview of the image.
// Display dimensions give the preview size; zero means the preview was the
// source itself.
type CropRect struct {
	X             float64
	Y             float64
	Width         float64
	Height        float64
	DisplayWidth  float64
	DisplayHeight float64
}

// IsZero reports whether no crop was requested.
func (r CropRect) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// Scale maps the rectangle onto source pixels and clamps it to bounds.
func (r CropRect) Scale(bounds image.Rectangle) (image.Rectangle, error) {
	scaleX, scaleY := 1.0, 1.0
	if r.DisplayWidth > 0 {
		scaleX = float64(bounds.Dx()) / r.DisplayWidth
	}
	if r.DisplayHeight > 0 {
		scaleY = float64(bounds.Dy()) / r.DisplayHeight
	}

	x0 := bounds.Min.X + int(math.Round(r.X*scaleX))
	y0 := bounds.Min.Y + int(math.Round(r.Y*scaleY))
	x1 := x0 + int(math.Round(r.Width*scaleX))
	y1 := y0 + int(math.Round(r.Height*scaleY))

	rect := image.Rect(x0, y0, x1, y1).Intersect(bounds)
	if rect.Dx() < MinCropSize || rect.Dy() < MinCropSize {
		return image.Rectangle{}, fmt.Errorf("%w: %dx%d is below %dx%d", ErrInvalidCrop, rect.Dx(), rect.Dy(), MinCropSize, MinCropSize)
	}
	return rect, nil
}

// ProcessedImage holds the encoded upload and its thumbnail.
type ProcessedImage struct {
	Image     []byte
	Thumbnail []byte
	Width     int
	Height    int
}

// ProcessImage decodes r, applies crop when set and encodes a JPEG plus a thumbnail.
func ProcessImage(r io.Reader, crop CropRect) (*ProcessedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	// The byte limit does not bound decoded memory, so check the header first.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image: %v", ErrInvalidProduct, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, fmt.Errorf("%w: image is %dx%d, above the %d pixel limit",
			ErrInvalidProduct, cfg.Width, cfg.Height, MaxImagePixels)
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image: %v", ErrInvalidProduct, err)
	}

	img := src
	if !crop.IsZero() {
		rect, err := crop.Scale(src.Bounds())
		if err != nil {
			return nil, err
		}
		img = imaging.Crop(src, rect)
	}

	var full bytes.Buffer
	if err := imaging.Encode(&full, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	thumb := imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos)
	var small bytes.Buffer
	if err := imaging.Encode(&small, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return &ProcessedImage{
		Image:     full.Bytes(),
		Thumbnail: small.Bytes(),
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
	}, nil
}
