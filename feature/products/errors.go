package products

import "errors"

var (
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct is returned for product payloads that fail validation.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrInvalidComponent is returned for bundle recipes referencing unusable products.
	ErrInvalidComponent = errors.New("invalid bundle component")
	// ErrInvalidCrop is returned for crop rectangles smaller than the minimum size.
	ErrInvalidCrop = errors.New("invalid crop rectangle")
	// ErrNoImage is returned when a product has no uploaded image.
	ErrNoImage = errors.New("product has no image")
)
