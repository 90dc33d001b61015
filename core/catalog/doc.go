// Package catalog defines the merchandise domain model shared by every feature.
//
// A catalog is a list of entries. Each entry pairs a Product with either its
// variant stock records (item products) or its bundle recipe (bundle products).
// Orders reference products by name and carry optional variant details.
//
// # Ingestion
//
// Raw values coming from the API, the database or fixture files are normalized
// here, before they reach any computation:
//   - Product types are validated against a Registry built from configuration.
//   - Bundle recipe rows are decoded from either ["<id>", qty] or
//     [{"product_id": "<id>", ...}, qty] into a single Component type.
//   - Order statuses are parsed into the closed OrderStatus set.
//
// # Usage
//
//	reg := catalog.NewRegistry(cfg.Catalog.TypeList())
//	t, err := reg.Parse("Shirt")
//	if errors.Is(err, catalog.ErrInvalidProductType) { ... }
package catalog
