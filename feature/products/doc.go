// Package products implements the catalog back office: item and bundle
// products, their variant stock and product images.
//
// Rows live in four GORM tables (products, items, bundles, bundle_items) and
// are assembled into catalog.Entry values by the Repository. The Service
// validates writes, notifies OnChange subscribers (the catalog snapshot cache)
// and stores images in the object store after cropping them with imaging.
//
// # Routes
//
//	GET    /products/types
//	GET    /products/all?search=
//	GET    /products/:id
//	POST   /products/create-item
//	POST   /products/create-bundle
//	PATCH  /products/item/:id
//	PATCH  /products/bundle/:id
//	DELETE /products/:id
//	POST   /products/:id/image
//	GET    /products/:id/image?thumb=true
package products
