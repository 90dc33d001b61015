// Package integrity provides health checks over the catalog and the image bucket.
//
// The needs report skips bundle components it cannot resolve and books
// duplicate product names under the first product. This package surfaces
// those cases before they turn into a wrong restock list.
//
// # Checks Provided
//
//   - Catalog: dangling or nested bundle components, empty bundles, negative
//     quantities, duplicate product names and unregistered product types.
//   - Structure: the bucket exists and holds the product image folder.
//   - Images: every recorded product_image object exists; image folders of
//     deleted products are listed as orphans.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/catalog : Runs the catalog check.
//   - GET /integrity/storage : Runs structure and image checks (supports ?fix=true).
package integrity
