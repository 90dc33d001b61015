// Package orders manages customer orders and serves the inventory needs report.
//
// Orders and their lines are stored with GORM. Every non-cancelled order is
// considered open and feeds reconcile.ComputeInventoryNeeds together with the
// catalog snapshot held by a reconcile.CatalogCache.
//
// Invoices are rendered with gofpdf and carry a QR code of the order id.
package orders
