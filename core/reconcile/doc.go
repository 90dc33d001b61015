// Package reconcile computes inventory needs: how much of each product the
// open orders require against the stock recorded in the catalog.
//
// # Engine
//
// ComputeInventoryNeeds runs two passes over its inputs:
//
// 1. Demand: every order line is booked under its product name and under the
// variant key derived from its size, color and variant. Lines ordering a bundle
// are decomposed into their components; that demand goes to a dedicated
// "Bundle Component (variant not specified)" bucket because a bundle does not
// say which variant of a component it consumes. Components missing from the
// catalog are skipped.
//
// 2. Availability: for every product with demand, the stock of its variant
// records is summed into the product and into the matching variant buckets.
//
// The result is an ordered mapping (first-seen order) of product names to
// ProductCount. Shortage and surplus are derived on read.
//
// # Reports
//
// Summary and RestockPlan derive the aggregate counters and the "to order"
// list shown by the admin panel. NewReport bundles the three.
//
// # Cache
//
// CatalogCache keeps a TTL-bound catalog snapshot with stampede protection so
// that the orders view can recompute needs on every request cheaply.
//
// # Usage Example
//
//	needs := reconcile.ComputeInventoryNeeds(orders, entries)
//	for _, p := range needs.Products() {
//	    fmt.Println(p.Name, p.Needed, p.Available, p.Shortage())
//	}
package reconcile
