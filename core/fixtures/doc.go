// Package fixtures reads YAML documents describing a catalog and a batch of
// orders. The seed command writes them to the database and the needs command
// can compute a report straight from one without touching the database.
//
// # Format
//
//	products:
//	  - id: p-shirt
//	    name: CCS T-Shirt
//	    type: shirt
//	    price: "350.00"
//	    items:
//	      - {size: Medium, color: Black, quantity: 5}
//	  - name: Bundle A
//	    type: bundle
//	    components:
//	      - {product: p-shirt, quantity: 1}
//	orders:
//	  - id: ORD-1
//	    name: Juan
//	    items:
//	      - {product: CCS T-Shirt, size: Medium, color: Black, quantity: 2}
package fixtures
