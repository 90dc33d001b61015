package reconcile

import "strings"

const (
	// DefaultVariantKey is the key of a bucket with no size, color or variant.
	DefaultVariantKey = "default"

	// BundleVariantKey collects demand that comes from bundles and cannot be
	// attributed to a specific variant of the component.
	BundleVariantKey = "Bundle Component (variant not specified)"

	// BundleVariantLabel is the variant detail shown for the bundle bucket.
	BundleVariantLabel = "From bundle - select variant manually"
)

// VariantKey joins the non-empty values of size, color and variant with " - ",
// in that order, or returns DefaultVariantKey when all are empty.
func VariantKey(size, color, variant string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{size, color, variant} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return DefaultVariantKey
	}
	return strings.Join(parts, " - ")
}

// Label builds the display label of a bucket: "Size: M, Color: Black, <variant>",
// falling back to the key when the details are empty.
func Label(key string, d VariantDetails) string {
	var parts []string
	if d.Size != "" {
		parts = append(parts, "Size: "+d.Size)
	}
	if d.Color != "" {
		parts = append(parts, "Color: "+d.Color)
	}
	if d.Variant != "" {
		parts = append(parts, d.Variant)
	}
	if len(parts) == 0 {
		return key
	}
	return strings.Join(parts, ", ")
}
