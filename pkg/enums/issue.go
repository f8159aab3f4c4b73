package enums

// Issue is a single monitoring finding recorded against a product, one
// of its integrations, or one of its variants.
type Issue string

// Global product issues.
const (
	IssueZeroPrice    Issue = "zero_price"
	IssueLowStock     Issue = "low_stock"
	IssueNoImages     Issue = "no_images"
	IssueNotConnected Issue = "not_connected"
)

// Per-integration issues.
const (
	IssueBasicData     Issue = "basic_data"
	IssueDescriptions  Issue = "descriptions"
	IssuePhysical      Issue = "physical"
	IssueImagesMapping Issue = "images_mapping"
	IssueAttributes    Issue = "attributes"
	IssueCompatibility Issue = "compatibility"
)

// Per-variant issues.
const (
	IssueVariantNoImages  Issue = "variant_no_images"
	IssueVariantZeroPrice Issue = "variant_zero_price"
	IssueVariantNoStock   Issue = "variant_no_stock"
)

// String implements fmt.Stringer.
func (i Issue) String() string {
	return string(i)
}
