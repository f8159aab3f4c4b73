package enums

// ProductStatus is the overall outcome of a status aggregation.
type ProductStatus string

const (
	// ProductStatusOK means no issue was found anywhere.
	ProductStatusOK ProductStatus = "ok"
	// ProductStatusIssues means at least one issue was recorded.
	ProductStatusIssues ProductStatus = "issues"
	// ProductStatusAwaitingValidation marks freshly imported products
	// still inside the import grace period. Checks are deferred until
	// the period elapses.
	ProductStatusAwaitingValidation ProductStatus = "awaiting_validation"
)

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}
