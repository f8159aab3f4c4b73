package enums

// IntegrationType distinguishes storefront shops from ERP connections in
// the connected-integrations summary.
type IntegrationType string

const (
	IntegrationTypeShop IntegrationType = "shop"
	IntegrationTypeErp  IntegrationType = "erp"
)

// String implements fmt.Stringer.
func (t IntegrationType) String() string {
	return string(t)
}
