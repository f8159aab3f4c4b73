package status

import (
	"github.com/mstore-labs/pim-backend/internal/monitoring"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	"github.com/mstore-labs/pim-backend/pkg/enums"
)

// HasDiscrepancy compares a canonical value against an integration
// overlay value. A null overlay inherits the canonical value and is
// never a discrepancy; anything else must match the canonical form.
func HasDiscrepancy(canonical, overlay Normalized) bool {
	if overlay.Null {
		return false
	}
	if canonical.Null {
		return true
	}
	return canonical.Value != overlay.Value
}

// shopDivergence walks the monitored fields of one category in policy
// order and reports the first divergent field. Later divergences in the
// same category are irrelevant once one is found.
func shopDivergence(policy monitoring.Policy, category enums.CheckCategory, product *models.Product, data *models.ProductShopData) (string, bool) {
	for _, spec := range specsFor(category, policy.MonitoredFields(category)) {
		canonical := Normalize(spec.kind, spec.canonical(product))
		overlay := Normalize(spec.kind, spec.shop(data))
		if HasDiscrepancy(canonical, overlay) {
			return spec.name, true
		}
	}
	return "", false
}

// erpDivergence is shopDivergence for ERP overlays.
func erpDivergence(policy monitoring.Policy, category enums.CheckCategory, product *models.Product, data *models.ProductErpData) (string, bool) {
	for _, spec := range specsFor(category, policy.MonitoredFields(category)) {
		canonical := Normalize(spec.kind, spec.canonical(product))
		overlay := Normalize(spec.kind, spec.erp(data))
		if HasDiscrepancy(canonical, overlay) {
			return spec.name, true
		}
	}
	return "", false
}
