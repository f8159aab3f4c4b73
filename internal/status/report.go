package status

import (
	"time"

	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/pkg/enums"
)

// Report is the aggregated health of one product across every connected
// integration. It serializes to JSON both for the API and for caching.
type Report struct {
	ProductID    uuid.UUID           `json:"product_id"`
	SKU          string              `json:"sku"`
	Status       enums.ProductStatus `json:"status"`
	GlobalIssues []enums.Issue       `json:"global_issues"`
	Integrations []IntegrationReport `json:"integrations"`
	Variants     []VariantReport     `json:"variants"`
	Summary      ConnectionSummary   `json:"summary"`
	GeneratedAt  time.Time           `json:"generated_at"`
}

// IntegrationReport carries the findings for one shop or ERP connection
// along with the label the UI badges it with.
type IntegrationReport struct {
	Type          enums.IntegrationType `json:"type"`
	IntegrationID uuid.UUID             `json:"integration_id"`
	Name          string                `json:"name"`
	LabelColor    string                `json:"label_color"`
	LabelIcon     string                `json:"label_icon"`
	Issues        []IntegrationIssue    `json:"issues"`
}

// IntegrationIssue is one finding against an integration. For field
// categories, Field names the first divergent field.
type IntegrationIssue struct {
	Issue enums.Issue `json:"issue"`
	Field string      `json:"field,omitempty"`
}

// VariantReport carries the findings for one canonical variant.
type VariantReport struct {
	VariantID uuid.UUID     `json:"variant_id"`
	SKU       string        `json:"sku"`
	Issues    []enums.Issue `json:"issues"`
}

// ConnectionSummary counts connected integrations and how many of them
// have at least one issue.
type ConnectionSummary struct {
	ShopCount  int `json:"shop_count"`
	ErpCount   int `json:"erp_count"`
	WithIssues int `json:"with_issues"`
}

// HasIssues reports whether anything was flagged anywhere.
func (r *Report) HasIssues() bool {
	if len(r.GlobalIssues) > 0 {
		return true
	}
	for _, integration := range r.Integrations {
		if len(integration.Issues) > 0 {
			return true
		}
	}
	for _, variant := range r.Variants {
		if len(variant.Issues) > 0 {
			return true
		}
	}
	return false
}

// finalize fills the summary and the overall status once every check has
// run. Reports inside the import grace period keep their status.
func (r *Report) finalize() {
	for _, integration := range r.Integrations {
		switch integration.Type {
		case enums.IntegrationTypeShop:
			r.Summary.ShopCount++
		case enums.IntegrationTypeErp:
			r.Summary.ErpCount++
		}
		if len(integration.Issues) > 0 {
			r.Summary.WithIssues++
		}
	}

	if r.Status == enums.ProductStatusAwaitingValidation {
		return
	}
	if r.HasIssues() {
		r.Status = enums.ProductStatusIssues
		return
	}
	r.Status = enums.ProductStatusOK
}
