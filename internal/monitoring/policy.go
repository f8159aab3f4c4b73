package monitoring

import (
	"fmt"

	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"

	"github.com/mstore-labs/pim-backend/pkg/enums"
)

// SettingKey is the settings row the policy persists under.
const SettingKey = "product_status_monitoring"

// fieldCategories are the categories whose field lists operators can edit.
var fieldCategories = []enums.CheckCategory{
	enums.CheckCategoryBasic,
	enums.CheckCategoryDescriptions,
	enums.CheckCategoryPhysical,
}

// Policy decides which categories run at all and which fields
// participate in cross-system discrepancy checks. A category absent
// from Enabled is off; Fields minus Ignored is the effective monitored
// set for the field categories.
type Policy struct {
	Enabled map[enums.CheckCategory]bool     `json:"enabled"`
	Fields  map[enums.CheckCategory][]string `json:"fields"`
	Ignored map[enums.CheckCategory][]string `json:"ignored"`
}

// DefaultPolicy returns the built-in monitoring configuration. Every
// category starts enabled.
func DefaultPolicy() Policy {
	enabled := map[enums.CheckCategory]bool{}
	for _, category := range enums.CheckCategories() {
		enabled[category] = true
	}
	return Policy{
		Enabled: enabled,
		Fields: map[enums.CheckCategory][]string{
			enums.CheckCategoryBasic:        {"name", "manufacturer", "tax_rate", "is_active"},
			enums.CheckCategoryDescriptions: {"short_description", "long_description"},
			enums.CheckCategoryPhysical:     {"weight", "height", "width", "length"},
		},
		Ignored: map[enums.CheckCategory][]string{
			enums.CheckCategoryBasic:        {"supplier_code", "ean", "sort_order"},
			enums.CheckCategoryDescriptions: {"meta_title", "meta_description"},
		},
	}
}

// IsEnabled reports whether checks in the category may run.
func (p Policy) IsEnabled(category enums.CheckCategory) bool {
	return p.Enabled[category]
}

// MonitoredFields returns the effective field list for a category in
// stable order. A disabled category monitors nothing.
func (p Policy) MonitoredFields(category enums.CheckCategory) []string {
	if !p.IsEnabled(category) {
		return nil
	}
	fields := p.Fields[category]
	if len(fields) == 0 {
		return nil
	}
	ignored := map[string]struct{}{}
	for _, name := range p.Ignored[category] {
		ignored[name] = struct{}{}
	}
	out := make([]string, 0, len(fields))
	for _, name := range fields {
		if _, skip := ignored[name]; skip {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Validate rejects unknown categories and empty field names.
func (p Policy) Validate() error {
	for category := range p.Enabled {
		if !category.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unknown check category %q", category))
		}
	}
	for _, section := range []map[enums.CheckCategory][]string{p.Fields, p.Ignored} {
		for category, fields := range section {
			if !isFieldCategory(category) {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("category %q does not support field monitoring", category))
			}
			for _, name := range fields {
				if name == "" {
					return pkgerrors.New(pkgerrors.CodeValidation,
						fmt.Sprintf("category %q contains an empty field name", category))
				}
			}
		}
	}
	return nil
}

func isFieldCategory(category enums.CheckCategory) bool {
	for _, candidate := range fieldCategories {
		if candidate == category {
			return true
		}
	}
	return false
}
