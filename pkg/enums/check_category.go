package enums

import "fmt"

// CheckCategory identifies one group of monitoring checks that can be
// toggled independently in the monitoring policy.
type CheckCategory string

const (
	CheckCategoryBasic         CheckCategory = "basic"
	CheckCategoryDescriptions  CheckCategory = "descriptions"
	CheckCategoryPhysical      CheckCategory = "physical"
	CheckCategoryAttributes    CheckCategory = "attributes"
	CheckCategoryCompatibility CheckCategory = "compatibility"
	CheckCategoryImages        CheckCategory = "images"
	CheckCategoryZeroPrice     CheckCategory = "zero_price"
	CheckCategoryLowStock      CheckCategory = "low_stock"
)

var validCheckCategories = []CheckCategory{
	CheckCategoryBasic,
	CheckCategoryDescriptions,
	CheckCategoryPhysical,
	CheckCategoryAttributes,
	CheckCategoryCompatibility,
	CheckCategoryImages,
	CheckCategoryZeroPrice,
	CheckCategoryLowStock,
}

// CheckCategories returns every known category in a stable order.
func CheckCategories() []CheckCategory {
	out := make([]CheckCategory, len(validCheckCategories))
	copy(out, validCheckCategories)
	return out
}

// String implements fmt.Stringer.
func (c CheckCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckCategory.
func (c CheckCategory) IsValid() bool {
	for _, candidate := range validCheckCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckCategory converts raw input into a CheckCategory.
func ParseCheckCategory(value string) (CheckCategory, error) {
	for _, candidate := range validCheckCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid check category %q", value)
}
