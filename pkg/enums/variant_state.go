package enums

import "fmt"

// VariantShopState is the four-way classification of a shop-side variant
// against the canonical variant list.
type VariantShopState string

const (
	// VariantShopStateSame means an override record exists and matches
	// the canonical variant field for field.
	VariantShopStateSame VariantShopState = "same"
	// VariantShopStateDifferent means an override record exists and at
	// least one field diverges from the canonical variant.
	VariantShopStateDifferent VariantShopState = "different"
	// VariantShopStateInherited means the shop variant maps onto a
	// canonical variant with no override record.
	VariantShopStateInherited VariantShopState = "inherited"
	// VariantShopStateShopOnly means no canonical variant matches the
	// shop variant's base SKU.
	VariantShopStateShopOnly VariantShopState = "shop_only"
)

var validVariantShopStates = []VariantShopState{
	VariantShopStateSame,
	VariantShopStateDifferent,
	VariantShopStateInherited,
	VariantShopStateShopOnly,
}

// String implements fmt.Stringer.
func (s VariantShopState) String() string {
	return string(s)
}

// IsValid reports whether the value is a known VariantShopState.
func (s VariantShopState) IsValid() bool {
	for _, candidate := range validVariantShopStates {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseVariantShopState converts raw input into a VariantShopState.
func ParseVariantShopState(value string) (VariantShopState, error) {
	for _, candidate := range validVariantShopStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid variant shop state %q", value)
}
