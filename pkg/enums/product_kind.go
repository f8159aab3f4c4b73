package enums

import "fmt"

// ProductKind classifies a catalog product and drives the conditional
// monitoring checks (attribute mapping for vehicles, compatibility
// mapping for spare parts).
type ProductKind string

const (
	ProductKindVehicle   ProductKind = "vehicle"
	ProductKindSparePart ProductKind = "spare_part"
	ProductKindAccessory ProductKind = "accessory"
	ProductKindOther     ProductKind = "other"
)

var validProductKinds = []ProductKind{
	ProductKindVehicle,
	ProductKindSparePart,
	ProductKindAccessory,
	ProductKindOther,
}

// String implements fmt.Stringer.
func (k ProductKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ProductKind.
func (k ProductKind) IsValid() bool {
	for _, candidate := range validProductKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseProductKind converts raw input into a ProductKind.
func ParseProductKind(value string) (ProductKind, error) {
	for _, candidate := range validProductKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product kind %q", value)
}
