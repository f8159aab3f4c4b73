package enums

// FieldKind tells the normalizer how to canonicalize a raw field value
// before comparison.
type FieldKind string

const (
	FieldKindNumeric FieldKind = "numeric"
	FieldKindBoolean FieldKind = "boolean"
	FieldKindText    FieldKind = "text"
	FieldKindOther   FieldKind = "other"
)

// String implements fmt.Stringer.
func (k FieldKind) String() string {
	return string(k)
}
