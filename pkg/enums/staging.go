package enums

// StagedOpType names the pending operation recorded for one variant
// identity inside an editing session.
type StagedOpType string

const (
	StagedOpCreate StagedOpType = "create"
	StagedOpUpdate StagedOpType = "update"
	StagedOpDelete StagedOpType = "delete"
)

// String implements fmt.Stringer.
func (t StagedOpType) String() string {
	return string(t)
}

// OverrideOp names the per-shop override operation stored for a variant.
type OverrideOp string

const (
	OverrideOpAdd      OverrideOp = "add"
	OverrideOpOverride OverrideOp = "override"
	OverrideOpDelete   OverrideOp = "delete"
	OverrideOpInherit  OverrideOp = "inherit"
)

// String implements fmt.Stringer.
func (o OverrideOp) String() string {
	return string(o)
}
