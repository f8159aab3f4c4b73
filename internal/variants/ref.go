package variants

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// VariantRef identifies a variant inside an editing session. A ref is
// either persisted (a database row) or pending (a staged create known
// only by its session token). The zero value refers to nothing.
type VariantRef struct {
	id    uuid.UUID
	token uint64
}

// PersistedRef refers to an existing variant row.
func PersistedRef(id uuid.UUID) VariantRef {
	return VariantRef{id: id}
}

// PendingRef refers to a staged create. Tokens are allocated by the
// change set and start at 1.
func PendingRef(token uint64) VariantRef {
	return VariantRef{token: token}
}

// Persisted returns the row id when the ref points at a persisted variant.
func (r VariantRef) Persisted() (uuid.UUID, bool) {
	if r.token != 0 || r.id == uuid.Nil {
		return uuid.Nil, false
	}
	return r.id, true
}

// Pending returns the session token when the ref points at a staged create.
func (r VariantRef) Pending() (uint64, bool) {
	if r.token == 0 {
		return 0, false
	}
	return r.token, true
}

// IsZero reports whether the ref points at nothing.
func (r VariantRef) IsZero() bool {
	return r.token == 0 && r.id == uuid.Nil
}

// String implements fmt.Stringer.
func (r VariantRef) String() string {
	if token, ok := r.Pending(); ok {
		return fmt.Sprintf("pending:%d", token)
	}
	if id, ok := r.Persisted(); ok {
		return "variant:" + id.String()
	}
	return "variant:none"
}

// ParseRef reverses String. It accepts "pending:<token>", "variant:<uuid>"
// and a bare uuid.
func ParseRef(raw string) (VariantRef, error) {
	raw = strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(raw, "pending:"); ok {
		token, err := strconv.ParseUint(rest, 10, 64)
		if err != nil || token == 0 {
			return VariantRef{}, fmt.Errorf("invalid pending ref %q", raw)
		}
		return PendingRef(token), nil
	}
	rest := strings.TrimPrefix(raw, "variant:")
	id, err := uuid.Parse(rest)
	if err != nil || id == uuid.Nil {
		return VariantRef{}, fmt.Errorf("invalid variant ref %q", raw)
	}
	return PersistedRef(id), nil
}
