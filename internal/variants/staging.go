package variants

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/pkg/enums"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
)

// Draft is the full payload for a staged create.
type Draft struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

// Patch is a sparse update; nil fields keep their current value.
type Patch struct {
	SKU      *string `json:"sku,omitempty"`
	Name     *string `json:"name,omitempty"`
	Position *int    `json:"position,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (p Patch) isEmpty() bool {
	return p.SKU == nil && p.Name == nil && p.Position == nil && p.IsActive == nil
}

func (p *Patch) merge(other Patch) {
	if other.SKU != nil {
		p.SKU = other.SKU
	}
	if other.Name != nil {
		p.Name = other.Name
	}
	if other.Position != nil {
		p.Position = other.Position
	}
	if other.IsActive != nil {
		p.IsActive = other.IsActive
	}
}

func (d *Draft) apply(patch Patch) {
	if patch.SKU != nil {
		d.SKU = *patch.SKU
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Position != nil {
		d.Position = *patch.Position
	}
	if patch.IsActive != nil {
		d.IsActive = *patch.IsActive
	}
}

// ChangeSet accumulates staged variant operations for one product until
// they are committed or discarded. It is not safe for concurrent use;
// sessions serialize access.
type ChangeSet struct {
	productID uuid.UUID

	// snapshot of the variant ids that existed when the session opened;
	// refs to anything else are rejected at stage time
	persisted map[uuid.UUID]struct{}

	nextToken   uint64
	creates     map[uint64]*Draft
	createOrder []uint64

	updates     map[uuid.UUID]*Patch
	updateOrder []uuid.UUID

	deletes     map[uuid.UUID]struct{}
	deleteOrder []uuid.UUID
}

// NewChangeSet opens an empty change set for the product. The persisted
// ids are the variants that exist at open time.
func NewChangeSet(productID uuid.UUID, persisted []uuid.UUID) *ChangeSet {
	known := make(map[uuid.UUID]struct{}, len(persisted))
	for _, id := range persisted {
		known[id] = struct{}{}
	}
	return &ChangeSet{
		productID: productID,
		persisted: known,
		creates:   map[uint64]*Draft{},
		updates:   map[uuid.UUID]*Patch{},
		deletes:   map[uuid.UUID]struct{}{},
	}
}

// ProductID returns the product this change set belongs to.
func (c *ChangeSet) ProductID() uuid.UUID {
	return c.productID
}

// StageCreate records a new variant and returns its pending ref.
func (c *ChangeSet) StageCreate(draft Draft) (VariantRef, error) {
	draft.SKU = strings.TrimSpace(draft.SKU)
	if draft.SKU == "" {
		return VariantRef{}, pkgerrors.New(pkgerrors.CodeValidation, "variant sku is required")
	}
	draft.Name = strings.TrimSpace(draft.Name)

	c.nextToken++
	token := c.nextToken
	c.creates[token] = &draft
	c.createOrder = append(c.createOrder, token)
	return PendingRef(token), nil
}

// StageUpdate records a sparse edit. Editing a pending create rewrites
// its draft in place; editing a variant staged for deletion conflicts.
func (c *ChangeSet) StageUpdate(ref VariantRef, patch Patch) error {
	if patch.isEmpty() {
		return pkgerrors.New(pkgerrors.CodeValidation, "update patch is empty")
	}

	if token, ok := ref.Pending(); ok {
		draft, exists := c.creates[token]
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("no staged create for %s", ref))
		}
		draft.apply(patch)
		return nil
	}

	id, ok := ref.Persisted()
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "ref points at nothing")
	}
	if _, known := c.persisted[id]; !known {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("%s is not a variant of this product", ref))
	}
	if _, deleted := c.deletes[id]; deleted {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("%s is staged for deletion", ref))
	}

	if existing, exists := c.updates[id]; exists {
		existing.merge(patch)
		return nil
	}
	c.updates[id] = &patch
	c.updateOrder = append(c.updateOrder, id)
	return nil
}

// StageDelete marks a variant for deletion. Deleting a pending create
// removes it from the set entirely; nothing ever hits the database.
func (c *ChangeSet) StageDelete(ref VariantRef) error {
	if token, ok := ref.Pending(); ok {
		if _, exists := c.creates[token]; !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("no staged create for %s", ref))
		}
		delete(c.creates, token)
		c.createOrder = removeToken(c.createOrder, token)
		return nil
	}

	id, ok := ref.Persisted()
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "ref points at nothing")
	}
	if _, known := c.persisted[id]; !known {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("%s is not a variant of this product", ref))
	}
	if _, exists := c.deletes[id]; exists {
		return nil
	}
	c.deletes[id] = struct{}{}
	c.deleteOrder = append(c.deleteOrder, id)

	// a pending edit on a deleted variant is moot
	if _, exists := c.updates[id]; exists {
		delete(c.updates, id)
		c.updateOrder = removeID(c.updateOrder, id)
	}
	return nil
}

// Undo removes whatever operation is staged for the ref.
func (c *ChangeSet) Undo(ref VariantRef) error {
	if token, ok := ref.Pending(); ok {
		if _, exists := c.creates[token]; !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("nothing staged for %s", ref))
		}
		delete(c.creates, token)
		c.createOrder = removeToken(c.createOrder, token)
		return nil
	}

	id, ok := ref.Persisted()
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "ref points at nothing")
	}
	found := false
	if _, exists := c.updates[id]; exists {
		delete(c.updates, id)
		c.updateOrder = removeID(c.updateOrder, id)
		found = true
	}
	if _, exists := c.deletes[id]; exists {
		delete(c.deletes, id)
		c.deleteOrder = removeID(c.deleteOrder, id)
		found = true
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("nothing staged for %s", ref))
	}
	return nil
}

// DiscardAll empties the change set.
func (c *ChangeSet) DiscardAll() {
	c.creates = map[uint64]*Draft{}
	c.createOrder = nil
	c.updates = map[uuid.UUID]*Patch{}
	c.updateOrder = nil
	c.deletes = map[uuid.UUID]struct{}{}
	c.deleteOrder = nil
}

// HasChanges reports whether anything is staged.
func (c *ChangeSet) HasChanges() bool {
	return len(c.creates) > 0 || len(c.updates) > 0 || len(c.deletes) > 0
}

// Counts returns how many operations of each type are staged.
func (c *ChangeSet) Counts() (creates, updates, deletes int) {
	return len(c.creates), len(c.updates), len(c.deletes)
}

// StagedOp describes one staged operation for display.
type StagedOp struct {
	Ref   VariantRef         `json:"-"`
	RefID string             `json:"ref"`
	Op    enums.StagedOpType `json:"op"`
	Draft *Draft             `json:"draft,omitempty"`
	Patch *Patch             `json:"patch,omitempty"`
}

// Staged lists every staged operation in creates, updates, deletes order.
func (c *ChangeSet) Staged() []StagedOp {
	out := make([]StagedOp, 0, len(c.createOrder)+len(c.updateOrder)+len(c.deleteOrder))
	for _, token := range c.createOrder {
		draft := *c.creates[token]
		ref := PendingRef(token)
		out = append(out, StagedOp{Ref: ref, RefID: ref.String(), Op: enums.StagedOpCreate, Draft: &draft})
	}
	for _, id := range c.updateOrder {
		patch := *c.updates[id]
		ref := PersistedRef(id)
		out = append(out, StagedOp{Ref: ref, RefID: ref.String(), Op: enums.StagedOpUpdate, Patch: &patch})
	}
	for _, id := range c.deleteOrder {
		ref := PersistedRef(id)
		out = append(out, StagedOp{Ref: ref, RefID: ref.String(), Op: enums.StagedOpDelete})
	}
	return out
}

func removeToken(tokens []uint64, target uint64) []uint64 {
	out := tokens[:0]
	for _, token := range tokens {
		if token != target {
			out = append(out, token)
		}
	}
	return out
}

func removeID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// Applier persists staged operations.
type Applier interface {
	CreateVariant(ctx context.Context, productID uuid.UUID, draft Draft) (uuid.UUID, error)
	UpdateVariant(ctx context.Context, variantID uuid.UUID, patch Patch) error
	DeleteVariant(ctx context.Context, variantID uuid.UUID) error
}

// CommitFailure records one operation that could not be applied.
type CommitFailure struct {
	Ref   string             `json:"ref"`
	Op    enums.StagedOpType `json:"op"`
	Error string             `json:"error"`
}

// CommitResult summarizes a commit run.
type CommitResult struct {
	Created int             `json:"created"`
	Updated int             `json:"updated"`
	Deleted int             `json:"deleted"`
	Failed  []CommitFailure `json:"failed,omitempty"`

	// CreatedIDs maps pending tokens to the row ids they became.
	CreatedIDs map[uint64]uuid.UUID `json:"-"`
}

// Commit applies every staged operation in creates, updates, deletes
// order. Successful operations leave the set; failed ones stay staged so
// the caller can fix and retry. A partial failure returns both the
// result and a PARTIAL_COMMIT error carrying the failures.
func (c *ChangeSet) Commit(ctx context.Context, applier Applier) (CommitResult, error) {
	result := CommitResult{CreatedIDs: map[uint64]uuid.UUID{}}

	for _, token := range append([]uint64(nil), c.createOrder...) {
		draft := c.creates[token]
		id, err := applier.CreateVariant(ctx, c.productID, *draft)
		if err != nil {
			result.Failed = append(result.Failed, CommitFailure{
				Ref: PendingRef(token).String(), Op: enums.StagedOpCreate, Error: err.Error(),
			})
			continue
		}
		result.Created++
		result.CreatedIDs[token] = id
		c.persisted[id] = struct{}{}
		delete(c.creates, token)
		c.createOrder = removeToken(c.createOrder, token)
	}

	for _, id := range append([]uuid.UUID(nil), c.updateOrder...) {
		patch := c.updates[id]
		if err := applier.UpdateVariant(ctx, id, *patch); err != nil {
			result.Failed = append(result.Failed, CommitFailure{
				Ref: PersistedRef(id).String(), Op: enums.StagedOpUpdate, Error: err.Error(),
			})
			continue
		}
		result.Updated++
		delete(c.updates, id)
		c.updateOrder = removeID(c.updateOrder, id)
	}

	for _, id := range append([]uuid.UUID(nil), c.deleteOrder...) {
		if err := applier.DeleteVariant(ctx, id); err != nil {
			result.Failed = append(result.Failed, CommitFailure{
				Ref: PersistedRef(id).String(), Op: enums.StagedOpDelete, Error: err.Error(),
			})
			continue
		}
		result.Deleted++
		delete(c.persisted, id)
		delete(c.deletes, id)
		c.deleteOrder = removeID(c.deleteOrder, id)
	}

	if len(result.Failed) > 0 {
		return result, pkgerrors.New(pkgerrors.CodePartialCommit,
			fmt.Sprintf("%d staged operation(s) failed", len(result.Failed))).
			WithDetails(result.Failed)
	}
	return result, nil
}
