package variants

import (
	"sort"

	"github.com/mstore-labs/pim-backend/pkg/db/models"
	"github.com/mstore-labs/pim-backend/pkg/enums"
)

// VariantView is one row of the merged variant list: the persisted state
// with any staged operation already applied.
type VariantView struct {
	Ref      string              `json:"ref"`
	SKU      string              `json:"sku"`
	Name     string              `json:"name"`
	Position int                 `json:"position"`
	IsActive bool                `json:"is_active"`
	Staged   *enums.StagedOpType `json:"staged,omitempty"`
}

// MergedView overlays the staged operations onto the persisted variants:
// deletions drop rows, updates rewrite them in place and staged creates
// are appended. Rows come back sorted by position, creates last within
// equal positions.
func (c *ChangeSet) MergedView(persisted []models.ProductVariant) []VariantView {
	out := make([]VariantView, 0, len(persisted)+len(c.createOrder))

	for i := range persisted {
		variant := &persisted[i]
		if _, deleted := c.deletes[variant.ID]; deleted {
			continue
		}
		view := VariantView{
			Ref:      PersistedRef(variant.ID).String(),
			SKU:      variant.SKU,
			Name:     variant.Name,
			Position: variant.Position,
			IsActive: variant.IsActive,
		}
		if patch, edited := c.updates[variant.ID]; edited {
			if patch.SKU != nil {
				view.SKU = *patch.SKU
			}
			if patch.Name != nil {
				view.Name = *patch.Name
			}
			if patch.Position != nil {
				view.Position = *patch.Position
			}
			if patch.IsActive != nil {
				view.IsActive = *patch.IsActive
			}
			op := enums.StagedOpUpdate
			view.Staged = &op
		}
		out = append(out, view)
	}

	for _, token := range c.createOrder {
		draft := c.creates[token]
		op := enums.StagedOpCreate
		out = append(out, VariantView{
			Ref:      PendingRef(token).String(),
			SKU:      draft.SKU,
			Name:     draft.Name,
			Position: draft.Position,
			IsActive: draft.IsActive,
			Staged:   &op,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}
