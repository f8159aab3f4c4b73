package variants

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstore-labs/pim-backend/pkg/db"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
)

// DBApplier persists staged variant operations. Every operation bumps
// the product's updated_at inside the same transaction so cached status
// reports keyed on it stop matching.
type DBApplier struct {
	client *db.Client
}

// NewDBApplier wraps the database client.
func NewDBApplier(client *db.Client) *DBApplier {
	return &DBApplier{client: client}
}

// CreateVariant inserts a canonical variant row.
func (a *DBApplier) CreateVariant(ctx context.Context, productID uuid.UUID, draft Draft) (uuid.UUID, error) {
	variant := models.ProductVariant{
		ID:        uuid.New(),
		ProductID: productID,
		SKU:       draft.SKU,
		Name:      draft.Name,
		Position:  draft.Position,
		IsActive:  draft.IsActive,
	}
	err := a.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&variant).Error; err != nil {
			return translateWriteError(err, "create variant "+draft.SKU)
		}
		return touchProduct(tx, productID)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return variant.ID, nil
}

// UpdateVariant applies a sparse patch to a variant row.
func (a *DBApplier) UpdateVariant(ctx context.Context, variantID uuid.UUID, patch Patch) error {
	columns := map[string]any{}
	if patch.SKU != nil {
		columns["sku"] = strings.TrimSpace(*patch.SKU)
	}
	if patch.Name != nil {
		columns["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Position != nil {
		columns["position"] = *patch.Position
	}
	if patch.IsActive != nil {
		columns["is_active"] = *patch.IsActive
	}
	if len(columns) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "update patch is empty")
	}

	return a.client.WithTx(ctx, func(tx *gorm.DB) error {
		var variant models.ProductVariant
		if err := tx.Select("id", "product_id").First(&variant, "id = ?", variantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant "+variantID.String()+" not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load variant")
		}
		result := tx.Model(&models.ProductVariant{}).Where("id = ?", variantID).Updates(columns)
		if result.Error != nil {
			return translateWriteError(result.Error, "update variant "+variantID.String())
		}
		return touchProduct(tx, variant.ProductID)
	})
}

// DeleteVariant removes a variant row and its dependents via cascade.
func (a *DBApplier) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	return a.client.WithTx(ctx, func(tx *gorm.DB) error {
		var variant models.ProductVariant
		if err := tx.Select("id", "product_id").First(&variant, "id = ?", variantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant "+variantID.String()+" not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load variant")
		}
		if err := tx.Delete(&models.ProductVariant{}, "id = ?", variantID).Error; err != nil {
			return translateWriteError(err, "delete variant "+variantID.String())
		}
		return touchProduct(tx, variant.ProductID)
	})
}

// Variants loads the canonical variants of a product ordered by position.
func (a *DBApplier) Variants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	var out []models.ProductVariant
	err := a.client.DB().WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position asc, sku asc").
		Find(&out).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load variants")
	}
	return out, nil
}

func touchProduct(tx *gorm.DB, productID uuid.UUID) error {
	err := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("updated_at", time.Now().UTC()).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "touch product")
	}
	return nil
}

func translateWriteError(err error, op string) error {
	if isUniqueViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, op+": sku already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}

// isUniqueViolation matches both postgres and the sqlite used in tests,
// which only exposes the violation through the message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return db.IsUniqueViolation(err, "") ||
		strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
