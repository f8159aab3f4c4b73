package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mstore-labs/pim-backend/pkg/db"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	dbtypes "github.com/mstore-labs/pim-backend/pkg/db/types"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

// StatusCacheFlusher invalidates cached status reports. A policy change
// affects every product, so the whole status namespace is flushed.
type StatusCacheFlusher interface {
	FlushPrefix(ctx context.Context, prefix string) (int64, error)
	StatusKeyPrefix(productID string) string
}

// Store persists the monitoring policy and keeps a memoized copy so the
// aggregator does not hit the settings table on every report.
type Store struct {
	client *db.Client
	cache  StatusCacheFlusher
	logg   *logger.Logger

	mu     sync.RWMutex
	loaded *Policy
}

// NewStore wires the policy store. The cache flusher is optional.
func NewStore(client *db.Client, cache StatusCacheFlusher, logg *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, errors.New("db client is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Store{client: client, cache: cache, logg: logg}, nil
}

// Load returns the persisted policy, falling back to the default when no
// row exists yet.
func (s *Store) Load(ctx context.Context) (Policy, error) {
	s.mu.RLock()
	if s.loaded != nil {
		policy := *s.loaded
		s.mu.RUnlock()
		return policy, nil
	}
	s.mu.RUnlock()

	var setting models.Setting
	err := s.client.DB().WithContext(ctx).
		Where("key = ?", SettingKey).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			policy := DefaultPolicy()
			s.memoize(policy)
			return policy, nil
		}
		return Policy{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading monitoring policy")
	}

	policy, err := policyFromValue(setting.Value)
	if err != nil {
		return Policy{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding monitoring policy")
	}
	s.memoize(policy)
	return policy, nil
}

// Update validates and persists a new policy, then drops every cached
// status report so the next aggregation reflects the change.
func (s *Store) Update(ctx context.Context, policy Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	value, err := policyToValue(policy)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding monitoring policy")
	}

	setting := models.Setting{Key: SettingKey, Value: value}
	err = s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving monitoring policy")
	}

	s.memoize(policy)

	if s.cache != nil {
		deleted, err := s.cache.FlushPrefix(ctx, s.cache.StatusKeyPrefix(""))
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()),
				"policy updated but status cache flush failed")
			return nil
		}
		s.logg.Info(s.logg.WithField(ctx, "flushed_reports", deleted),
			"monitoring policy updated")
	}
	return nil
}

// Invalidate drops the memoized copy, forcing the next Load to re-read.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.loaded = nil
	s.mu.Unlock()
}

func (s *Store) memoize(policy Policy) {
	s.mu.Lock()
	s.loaded = &policy
	s.mu.Unlock()
}

func policyFromValue(value dbtypes.JSONMap) (Policy, error) {
	raw, err := json.Marshal(map[string]any(value))
	if err != nil {
		return Policy{}, err
	}
	policy := DefaultPolicy()
	if err := json.Unmarshal(raw, &policy); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

func policyToValue(policy Policy) (dbtypes.JSONMap, error) {
	raw, err := json.Marshal(policy)
	if err != nil {
		return nil, err
	}
	out := dbtypes.JSONMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
