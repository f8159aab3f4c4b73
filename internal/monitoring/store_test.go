package monitoring

import (
	"context"
	"io"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mstore-labs/pim-backend/pkg/db"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	"github.com/mstore-labs/pim-backend/pkg/enums"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

func newTestStore(t *testing.T, cache StatusCacheFlusher) *Store {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("migrate settings: %v", err)
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	store, err := NewStore(db.NewFromGorm(conn), cache, logg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

type fakeFlusher struct {
	flushedPrefixes []string
}

func (f *fakeFlusher) FlushPrefix(_ context.Context, prefix string) (int64, error) {
	f.flushedPrefixes = append(f.flushedPrefixes, prefix)
	return 3, nil
}

func (f *fakeFlusher) StatusKeyPrefix(productID string) string {
	if productID == "" {
		return "pim:product_status"
	}
	return "pim:product_status:" + productID
}

func TestLoadFallsBackToDefault(t *testing.T) {
	store := newTestStore(t, nil)

	policy, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	fields := policy.MonitoredFields(enums.CheckCategoryBasic)
	if len(fields) != 4 {
		t.Fatalf("expected default basic fields, got %v", fields)
	}
}

func TestUpdatePersistsAndFlushesCache(t *testing.T) {
	flusher := &fakeFlusher{}
	store := newTestStore(t, flusher)
	ctx := context.Background()

	custom := DefaultPolicy()
	custom.Fields[enums.CheckCategoryBasic] = []string{"name"}
	if err := store.Update(ctx, custom); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(flusher.flushedPrefixes) != 1 || flusher.flushedPrefixes[0] != "pim:product_status" {
		t.Fatalf("expected full status namespace flush, got %v", flusher.flushedPrefixes)
	}

	// drop the memo so the next load goes back to the settings table
	store.Invalidate()
	reloaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	fields := reloaded.MonitoredFields(enums.CheckCategoryBasic)
	if len(fields) != 1 || fields[0] != "name" {
		t.Fatalf("expected persisted policy to survive reload, got %v", fields)
	}
}

func TestUpdateOverwritesExistingRow(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	first := DefaultPolicy()
	first.Fields[enums.CheckCategoryBasic] = []string{"name"}
	if err := store.Update(ctx, first); err != nil {
		t.Fatalf("first update: %v", err)
	}

	second := DefaultPolicy()
	second.Fields[enums.CheckCategoryBasic] = []string{"manufacturer"}
	if err := store.Update(ctx, second); err != nil {
		t.Fatalf("second update: %v", err)
	}

	store.Invalidate()
	policy, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	fields := policy.MonitoredFields(enums.CheckCategoryBasic)
	if len(fields) != 1 || fields[0] != "manufacturer" {
		t.Fatalf("expected second policy to win, got %v", fields)
	}
}

func TestUpdateRejectsInvalidPolicy(t *testing.T) {
	store := newTestStore(t, nil)

	bad := Policy{Fields: map[enums.CheckCategory][]string{
		enums.CheckCategoryLowStock: {"quantity"},
	}}
	if err := store.Update(context.Background(), bad); err == nil {
		t.Fatal("expected invalid policy to be rejected")
	}
}
