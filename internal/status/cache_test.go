package status

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/pkg/redis"
)

type fakeReportStore struct {
	data     map[string]string
	setTTLs  []time.Duration
	flushed  []string
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{data: map[string]string{}}
}

func (f *fakeReportStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeReportStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = fmt.Sprint(value)
	f.setTTLs = append(f.setTTLs, ttl)
	return nil
}

func (f *fakeReportStore) FlushPrefix(_ context.Context, prefix string) (int64, error) {
	f.flushed = append(f.flushed, prefix)
	var deleted int64
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			delete(f.data, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeReportStore) StatusKey(productID string, updatedAtUnix int64) string {
	return fmt.Sprintf("pim:product_status:%s_%d", productID, updatedAtUnix)
}

func (f *fakeReportStore) StatusKeyPrefix(productID string) string {
	if productID == "" {
		return "pim:product_status"
	}
	return "pim:product_status:" + productID
}

func TestCacheRoundTrip(t *testing.T) {
	store := newFakeReportStore()
	cache := &Cache{store: store, ttl: 5 * time.Minute}
	ctx := context.Background()

	productID := uuid.New()
	updatedAt := time.Unix(1700000000, 0)
	report := &Report{ProductID: productID, SKU: "ABC-1", GeneratedAt: time.Now().UTC()}

	if _, ok := cache.Get(ctx, productID, updatedAt); ok {
		t.Fatal("expected miss before set")
	}

	cache.Set(ctx, report, updatedAt)
	if len(store.setTTLs) != 1 || store.setTTLs[0] != 5*time.Minute {
		t.Fatalf("expected configured TTL on write, got %v", store.setTTLs)
	}

	cached, ok := cache.Get(ctx, productID, updatedAt)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if cached.ProductID != productID || cached.SKU != "ABC-1" {
		t.Fatalf("unexpected cached report %+v", cached)
	}

	// a different catalog version misses
	if _, ok := cache.Get(ctx, productID, updatedAt.Add(time.Second)); ok {
		t.Fatal("bumped updated_at must miss")
	}
}

func TestCacheInvalidateProductFlushesPrefix(t *testing.T) {
	store := newFakeReportStore()
	cache := &Cache{store: store, ttl: time.Minute}
	ctx := context.Background()

	productID := uuid.New()
	cache.Set(ctx, &Report{ProductID: productID}, time.Unix(100, 0))
	cache.Set(ctx, &Report{ProductID: productID}, time.Unix(200, 0))

	if err := cache.InvalidateProduct(ctx, productID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if len(store.flushed) != 1 || store.flushed[0] != "pim:product_status:"+productID.String() {
		t.Fatalf("expected product prefix flush, got %v", store.flushed)
	}
	if len(store.data) != 0 {
		t.Fatalf("expected every version dropped, %d left", len(store.data))
	}
}

func TestCacheToleratesCorruptEntries(t *testing.T) {
	store := newFakeReportStore()
	cache := &Cache{store: store, ttl: time.Minute}
	ctx := context.Background()

	productID := uuid.New()
	updatedAt := time.Unix(300, 0)
	store.data[store.StatusKey(productID.String(), updatedAt.Unix())] = "{not json"

	if _, ok := cache.Get(ctx, productID, updatedAt); ok {
		t.Fatal("corrupt entry must read as a miss")
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *Cache
	ctx := context.Background()
	if _, ok := cache.Get(ctx, uuid.New(), time.Now()); ok {
		t.Fatal("nil cache must miss")
	}
	cache.Set(ctx, &Report{}, time.Now())
	if err := cache.InvalidateProduct(ctx, uuid.New()); err != nil {
		t.Fatalf("nil cache invalidate: %v", err)
	}
}
