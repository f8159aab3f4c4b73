package redis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if err := client.Set(ctx, "pim:product_status:p1_100", `{"ok":true}`, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.Get(ctx, "pim:product_status:p1_100")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `{"ok":true}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := client.Del(ctx, "pim:product_status:p1_100"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, "pim:product_status:p1_100"); err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestFlushPrefix(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	for _, key := range []string{
		"pim:product_status:p1_100",
		"pim:product_status:p1_200",
		"pim:product_status:p2_100",
		"pim:other:p1",
	} {
		if err := client.Set(ctx, key, "x", 0); err != nil {
			t.Fatalf("set %s failed: %v", key, err)
		}
	}

	deleted, err := client.FlushPrefix(ctx, client.StatusKeyPrefix("p1"))
	if err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deletions, got %d", deleted)
	}
	if _, err := client.Get(ctx, "pim:product_status:p2_100"); err != nil {
		t.Fatalf("unrelated product key should survive: %v", err)
	}
	if _, err := client.Get(ctx, "pim:other:p1"); err != nil {
		t.Fatalf("non-status key should survive: %v", err)
	}

	deleted, err = client.FlushPrefix(ctx, client.StatusKeyPrefix(""))
	if err != nil {
		t.Fatalf("flush all failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected remaining status key flushed, got %d", deleted)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.StatusKey("prod-1", 1700000000); got != "pim:product_status:prod-1_1700000000" {
		t.Fatalf("unexpected status key %s", got)
	}
	if got := client.StatusKeyPrefix("prod-1"); got != "pim:product_status:prod-1" {
		t.Fatalf("unexpected status prefix %s", got)
	}
	if got := client.StatusKeyPrefix(""); got != "pim:product_status" {
		t.Fatalf("unexpected global prefix %s", got)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (m *mockCmdable) Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	keys := make([]string, 0)
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return redis.NewScanCmdResult(keys, 0, nil)
}
