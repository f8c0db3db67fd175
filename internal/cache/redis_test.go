package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gometeo/guide/internal/model"
)

func setupTestCache(t *testing.T) (*ViewCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := NewWithClient(client, time.Minute, logger)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestViewCacheRoundTrip(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()
	key := ViewKey("10001", model.UnitsImperial)

	view := model.ViewModel{
		Location:   "10001",
		HeaderText: "NEW YORK",
		Links:      map[string]string{"event_link_0": "https://example.com"},
	}
	if err := c.Set(ctx, key, view); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.HeaderText != "NEW YORK" || got.Links["event_link_0"] != "https://example.com" {
		t.Errorf("unexpected cached view %+v", got)
	}

	exists, err := c.Exists(ctx, key)
	if err != nil || !exists {
		t.Errorf("expected key to exist, got %v, %v", exists, err)
	}
}

func TestViewCacheMissReturnsNil(t *testing.T) {
	c, _ := setupTestCache(t)

	got, err := c.Get(context.Background(), ViewKey("99999", model.UnitsMetric))
	if err != nil {
		t.Fatalf("expected no error on a miss, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on a miss, got %+v", got)
	}
}

func TestViewCacheExpiresAndDeletes(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()
	key := ViewKey("10001", model.UnitsImperial)

	if err := c.Set(ctx, key, model.ViewModel{HeaderText: "X"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if got, _ := c.Get(ctx, key); got != nil {
		t.Error("expected the entry to expire after the TTL")
	}

	if err := c.Set(ctx, key, model.ViewModel{HeaderText: "Y"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if exists, _ := c.Exists(ctx, key); exists {
		t.Error("expected the key to be deleted")
	}
}

func TestViewCacheCorruptedValue(t *testing.T) {
	c, mr := setupTestCache(t)
	key := ViewKey("10001", model.UnitsImperial)
	mr.Set(key, "{not json")

	if _, err := c.Get(context.Background(), key); err == nil {
		t.Error("expected a decode error")
	}
}

func TestViewKey(t *testing.T) {
	if got := ViewKey(" AB1 ", "metric"); got != "guide:view:metric:ab1" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestStoreSnapshot(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	c.StoreSnapshot(ctx, model.Snapshot{Location: "10001", Units: model.UnitsMetric, View: model.ViewModel{HeaderText: "NEW YORK"}})
	got, err := c.Get(ctx, ViewKey("10001", model.UnitsMetric))
	if err != nil || got == nil || got.HeaderText != "NEW YORK" {
		t.Fatalf("expected the snapshot view in cache, got %+v, %v", got, err)
	}

	// пустая локация (экран неверного ввода) не кэшируется
	c.StoreSnapshot(ctx, model.Snapshot{Location: "", Units: model.UnitsMetric})
	if exists, _ := c.Exists(ctx, ViewKey("", model.UnitsMetric)); exists {
		t.Error("expected the invalid input view not to be cached")
	}
}
