package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"ares-site-service/internal/domain"
)

type countingLoader struct {
	loads   atomic.Int64
	catalog domain.Catalog
	err     error
}

func (l *countingLoader) LoadCatalog(context.Context, string) (domain.Catalog, error) {
	l.loads.Add(1)
	if l.err != nil {
		return domain.Catalog{}, l.err
	}
	return l.catalog, nil
}

func testCatalog(id string) domain.Catalog {
	return domain.Catalog{
		ID: id,
		Questions: []domain.Question{
			{ID: "q1", Category: "Data Governance", Prompt: "p", Options: []domain.Option{
				{Value: "a", Label: "A", Score: 10},
				{Value: "b", Label: "B", Score: 0},
			}},
		},
	}
}

func newTestRepository(t *testing.T, loader CatalogLoader, ttl time.Duration) (*CatalogRepository, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCatalogRepository(client, loader, ttl), srv
}

func TestGetCatalogPopulatesCache(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{catalog: testCatalog("gov")}
	repo, srv := newTestRepository(t, loader, time.Minute)

	catalog, err := repo.GetCatalog(ctx, "gov")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if catalog.ID != "gov" {
		t.Fatalf("wrong catalog: %+v", catalog)
	}

	raw, err := srv.Get("catalog:gov")
	if err != nil {
		t.Fatalf("cache entry missing: %v", err)
	}
	var cached domain.Catalog
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		t.Fatalf("cache entry not json: %v", err)
	}
	if cached.ID != "gov" || len(cached.Questions) != 1 {
		t.Fatalf("cache entry wrong: %+v", cached)
	}

	if _, err := repo.GetCatalog(ctx, "gov"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if got := loader.loads.Load(); got != 1 {
		t.Fatalf("cached read still hit the loader, loads=%d", got)
	}
}

func TestGetCatalogReloadsAfterExpiry(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{catalog: testCatalog("gov")}
	repo, srv := newTestRepository(t, loader, time.Minute)

	if _, err := repo.GetCatalog(ctx, "gov"); err != nil {
		t.Fatalf("get: %v", err)
	}
	srv.FastForward(2 * time.Minute) // past TTL even with jitter
	if _, err := repo.GetCatalog(ctx, "gov"); err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if got := loader.loads.Load(); got != 2 {
		t.Fatalf("expected reload after expiry, loads=%d", got)
	}
}

func TestGetCatalogIgnoresCorruptCacheEntry(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{catalog: testCatalog("gov")}
	repo, srv := newTestRepository(t, loader, time.Minute)

	srv.Set("catalog:gov", "{not valid json")

	catalog, err := repo.GetCatalog(ctx, "gov")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if catalog.ID != "gov" {
		t.Fatalf("wrong catalog: %+v", catalog)
	}
	if got := loader.loads.Load(); got != 1 {
		t.Fatalf("corrupt cache must fall through to loader, loads=%d", got)
	}
}

func TestGetCatalogLoaderError(t *testing.T) {
	loadErr := errors.New("db down")
	loader := &countingLoader{err: loadErr}
	repo, _ := newTestRepository(t, loader, time.Minute)

	if _, err := repo.GetCatalog(context.Background(), "gov"); !errors.Is(err, loadErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
}
