package product

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type staticRepo struct {
	products []Product
	calls    int
}

func (r *staticRepo) GetByCode(ctx context.Context, code string) (Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *staticRepo) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	r.calls++
	return r.products, len(r.products), nil
}

func (r *staticRepo) SoftDelete(ctx context.Context, code string) error { return nil }
func (r *staticRepo) Restore(ctx context.Context, code string) error    { return nil }

func newCacheForTest(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestListCachesUntilBump(t *testing.T) {
	repo := &staticRepo{products: []Product{{Code: "7890000000001", Name: "ARROZ 5KG"}}}
	cache := newCacheForTest(t)
	svc := NewService(repo, cache, slog.Default())
	ctx := context.Background()

	products, total, err := svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, products, 1)
	require.Equal(t, 1, repo.calls)

	// Second listing is served from the cache.
	_, _, err = svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)

	// A version bump forces a reload.
	require.NoError(t, cache.Bump(ctx))
	_, _, err = svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls)
}

func TestListWithoutRedis(t *testing.T) {
	repo := &staticRepo{products: []Product{{Code: "7890000000001"}}}
	svc := NewService(repo, NewCache(nil, time.Minute), slog.Default())

	products, total, err := svc.List(context.Background(), ListFilters{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, products, 1)
}
