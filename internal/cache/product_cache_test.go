package cache

import (
	"context"
	"testing"
	"time"

	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/01moynul/vrshop-golang/internal/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts how often the catalog is read from the backing store.
type countingStore struct {
	*store.Memory
	lists int
}

func (s *countingStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.lists++
	return s.Memory.ListProducts(ctx)
}

func newTestCache(t *testing.T) (*ProductCache, *countingStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	backing := &countingStore{Memory: store.NewMemory()}
	return NewProductCache(backing, rdb, time.Minute), backing, mr
}

func TestProductCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	pc, backing, mr := newTestCache(t)

	require.NoError(t, backing.Memory.CreateProduct(ctx, &models.Product{Name: "Quest 3", Price: decimal.RequireFromString("499.99")}))

	first, err := pc.ListProducts(ctx)
	require.NoError(t, err)
	second, err := pc.ListProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, backing.lists)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.True(t, second[0].Price.Equal(decimal.RequireFromString("499.99")))
	assert.True(t, mr.Exists(AllProductsCacheKey))
}

func TestProductCacheInvalidatesOnWrites(t *testing.T) {
	ctx := context.Background()
	pc, backing, mr := newTestCache(t)

	_, err := pc.ListProducts(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(AllProductsCacheKey))

	p := &models.Product{Name: "Index", Price: decimal.NewFromInt(999)}
	require.NoError(t, pc.CreateProduct(ctx, p))
	assert.False(t, mr.Exists(AllProductsCacheKey))

	products, err := pc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 2, backing.lists)

	require.NoError(t, pc.DeleteProduct(ctx, p.ID))
	assert.False(t, mr.Exists(AllProductsCacheKey))

	assert.ErrorIs(t, pc.DeleteProduct(ctx, p.ID), store.ErrNotFound)
}

func TestProductCacheExpires(t *testing.T) {
	ctx := context.Background()
	pc, backing, mr := newTestCache(t)

	_, err := pc.ListProducts(ctx)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = pc.ListProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, backing.lists)
}

func TestProductCacheWithoutRedis(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Memory: store.NewMemory()}
	pc := NewProductCache(backing, nil, 0)

	assert.Equal(t, DefaultProductTTL, pc.TTL)
	require.NoError(t, pc.CreateProduct(ctx, &models.Product{Name: "Pico 4", Price: decimal.NewFromInt(400)}))
	_, err := pc.ListProducts(ctx)
	require.NoError(t, err)
	_, err = pc.ListProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, backing.lists)
}

func TestNewRedisClientDisabled(t *testing.T) {
	assert.Nil(t, NewRedisClient(""))
}
