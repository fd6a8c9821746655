package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/01moynul/vrshop-golang/internal/store"
	"github.com/redis/go-redis/v9"
)

const (
	AllProductsCacheKey = "vrshop:products:all"
	DefaultProductTTL   = 5 * time.Minute
)

// ProductCache wraps a ProductStore with a Redis read-through cache of the
// full catalog. Writes go to the store first and then drop the cached list.
// With a nil Redis client it is a plain pass-through.
type ProductCache struct {
	Store store.ProductStore
	Redis *redis.Client
	TTL   time.Duration
}

// NewProductCache wires a cache in front of s.
func NewProductCache(s store.ProductStore, rdb *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultProductTTL
	}
	return &ProductCache{Store: s, Redis: rdb, TTL: ttl}
}

func (pc *ProductCache) ListProducts(ctx context.Context) ([]models.Product, error) {
	// 1. Try the cache first
	if pc.Redis != nil {
		cached, err := pc.Redis.Get(ctx, AllProductsCacheKey).Bytes()
		if err == nil {
			var products []models.Product
			if json.Unmarshal(cached, &products) == nil {
				return products, nil
			}
		} else if err != redis.Nil {
			log.Printf("product cache read failed: %v", err)
		}
	}

	// 2. Cache miss: read the store
	products, err := pc.Store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Fill the cache for next time
	if pc.Redis != nil {
		if data, err := json.Marshal(products); err == nil {
			if err := pc.Redis.Set(ctx, AllProductsCacheKey, data, pc.TTL).Err(); err != nil {
				log.Printf("product cache write failed: %v", err)
			}
		}
	}
	return products, nil
}

func (pc *ProductCache) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := pc.Store.CreateProduct(ctx, p); err != nil {
		return err
	}
	pc.invalidate(ctx)
	return nil
}

func (pc *ProductCache) DeleteProduct(ctx context.Context, id int64) error {
	if err := pc.Store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	pc.invalidate(ctx)
	return nil
}

func (pc *ProductCache) invalidate(ctx context.Context) {
	if pc.Redis == nil {
		return
	}
	if err := pc.Redis.Del(ctx, AllProductsCacheKey).Err(); err != nil {
		log.Printf("product cache invalidation failed: %v", err)
	}
}
