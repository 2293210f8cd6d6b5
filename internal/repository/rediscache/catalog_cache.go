package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/catalog"
)

// CatalogCache is a read-through cache in front of the loan type
// catalog. The catalog changes rarely, so stale reads within the TTL are
// acceptable.
type CatalogCache struct {
	next catalog.Repository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCatalogCache(next catalog.Repository, rdb *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{next: next, rdb: rdb, ttl: ttl}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *CatalogCache) FindByTypeLoan(ctx context.Context, typeLoan string) (*catalog.LoanType, error) {
	key := "loantype:" + typeLoan

	// a miss, an unreachable cache, and a corrupt entry all fall back to
	// the source
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		out := &catalog.LoanType{}
		if err := json.Unmarshal(raw, out); err == nil {
			return out, nil
		}
	}

	lt, err := c.next.FindByTypeLoan(ctx, typeLoan)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(lt); err == nil {
		c.rdb.Set(ctx, key, raw, c.ttl)
	}
	return lt, nil
}

// All always hits the source; the listing is cheap and rarely called.
func (c *CatalogCache) All(ctx context.Context) ([]catalog.LoanType, error) {
	return c.next.All(ctx)
}
