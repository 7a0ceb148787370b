package services

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/go-redis/redis/v8"
)

const degradationsKey = "storefront:degradations"

// Degradation kinds.
const (
	DegradedLookupError    = "resolver.lookup_error"
	DegradedNotFound       = "resolver.not_found"
	DegradedUnknownKey     = "resolver.unknown_key"
	DegradedDefaultProduct = "checkout.default_product"
	DegradedVerifyNoOrder  = "verify.order_missing"
)

// Degradations logs and counts every request that was answered from fallback
// data instead of the store. Counts live in redis when it is configured so
// they survive restarts and aggregate across instances.
type Degradations struct {
	mu          sync.Mutex
	local       map[string]int64
	redisClient *redis.Client
}

func NewDegradations() *Degradations {
	return &Degradations{local: map[string]int64{}}
}

func (d *Degradations) SetRedisClient(client *redis.Client) {
	d.redisClient = client
}

func (d *Degradations) Record(ctx context.Context, kind, detail string) {
	log.Printf("degraded: %s: %s", kind, detail)

	d.mu.Lock()
	d.local[kind]++
	d.mu.Unlock()

	if d.redisClient != nil {
		if err := d.redisClient.HIncrBy(ctx, degradationsKey, kind, 1).Err(); err != nil {
			log.Printf("degradation counter %s: %v", kind, err)
		}
	}
}

func (d *Degradations) Snapshot(ctx context.Context) map[string]int64 {
	if d.redisClient != nil {
		raw, err := d.redisClient.HGetAll(ctx, degradationsKey).Result()
		if err == nil {
			out := make(map[string]int64, len(raw))
			for k, v := range raw {
				n, _ := strconv.ParseInt(v, 10, 64)
				out[k] = n
			}
			return out
		}
		log.Printf("degradation snapshot: %v", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]int64, len(d.local))
	for k, v := range d.local {
		out[k] = v
	}
	return out
}
