package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/go-redis/redis/v8"
)

const productCacheTTL = time.Minute

type ResolutionSource string

const (
	SourcePersisted   ResolutionSource = "persisted"
	SourceFallback    ResolutionSource = "fallback"
	SourcePlaceholder ResolutionSource = "placeholder"
)

// Hint carries what the caller already knows about the product; it names
// and prices the placeholder when nothing else matches.
type Hint struct {
	Name   string
	Amount int64
}

type Resolution struct {
	Ref         domain.ProductRef
	Product     *domain.Product
	Name        string
	Description string
	Price       int64
	Source      ResolutionSource
}

// Apply writes the product reference and snapshot onto an order. Only a
// persisted resolution is stored as a relation.
func (r Resolution) Apply(o *domain.Order) {
	if r.Source == SourcePersisted {
		id := r.Product.ID
		o.ProductRef = &id
		o.FallbackID = ""
		o.Product = r.Product
	} else {
		o.ProductRef = nil
		o.Product = nil
		o.FallbackID = r.Ref.String()
	}
	o.ProductName = r.Name
	o.ProductDescription = r.Description
}

// ProductResolver turns a product reference into a product identity by
// trying the store, then the fallback catalog, then a placeholder built
// from the hint. It never fails.
type ProductResolver struct {
	products     repository.ProductRepository
	degradations *Degradations
	redisClient  *redis.Client
}

func NewProductResolver(products repository.ProductRepository, degradations *Degradations) *ProductResolver {
	return &ProductResolver{
		products:     products,
		degradations: degradations,
	}
}

func (r *ProductResolver) SetRedisClient(client *redis.Client) {
	r.redisClient = client
}

func (r *ProductResolver) Resolve(ctx context.Context, ref domain.ProductRef, hint Hint) Resolution {
	switch ref := ref.(type) {
	case domain.PersistedProduct:
		p, err := r.lookup(ctx, ref.ID.Hex())
		if err != nil {
			r.degradations.Record(ctx, DegradedLookupError, fmt.Sprintf("product %s: %v", ref, err))
			return fallbackOrPlaceholder(ref, hint, "Error Looking Up Product", "Database error occurred")
		}
		if p == nil {
			r.degradations.Record(ctx, DegradedNotFound, fmt.Sprintf("product %s", ref))
			return fallbackOrPlaceholder(ref, hint, "Unknown Product", "Product not found in database")
		}
		return Resolution{
			Ref:         ref,
			Product:     p,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.DiscountedPrice,
			Source:      SourcePersisted,
		}

	case domain.FallbackProduct:
		res := fallbackOrPlaceholder(ref, hint, "Unknown Product", "Product details not available")
		if res.Source == SourcePlaceholder {
			r.degradations.Record(ctx, DegradedUnknownKey, fmt.Sprintf("key %q", ref.Key))
		}
		return res

	default:
		return fallbackOrPlaceholder(domain.FallbackProduct{}, hint, "Unknown Product", "Product details not available")
	}
}

func fallbackOrPlaceholder(ref domain.ProductRef, hint Hint, defaultName, description string) Resolution {
	if p, ok := domain.FallbackProductByKey(ref.String()); ok {
		return Resolution{
			Ref:         ref,
			Product:     &p,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.DiscountedPrice,
			Source:      SourceFallback,
		}
	}

	name := hint.Name
	if name == "" {
		name = defaultName
	}
	return Resolution{
		Ref:         ref,
		Name:        name,
		Description: description,
		Price:       hint.Amount,
		Source:      SourcePlaceholder,
	}
}

func productCacheKey(id string) string {
	return "product:" + id
}

func (r *ProductResolver) lookup(ctx context.Context, id string) (*domain.Product, error) {
	key := productCacheKey(id)

	if r.redisClient != nil {
		cached, err := r.redisClient.Get(ctx, key).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := r.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.redisClient != nil && p != nil {
		if data, err := json.Marshal(p); err == nil {
			r.redisClient.Set(ctx, key, data, productCacheTTL)
		}
	}
	return p, nil
}

// Invalidate drops a cached product after an admin change.
func (r *ProductResolver) Invalidate(ctx context.Context, id string) {
	if r.redisClient == nil {
		return
	}
	if err := r.redisClient.Del(ctx, productCacheKey(id)).Err(); err != nil {
		log.Printf("product cache invalidate %s: %v", id, err)
	}
}

// WarmupProductCache loads the whole catalog into redis.
func (r *ProductResolver) WarmupProductCache(ctx context.Context) error {
	if r.redisClient == nil {
		return nil
	}

	products, err := r.products.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			continue
		}
		if err := r.redisClient.Set(ctx, productCacheKey(p.ID), data, 5*productCacheTTL).Err(); err != nil {
			log.Printf("failed to warm up cache for product %s: %v", p.ID, err)
		}
	}
	return nil
}
