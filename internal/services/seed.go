package services

import (
	"context"
	"log"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type Seeder struct {
	products repository.ProductRepository
}

func NewSeeder(p repository.ProductRepository) *Seeder {
	return &Seeder{products: p}
}

// Seed inserts the starter catalog into an empty store. It reports false
// when products already exist.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	n, err := s.products.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	seed := domain.SeedProducts()
	batch := make([]*domain.Product, len(seed))
	for i := range seed {
		batch[i] = &seed[i]
	}
	if err := s.products.SaveBatch(ctx, batch); err != nil {
		return false, err
	}

	for _, p := range batch {
		log.Printf("seeded product %s - %s", p.ID, p.Name)
	}
	return true, nil
}
