package repository

import (
	"context"

	"storefront/internal/domain"
)

type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	SaveBatch(ctx context.Context, products []*domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
