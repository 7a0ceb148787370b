package repository

import (
	"context"

	"storefront/internal/domain"
)

// Finders return (nil, nil) when the record does not exist.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	MarkPaid(ctx context.Context, id, paymentID string) (*domain.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListRecentPaid(ctx context.Context, limit int) ([]domain.Order, error)
	CountPaid(ctx context.Context) (int64, error)
	SumPaidAmount(ctx context.Context) (int64, error)
}
