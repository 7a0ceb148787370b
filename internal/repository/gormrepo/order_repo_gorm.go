package gormrepo

import (
	"context"
	"errors"
	"log"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = domain.NewID()
	}
	if order.ProductName == "" {
		return &repository.ConstraintError{Details: []string{"productName: required"}}
	}

	result := r.db.WithContext(ctx).Omit("Product").Create(order)
	if result.Error != nil {
		log.Printf("order save error: %v", result.Error)
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("order was not stored")
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Product").Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("order List error: %v", err)
		return nil, err
	}
	return out, nil
}

// MarkPaid is the single mutation an order goes through. The row is looked up
// first because MySQL reports zero affected rows for a no-op update.
func (r *orderRepo) MarkPaid(ctx context.Context, id, paymentID string) (*domain.Order, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).
		Updates(map[string]any{"payment_id": paymentID, "is_paid": true}).Error
	if err != nil {
		log.Printf("order MarkPaid error: %v", err)
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepo) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{})
	if result.Error != nil {
		log.Printf("order Delete error: %v", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepo) ListRecentPaid(ctx context.Context, limit int) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.WithContext(ctx).Preload("Product").Where("is_paid = ?", true).
		Order("created_at DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) CountPaid(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("is_paid = ?", true).Count(&n).Error
	return n, err
}

func (r *orderRepo) SumPaidAmount(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("is_paid = ?", true).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
