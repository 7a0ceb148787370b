package gormrepo

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Save(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = domain.NewID()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		log.Printf("product save error: %v", err)
		return translate(err)
	}
	return nil
}

func (r *productRepo) SaveBatch(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	for _, p := range products {
		if p.ID == "" {
			p.ID = domain.NewID()
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < len(products); i += 100 {
			end := i + 100
			if end > len(products) {
				end = len(products)
			}
			batch := products[i:end]
			if err := tx.Create(&batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("product batch save error: %v", err)
		return err
	}

	log.Printf("batch of %d products saved", len(products))
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product FindByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("product List error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).
		Select("Name", "Description", "OriginalPrice", "DiscountedPrice", "DriveLink", "ImageURL", "UpdatedAt").
		Updates(product).Error
	return translate(err)
}

func (r *productRepo) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if result.Error != nil {
		log.Printf("product Delete error: %v", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error
	return n, err
}
