package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type CreateProductInput struct {
	Name            string
	Description     string
	OriginalPrice   int64
	DiscountedPrice int64
	DriveLink       string
	ImageURL        string
}

// ProductPatch holds the fields an update sets; nil fields are left alone.
type ProductPatch struct {
	Name            *string
	Description     *string
	OriginalPrice   *int64
	DiscountedPrice *int64
	DriveLink       *string
	ImageURL        *string
}

type ProductService struct {
	repo     repository.ProductRepository
	resolver *ProductResolver
}

func NewProductService(r repository.ProductRepository, resolver *ProductResolver) *ProductService {
	return &ProductService{repo: r, resolver: resolver}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if !domain.IsValidID(id) {
		return nil, ErrProductNotFound
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	switch {
	case in.Name == "":
		return nil, required("name")
	case in.Description == "":
		return nil, required("description")
	case in.OriginalPrice == 0:
		return nil, required("originalPrice")
	case in.DiscountedPrice == 0:
		return nil, required("discountedPrice")
	case in.DriveLink == "":
		return nil, required("driveLink")
	case in.ImageURL == "":
		return nil, required("imageUrl")
	}

	p := &domain.Product{
		Name:            in.Name,
		Description:     in.Description,
		OriginalPrice:   in.OriginalPrice,
		DiscountedPrice: in.DiscountedPrice,
		DriveLink:       in.DriveLink,
		ImageURL:        in.ImageURL,
	}
	if err := checkPrices(p); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = *patch.OriginalPrice
	}
	if patch.DiscountedPrice != nil {
		p.DiscountedPrice = *patch.DiscountedPrice
	}
	if patch.DriveLink != nil {
		p.DriveLink = *patch.DriveLink
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if p.Name == "" {
		return nil, required("name")
	}
	if err := checkPrices(p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.resolver.Invalidate(ctx, id)
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if !domain.IsValidID(id) {
		return ErrProductNotFound
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	s.resolver.Invalidate(ctx, id)
	return nil
}

func checkPrices(p *domain.Product) error {
	if p.OriginalPrice < 0 || p.DiscountedPrice < 0 {
		return &ValidationError{Field: "originalPrice", Message: "prices must not be negative"}
	}
	if p.DiscountedPrice > p.OriginalPrice {
		return &ValidationError{Field: "discountedPrice", Message: "discountedPrice must not exceed originalPrice"}
	}
	return nil
}
