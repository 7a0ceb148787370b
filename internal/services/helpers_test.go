package services

import (
	"time"

	"storefront/internal/domain"
)

const (
	TestProductID   = "65a1b2c3d4e5f60718293a4b"
	TestOrderID     = "65a1b2c3d4e5f60718293a4c"
	TestGatewayID   = "order_ABC123"
	TestPaymentID   = "pay_XYZ789"
	TestProductName = "Test Product"
)

func CreateMockProduct(id, name string, price int64) *domain.Product {
	return &domain.Product{
		ID:              id,
		Name:            name,
		Description:     name + " description",
		OriginalPrice:   price + 100,
		DiscountedPrice: price,
		DriveLink:       "https://drive.example.com/" + id,
		ImageURL:        "/images/" + id + ".jpg",
		CreatedAt:       time.Now(),
	}
}

func CreateMockOrder(id string, paid bool) *domain.Order {
	ref := TestProductID
	return &domain.Order{
		ID:             id,
		Name:           "Asha",
		Email:          "asha@example.com",
		Mobile:         "9999999999",
		ProductRef:     &ref,
		ProductName:    TestProductName,
		Amount:         399,
		GatewayOrderID: TestGatewayID,
		IsPaid:         paid,
		PurchaseDate:   time.Now(),
		CreatedAt:      time.Now(),
	}
}
