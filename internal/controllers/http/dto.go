package http

import "storefront/internal/services"

type CreateOrderRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Product     string `json:"product"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
}

func (r CreateOrderRequest) input() services.CreateOrderInput {
	return services.CreateOrderInput{
		Name:           r.Name,
		Email:          r.Email,
		Mobile:         r.Mobile,
		Product:        r.Product,
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		Amount:         r.Amount,
		GatewayOrderID: r.OrderID,
	}
}

type UpdateOrderRequest struct {
	PaymentID string `json:"paymentId"`
}

type CreatePaymentOrderRequest struct {
	ProductID string `json:"productId"`
}

type VerifyPaymentRequest struct {
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
	Signature string `json:"signature"`
	OrderDBID string `json:"orderDbId"`
	ProductID string `json:"productId"`
}

func (r VerifyPaymentRequest) input() services.VerifyInput {
	return services.VerifyInput{
		PaymentID: r.PaymentID,
		OrderID:   r.OrderID,
		Signature: r.Signature,
		OrderDBID: r.OrderDBID,
		ProductID: r.ProductID,
	}
}

type CreateProductRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	OriginalPrice   int64  `json:"originalPrice"`
	DiscountedPrice int64  `json:"discountedPrice"`
	DriveLink       string `json:"driveLink"`
	ImageURL        string `json:"imageUrl"`
}

func (r CreateProductRequest) input() services.CreateProductInput {
	return services.CreateProductInput{
		Name:            r.Name,
		Description:     r.Description,
		OriginalPrice:   r.OriginalPrice,
		DiscountedPrice: r.DiscountedPrice,
		DriveLink:       r.DriveLink,
		ImageURL:        r.ImageURL,
	}
}

// UpdateProductRequest is a partial update; absent fields keep their value.
type UpdateProductRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	OriginalPrice   *int64  `json:"originalPrice"`
	DiscountedPrice *int64  `json:"discountedPrice"`
	DriveLink       *string `json:"driveLink"`
	ImageURL        *string `json:"imageUrl"`
}

func (r UpdateProductRequest) patch() services.ProductPatch {
	return services.ProductPatch{
		Name:            r.Name,
		Description:     r.Description,
		OriginalPrice:   r.OriginalPrice,
		DiscountedPrice: r.DiscountedPrice,
		DriveLink:       r.DriveLink,
		ImageURL:        r.ImageURL,
	}
}

type SeedResponse struct {
	Seeded  bool   `json:"seeded"`
	Message string `json:"message"`
}
