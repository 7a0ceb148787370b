package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/repository"
)

type CheckoutOrder struct {
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	ProductName string `json:"product_name"`
	ProductID   string `json:"product_id"`
}

type VerifyInput struct {
	PaymentID string
	OrderID   string
	Signature string
	OrderDBID string
	ProductID string
}

// SynthesizedOrder stands in for an order the verifier could not find. It is
// never stored.
type SynthesizedOrder struct {
	ID        string         `json:"_id"`
	PaymentID string         `json:"paymentId"`
	OrderID   string         `json:"orderId"`
	IsPaid    bool           `json:"isPaid"`
	Persisted bool           `json:"persisted"`
	Product   domain.Product `json:"product"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type VerifyResult struct {
	Success  bool `json:"success"`
	Order    any  `json:"order"`
	Degraded bool `json:"degraded,omitempty"`
}

type PaymentService struct {
	gateway      infra.PaymentGatewayInterface
	resolver     *ProductResolver
	orders       repository.OrderRepository
	publisher    infra.PublisherInterface
	degradations *Degradations
	currency     string
	strictVerify bool
	now          func() time.Time
}

func NewPaymentService(
	gateway infra.PaymentGatewayInterface,
	resolver *ProductResolver,
	orders repository.OrderRepository,
	pub infra.PublisherInterface,
	degradations *Degradations,
	currency string,
) *PaymentService {
	return &PaymentService{
		gateway:      gateway,
		resolver:     resolver,
		orders:       orders,
		publisher:    pub,
		degradations: degradations,
		currency:     currency,
		now:          time.Now,
	}
}

// SetStrictVerify makes verification of an unknown order a hard failure
// instead of a synthesized success.
func (s *PaymentService) SetStrictVerify(strict bool) {
	s.strictVerify = strict
}

// CreatePaymentOrder prices the product and opens a gateway order for it.
// References that resolve to nothing are charged as the default catalog
// product.
func (s *PaymentService) CreatePaymentOrder(ctx context.Context, productID string) (*CheckoutOrder, error) {
	if productID == "" {
		return nil, &ValidationError{Field: "productId", Message: "Product ID is required"}
	}

	res := s.resolver.Resolve(ctx, domain.ParseProductRef(productID), Hint{})
	name, price := res.Name, res.Price
	if res.Source == SourcePlaceholder {
		def, _ := domain.FallbackProductByKey(domain.DefaultFallbackKey)
		s.degradations.Record(ctx, DegradedDefaultProduct, fmt.Sprintf("checkout for %q charged as %q", productID, def.Name))
		name, price = def.Name, def.DiscountedPrice
	}

	gwOrder, err := s.gateway.CreateOrder(ctx, price)
	if err != nil {
		log.Printf("gateway create order for %s: %v", productID, err)
		return nil, err
	}

	return &CheckoutOrder{
		OrderID:     gwOrder.ID,
		Amount:      price * 100,
		Currency:    s.currency,
		ProductName: name,
		ProductID:   productID,
	}, nil
}

// VerifyPayment checks the gateway signature and marks the stored order paid.
//
// When the signature is valid but the order cannot be found or updated, a
// paid order is synthesized and returned with Degraded set. Nothing is
// stored on that path; the payment exists only at the gateway.
func (s *PaymentService) VerifyPayment(ctx context.Context, in VerifyInput) (*VerifyResult, error) {
	if in.PaymentID == "" || in.OrderID == "" || in.Signature == "" {
		return nil, &ValidationError{Message: "Missing required payment verification fields"}
	}

	if !s.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		return nil, ErrInvalidSignature
	}

	var storeErr error
	if in.OrderDBID != "" {
		o, err := s.orders.MarkPaid(ctx, in.OrderDBID, in.PaymentID)
		if err != nil {
			log.Printf("verify: mark order %s paid: %v", in.OrderDBID, err)
			storeErr = err
		}
		if err == nil && o != nil {
			publishAsync(s.publisher, TopicOrderPaid, paidEvent(o, s.now()))
			return &VerifyResult{Success: true, Order: o}, nil
		}
	}

	if s.strictVerify {
		if storeErr != nil {
			return nil, storeErr
		}
		return nil, ErrOrderNotFound
	}

	s.degradations.Record(ctx, DegradedVerifyNoOrder,
		fmt.Sprintf("payment %s for gateway order %s verified without a stored order (orderDbId=%q)", in.PaymentID, in.OrderID, in.OrderDBID))
	return &VerifyResult{Success: true, Order: s.synthesize(in), Degraded: true}, nil
}

func (s *PaymentService) synthesize(in VerifyInput) *SynthesizedOrder {
	product, ok := domain.FallbackProductByKey(in.ProductID)
	if !ok {
		product, _ = domain.FallbackProductByKey(domain.DefaultFallbackKey)
	}

	now := s.now()
	id := in.OrderDBID
	if id == "" {
		id = fmt.Sprintf("fallback_%d", now.UnixMilli())
	}

	return &SynthesizedOrder{
		ID:        id,
		PaymentID: in.PaymentID,
		OrderID:   in.OrderID,
		IsPaid:    true,
		Persisted: false,
		Product:   product,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
