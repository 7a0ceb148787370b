package services

import (
	"context"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/repository"
)

const (
	TopicOrderCreated = "order.created"
	TopicOrderPaid    = "order.paid"
)

type CreateOrderInput struct {
	Name           string
	Email          string
	Mobile         string
	Product        string
	ProductID      string
	ProductName    string
	Amount         int64
	GatewayOrderID string
}

func (in CreateOrderInput) validate() error {
	switch {
	case in.Name == "":
		return required("name")
	case in.Email == "":
		return required("email")
	case in.Mobile == "":
		return required("mobile")
	case in.Amount == 0:
		return required("amount")
	case in.GatewayOrderID == "":
		return required("orderId")
	case in.Product == "" && in.ProductID == "":
		return &ValidationError{Field: "product", Message: "Either product or productId is required"}
	}
	return nil
}

// reference prefers the relation field over the fallback id.
func (in CreateOrderInput) reference() string {
	if in.Product != "" {
		return in.Product
	}
	return in.ProductID
}

type OrderService struct {
	repo      repository.OrderRepository
	resolver  *ProductResolver
	publisher infra.PublisherInterface
	now       func() time.Time
}

func NewOrderService(r repository.OrderRepository, resolver *ProductResolver, pub infra.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		resolver:  resolver,
		publisher: pub,
		now:       time.Now,
	}
}

// CreateOrder records an unpaid order for a gateway order that was created
// earlier. The two steps are not atomic: a failure here leaves the gateway
// order orphaned and the client is expected to restart checkout.
func (u *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	ref := domain.ParseProductRef(in.reference())
	res := u.resolver.Resolve(ctx, ref, Hint{Name: in.ProductName, Amount: in.Amount})

	order := &domain.Order{
		Name:           in.Name,
		Email:          in.Email,
		Mobile:         in.Mobile,
		Amount:         in.Amount,
		GatewayOrderID: in.GatewayOrderID,
		IsPaid:         false,
		PurchaseDate:   u.now(),
	}
	res.Apply(order)

	if err := u.repo.Save(ctx, order); err != nil {
		return nil, err
	}

	publishAsync(u.publisher, TopicOrderCreated, domain.OrderCreatedEvent{
		OrderID:        order.ID,
		GatewayOrderID: order.GatewayOrderID,
		ProductName:    order.ProductName,
		Amount:         order.Amount,
		CreatedAt:      order.PurchaseDate,
	})

	return order, nil
}

// publishAsync sends an event after the request's store work is done.
// Failures are logged only.
func publishAsync(pub infra.PublisherInterface, topic string, evt any) {
	go func() {
		if err := pub.Publish(context.Background(), topic, evt); err != nil {
			log.Printf("failed to publish %s: %v", topic, err)
		}
	}()
}

func (u *OrderService) GetOrderById(ctx context.Context, id string) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return u.repo.List(ctx)
}

// AttachPayment marks an order paid without a signature check. It backs the
// admin-equivalent update endpoint.
func (u *OrderService) AttachPayment(ctx context.Context, id, paymentID string) (*domain.Order, error) {
	if paymentID == "" {
		return nil, &ValidationError{Field: "paymentId", Message: "Payment ID is required"}
	}

	o, err := u.repo.MarkPaid(ctx, id, paymentID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	publishAsync(u.publisher, TopicOrderPaid, paidEvent(o, u.now()))
	return o, nil
}

func (u *OrderService) DeleteOrder(ctx context.Context, id string) error {
	ok, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	return nil
}

func paidEvent(o *domain.Order, at time.Time) domain.OrderPaidEvent {
	return domain.OrderPaidEvent{
		OrderID:        o.ID,
		GatewayOrderID: o.GatewayOrderID,
		PaymentID:      o.PaymentID,
		Amount:         o.Amount,
		PaidAt:         at,
	}
}
