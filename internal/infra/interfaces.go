package infra

import "context"

type PaymentGatewayInterface interface {
	CreateOrder(ctx context.Context, amount int64) (*GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

var _ PaymentGatewayInterface = (*RazorpayClient)(nil)

type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
