package domain

import "time"

type OrderCreatedEvent struct {
	OrderID        string    `json:"orderId"`
	GatewayOrderID string    `json:"gatewayOrderId"`
	ProductName    string    `json:"productName"`
	Amount         int64     `json:"amount"`
	CreatedAt      time.Time `json:"createdAt"`
}

type OrderPaidEvent struct {
	OrderID        string    `json:"orderId"`
	GatewayOrderID string    `json:"gatewayOrderId"`
	PaymentID      string    `json:"paymentId"`
	Amount         int64     `json:"amount"`
	PaidAt         time.Time `json:"paidAt"`
}
