package domain

import "time"

// Order is a checkout record. Exactly one of ProductRef and FallbackID is set;
// ProductName is always populated.
type Order struct {
	ID                 string    `json:"_id" gorm:"primaryKey;size:24"`
	Name               string    `json:"name" gorm:"not null"`
	Email              string    `json:"email" gorm:"not null"`
	Mobile             string    `json:"mobile" gorm:"not null"`
	ProductRef         *string   `json:"productRef,omitempty" gorm:"column:product;size:24;index"`
	FallbackID         string    `json:"productId,omitempty" gorm:"column:product_id;size:64"`
	ProductName        string    `json:"productName" gorm:"not null"`
	ProductDescription string    `json:"productDescription"`
	Amount             int64     `json:"amount" gorm:"not null"`
	GatewayOrderID     string    `json:"orderId" gorm:"column:order_id;not null;index"`
	PaymentID          string    `json:"paymentId,omitempty"`
	IsPaid             bool      `json:"isPaid" gorm:"not null;default:false;index"`
	PurchaseDate       time.Time `json:"purchaseDate"`
	CreatedAt          time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt          time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductRef;references:ID"`
}
