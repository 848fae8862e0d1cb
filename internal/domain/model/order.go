package model

import "time"

// OrderStatus describes the delivery lifecycle. Transitions are linear;
// cancelled is the only side exit.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus tracks the payment sub-record independently of the
// delivery lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethod identifies the payment processor for an order.
type PaymentMethod string

const PaymentMethodPhonePe PaymentMethod = "phonepe"

// ShippingSnapshot is the address copied onto the order at checkout.
// It is intentionally decoupled from the live Address row so that serial
// resolution stays reproducible against history.
type ShippingSnapshot struct {
	FullName     string
	Phone        string
	AddressLine1 string
	City         string
	State        string
	District     string
	PostalCode   string
	Country      string
	Landmark     string
}

// PaymentDetails is the payment sub-record of an order.
type PaymentDetails struct {
	Method                PaymentMethod
	Status                PaymentStatus
	TransactionID         string
	MerchantTransactionID string
	Amount                float64
	Currency              string
}

// OrderItem is one purchased line. Serials are present only for items
// flagged as serialized mug products, one serial per physical unit.
type OrderItem struct {
	ID            int64
	ProductID     string
	ProductName   string
	Quantity      int
	Price         float64
	TotalPrice    float64
	ReferenceCode string
	Serialized    bool
	Serials       []string
}

// Order is one purchase transaction.
type Order struct {
	ID              int64
	UserID          int64
	Number          string
	Items           []OrderItem
	ProfileIDs      []int64
	Shipping        ShippingSnapshot
	Payment         PaymentDetails
	Status          OrderStatus
	TotalAmount     float64
	ShippingCharges float64
	FinalAmount     float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
