package dto

import "time"

// OrderItemRequest is one checkout line.
type OrderItemRequest struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	ReferenceCode string  `json:"reference_code,omitempty"`
	Serialized    bool    `json:"serialized"`
}

// CreateOrderRequest describes the checkout payload.
type CreateOrderRequest struct {
	Items             []OrderItemRequest `json:"items"`
	ShippingAddressID int64              `json:"shipping_address_id"`
	PaymentMethod     string             `json:"payment_method"`
	ProfileIDs        []int64            `json:"profile_ids"`
}

// UpdateOrderStatusRequest advances the delivery lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse is one order line with its issued serials.
type OrderItemResponse struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	Price       float64  `json:"price"`
	TotalPrice  float64  `json:"total_price"`
	Serials     []string `json:"serials,omitempty"`
}

// PaymentResponse is the payment sub-record of an order.
type PaymentResponse struct {
	Method                string  `json:"method"`
	Status                string  `json:"status"`
	TransactionID         string  `json:"transaction_id,omitempty"`
	MerchantTransactionID string  `json:"merchant_transaction_id,omitempty"`
	Amount                float64 `json:"amount"`
	Currency              string  `json:"currency"`
}

// OrderResponse describes one order.
type OrderResponse struct {
	ID              int64               `json:"id"`
	Number          string              `json:"number"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	ProfileIDs      []int64             `json:"profile_ids,omitempty"`
	Payment         PaymentResponse     `json:"payment"`
	TotalAmount     float64             `json:"total_amount"`
	ShippingCharges float64             `json:"shipping_charges"`
	FinalAmount     float64             `json:"final_amount"`
	CreatedAt       time.Time           `json:"created_at"`
}

// OrderListResponse is a page of orders.
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int64           `json:"total_pages"`
}

// PaymentLinkResponse carries the gateway checkout redirect.
type PaymentLinkResponse struct {
	MerchantTransactionID string `json:"merchant_transaction_id"`
	RedirectURL           string `json:"redirect_url"`
	ExpireAt              int64  `json:"expire_at,omitempty"`
}

// MugUnitResponse is one assigned mug unit.
type MugUnitResponse struct {
	OrderID   int64     `json:"order_id"`
	ProfileID int64     `json:"profile_id"`
	UnitID    int64     `json:"unit_id"`
	CreatedAt time.Time `json:"created_at"`
}
