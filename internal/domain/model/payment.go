package model

// PaymentLink is the checkout redirect handed back to the client after a
// payment request is registered with the gateway.
type PaymentLink struct {
	MerchantTransactionID string
	RedirectURL           string
	ExpireAt              int64
}

// GatewayState is the payment state reported by the gateway.
type GatewayState string

const (
	GatewayStatePending   GatewayState = "PENDING"
	GatewayStateCompleted GatewayState = "COMPLETED"
	GatewayStateFailed    GatewayState = "FAILED"
)

// GatewayStatus is the result of a gateway status poll or webhook.
type GatewayStatus struct {
	MerchantTransactionID string
	State                 GatewayState
	TransactionID         string
}
