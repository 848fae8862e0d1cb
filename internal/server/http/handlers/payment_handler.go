package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mugworks/storefront/internal/server/http/dto"
)

// PaymentHandler manages payment initiation and the gateway webhook.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Initiate handles POST /api/orders/:id/payment.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	link, err := h.facade.InitiatePayment(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentLinkResponse{
		MerchantTransactionID: link.MerchantTransactionID,
		RedirectURL:           link.RedirectURL,
		ExpireAt:              link.ExpireAt,
	})
}

// Callback handles POST /api/payments/phonepe/callback. The gateway
// retries on non-2xx, so a malformed body is the only hard rejection:
// lookup or reconcile failures return 200 with no side effects recorded
// here and are settled later by polling.
func (h *PaymentHandler) Callback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.HandlePaymentCallback(c.Request.Context(), body); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "callback received"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "callback processed"})
}
