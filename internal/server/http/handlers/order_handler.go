package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/server/http/dto"
	"github.com/mugworks/storefront/internal/usecase"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	facade StorefrontFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade StorefrontFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			Price:         item.Price,
			ReferenceCode: item.ReferenceCode,
			Serialized:    item.Serialized,
		})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), usecase.CreateOrderInput{
		Items:             items,
		ShippingAddressID: req.ShippingAddressID,
		PaymentMethod:     req.PaymentMethod,
		ProfileIDs:        req.ProfileIDs,
	})
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := model.OrderStatus(c.Query("status"))

	orders, total, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c), status, page, limit)
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}

	response := dto.OrderListResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
		Total:  total,
		Page:   page,
	}
	if limit > 0 {
		response.TotalPages = (total + int64(limit) - 1) / int64(limit)
	}
	for i := range orders {
		response.Orders = append(response.Orders, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentUserID(c), id, model.OrderStatus(req.Status))
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// MugUnits handles GET /api/mug-units.
func (h *OrderHandler) MugUnits(c *gin.Context) {
	assignments, err := h.facade.MugUnits(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}

	response := make([]dto.MugUnitResponse, 0, len(assignments))
	for _, a := range assignments {
		response = append(response, dto.MugUnitResponse{
			OrderID:   a.OrderID,
			ProfileID: a.ProfileID,
			UnitID:    a.UnitID,
			CreatedAt: a.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			TotalPrice:  item.TotalPrice,
			Serials:     item.Serials,
		})
	}

	return dto.OrderResponse{
		ID:         order.ID,
		Number:     order.Number,
		Status:     string(order.Status),
		Items:      items,
		ProfileIDs: order.ProfileIDs,
		Payment: dto.PaymentResponse{
			Method:                string(order.Payment.Method),
			Status:                string(order.Payment.Status),
			TransactionID:         order.Payment.TransactionID,
			MerchantTransactionID: order.Payment.MerchantTransactionID,
			Amount:                order.Payment.Amount,
			Currency:              order.Payment.Currency,
		},
		TotalAmount:     order.TotalAmount,
		ShippingCharges: order.ShippingCharges,
		FinalAmount:     order.FinalAmount,
		CreatedAt:       order.CreatedAt,
	}
}
