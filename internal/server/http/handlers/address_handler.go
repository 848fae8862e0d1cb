package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/server/http/dto"
	"github.com/mugworks/storefront/internal/usecase"
)

// AddressHandler manages saved address endpoints.
type AddressHandler struct {
	facade AddressFacade
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(facade AddressFacade) *AddressHandler {
	return &AddressHandler{facade: facade}
}

// Create handles POST /api/addresses.
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	address, err := h.facade.CreateAddress(c.Request.Context(), CurrentUserID(c), addressInput(req))
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAddressResponse(address))
}

// List handles GET /api/addresses.
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.facade.Addresses(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}

	response := make([]dto.AddressResponse, 0, len(addresses))
	for i := range addresses {
		response = append(response, toAddressResponse(&addresses[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/addresses/:id.
func (h *AddressHandler) Get(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	address, err := h.facade.Address(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAddressResponse(address))
}

// Update handles PUT /api/addresses/:id.
func (h *AddressHandler) Update(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	address, err := h.facade.UpdateAddress(c.Request.Context(), CurrentUserID(c), id, addressInput(req))
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAddressResponse(address))
}

// Delete handles DELETE /api/addresses/:id.
func (h *AddressHandler) Delete(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteAddress(c.Request.Context(), CurrentUserID(c), id); err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func addressInput(req dto.AddressRequest) usecase.AddressInput {
	return usecase.AddressInput{
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		State:        req.State,
		District:     req.District,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Landmark:     req.Landmark,
	}
}

func toAddressResponse(a *model.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:           a.ID,
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		City:         a.City,
		State:        a.State,
		District:     a.District,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Landmark:     a.Landmark,
		CreatedAt:    a.CreatedAt,
	}
}
