package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/server/http/dto"
	"github.com/mugworks/storefront/internal/usecase"
)

// ProfileHandler manages buyer profile endpoints.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Create handles POST /api/profiles.
func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	profile, err := h.facade.CreateBuyerProfile(c.Request.Context(), CurrentUserID(c), profileInput(req))
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProfileResponse(profile))
}

// List handles GET /api/profiles.
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.facade.Profiles(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}

	response := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		response = append(response, toProfileResponse(&profiles[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/profiles/:id.
func (h *ProfileHandler) Get(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	profile, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Update handles PUT /api/profiles/:id.
func (h *ProfileHandler) Update(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	profile, err := h.facade.UpdateProfile(c.Request.Context(), CurrentUserID(c), id, profileInput(req))
	if err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Delete handles DELETE /api/profiles/:id.
func (h *ProfileHandler) Delete(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteProfile(c.Request.Context(), CurrentUserID(c), id); err != nil {
		AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func profileInput(req dto.ProfileRequest) usecase.ProfileInput {
	return usecase.ProfileInput{
		Name:        req.Name,
		State:       req.State,
		District:    req.District,
		DateOfBirth: req.DateOfBirth,
	}
}

func toProfileResponse(p *model.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:          p.ID,
		Type:        string(p.Type),
		Name:        p.Name,
		State:       p.State,
		District:    p.District,
		DateOfBirth: p.DateOfBirth,
		CreatedAt:   p.CreatedAt,
	}
}
