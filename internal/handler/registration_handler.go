package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mightcoding/ISSAConnect/internal/middleware"
	"github.com/mightcoding/ISSAConnect/internal/response"
	"github.com/mightcoding/ISSAConnect/internal/service"
)

// RegistrationHandler handles event registration HTTP requests
type RegistrationHandler struct {
	registrationService service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Register handles POST /events/:id/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	resp, err := h.registrationService.Register(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, resp)
}

// Unregister handles DELETE /events/:id/unregister
func (h *RegistrationHandler) Unregister(c *gin.Context) {
	resp, err := h.registrationService.Unregister(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// ListRegistrations handles GET /events/:id/registrations
func (h *RegistrationHandler) ListRegistrations(c *gin.Context) {
	resp, err := h.registrationService.ListRegistrations(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// RemoveRegistrant handles DELETE /events/:id/registrations/:userId
func (h *RegistrationHandler) RemoveRegistrant(c *gin.Context) {
	resp, err := h.registrationService.RemoveRegistrant(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Param("id"),
		c.Param("userId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// EventsOverview handles GET /admin/events
func (h *RegistrationHandler) EventsOverview(c *gin.Context) {
	resp, err := h.registrationService.EventsOverview(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}
