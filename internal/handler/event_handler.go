package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mightcoding/ISSAConnect/internal/dto"
	"github.com/mightcoding/ISSAConnect/internal/middleware"
	"github.com/mightcoding/ISSAConnect/internal/response"
	"github.com/mightcoding/ISSAConnect/internal/service"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, "VALIDATION_ERROR", msg)
		return
	}

	resp, err := h.eventService.CreateEvent(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, resp)
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	items, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, items)
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	resp, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// Update handles PUT /events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, "VALIDATION_ERROR", msg)
		return
	}

	resp, err := h.eventService.UpdateEvent(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// Delete handles DELETE /events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventService.DeleteEvent(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}
