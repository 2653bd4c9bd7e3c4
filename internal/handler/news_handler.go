package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mightcoding/ISSAConnect/internal/dto"
	"github.com/mightcoding/ISSAConnect/internal/middleware"
	"github.com/mightcoding/ISSAConnect/internal/response"
	"github.com/mightcoding/ISSAConnect/internal/service"
)

// NewsHandler handles news HTTP requests
type NewsHandler struct {
	newsService service.NewsService
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(newsService service.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// Create handles POST /news
func (h *NewsHandler) Create(c *gin.Context) {
	var req dto.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	resp, err := h.newsService.CreateNews(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, resp)
}

// List handles GET /news
func (h *NewsHandler) List(c *gin.Context) {
	items, err := h.newsService.ListNews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, items)
}

// Get handles GET /news/:id
func (h *NewsHandler) Get(c *gin.Context) {
	resp, err := h.newsService.GetNews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// Update handles PUT /news/:id
func (h *NewsHandler) Update(c *gin.Context) {
	var req dto.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	resp, err := h.newsService.UpdateNews(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// Delete handles DELETE /news/:id
func (h *NewsHandler) Delete(c *gin.Context) {
	if err := h.newsService.DeleteNews(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}
