package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mightcoding/ISSAConnect/internal/dto"
	"github.com/mightcoding/ISSAConnect/internal/middleware"
	"github.com/mightcoding/ISSAConnect/internal/response"
	"github.com/mightcoding/ISSAConnect/internal/service"
)

// AdminHandler handles administrative user management requests
type AdminHandler struct {
	userService service.UserService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userService service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, users)
}

// UpdatePermissions handles PATCH /admin/users/:id
func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	var req dto.UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.userService.UpdatePermissions(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Param("id"),
		*req.CanCreateContent,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, user)
}

// UpdateAvatar handles PUT /admin/users/:id/avatar
func (h *AdminHandler) UpdateAvatar(c *gin.Context) {
	var req dto.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.userService.UpdateAvatar(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Param("id"),
		req.AvatarURL,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, user)
}

// DeleteAvatar handles DELETE /admin/users/:id/avatar
func (h *AdminHandler) DeleteAvatar(c *gin.Context) {
	user, err := h.userService.UpdateAvatar(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Param("id"),
		"",
	)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, user)
}
