package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/mightcoding/ISSAConnect/internal/logger"
	"github.com/mightcoding/ISSAConnect/internal/response"
	"go.uber.org/zap"
)

// admissionCode maps a registration-rule violation to its machine code
func admissionCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrEventFull):
		return "EVENT_FULL"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "ALREADY_REGISTERED"
	default:
		return "NOT_REGISTERED"
	}
}

// respondError maps domain errors to HTTP responses. Rule violations are
// 400, authorization failures 403, absent resources 404; everything
// unexpected is logged and returned as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsAdmissionError(err):
		response.BadRequest(c, admissionCode(err), err.Error())
	case domain.IsValidationError(err):
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	case domain.IsPermissionError(err):
		response.Forbidden(c, err.Error())
	case domain.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists):
		response.Error(c, http.StatusConflict, "USER_EXISTS", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, domain.ErrUserInactive):
		response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired):
		response.Unauthorized(c, err.Error())
	default:
		logger.Get().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c)
	}
}
