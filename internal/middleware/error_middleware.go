package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/pkg/apperrors"
	"github.com/synqit/synqit/internal/pkg/logger"
)

// HandleAPIError translates service errors into the JSON envelope. Sentinel
// errors map to their HTTP status; anything unrecognized becomes a logged 500
// with a generic message.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrSelfPartnership),
		errors.Is(err, apperrors.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))

	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrAccountDisabled),
		errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(message))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(message))

	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrPartnershipNotFound),
		errors.Is(err, apperrors.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(message))

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyResponded):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(message))

	default:
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
	}
}

// HandleBindingError translates a gin binding failure into a 400 response
func HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format: "+err.Error()))
}
