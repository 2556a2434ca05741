package http

import (
	"errors"
	"net/http"

	"stock-portfolio-service/internal/api/apperror"
	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

var errInvalidPayload = apperror.New(apperror.ErrValidation, "Invalid request payload")

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrUpstreamRateLimited):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"detail": ...}. Unclassified errors are logged and hidden.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	var upstream *apperror.UpstreamError
	if errors.As(err, &upstream) {
		return c.JSON(upstream.StatusCode, dto.ErrorResponse{Detail: upstream.Detail})
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return c.JSON(statusFor(appErr), dto.ErrorResponse{Detail: appErr.Detail})
	}

	log.ErrorContext(c.Request().Context(), "Unhandled error", logger.ErrorField(err),
		logger.StringField("path", c.Path()))
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal server error"})
}

// NewHTTPErrorHandler renders echo errors (unknown routes, bad methods, panics) with the detail shape.
func NewHTTPErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(he.Code)
			} else {
				err = c.JSON(he.Code, dto.ErrorResponse{Detail: he.Message})
			}
		} else {
			err = respondError(c, log, err)
		}
		if err != nil {
			log.Error("Failed to write error response", logger.ErrorField(err))
		}
	}
}
