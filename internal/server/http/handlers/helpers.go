package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kakigori/storefront/internal/app"
	"github.com/kakigori/storefront/internal/board"
	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
	"github.com/kakigori/storefront/internal/server/http/dto"
	"github.com/kakigori/storefront/internal/server/http/middleware"
	"github.com/kakigori/storefront/internal/usecase"
)

// CurrentSessionID extracts the session identifier from context.
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(middleware.SessionIDContextKey)
}

// storeParam returns the normalized :storeId path parameter. An invalid id is
// answered with 422 and ok is false.
func storeParam(c *gin.Context) (string, bool) {
	id, err := usecase.NormalizeStoreID(c.Param("storeId"))
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return id, true
}

// StatusFor maps an error to the HTTP status reported to clients.
func StatusFor(err error) int {
	if _, ok := domainErrors.AsNetwork(err); ok {
		return http.StatusBadGateway
	}
	switch {
	case errors.Is(err, domainErrors.ErrOrderNotFound):
		return http.StatusNotFound
	case domainErrors.IsValidation(err):
		return http.StatusUnprocessableEntity
	case domainErrors.IsConfig(err):
		return http.StatusConflict
	case errors.Is(err, board.ErrClosed), errors.Is(err, app.ErrRegistryClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "not_configured"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	case http.StatusBadGateway:
		return "upstream_error"
	case http.StatusServiceUnavailable:
		return "unavailable"
	case http.StatusGatewayTimeout:
		return "upstream_timeout"
	default:
		return "internal_error"
	}
}

func writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	c.JSON(status, dto.ErrorResponse{Error: errorCode(status), Message: message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: errorCode(http.StatusBadRequest), Message: message})
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
