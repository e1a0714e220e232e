package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda/internal/repository"
	"tienda/internal/service"
)

// respondError переводит доменную ошибку в HTTP-статус; тело всегда {"message": ...}
func respondError(c *gin.Context, err error) {
	c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotEnoughStock), errors.Is(err, repository.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
