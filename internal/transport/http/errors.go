package http

import (
	"errors"
	"net/http"

	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP responses. Anything
// unrecognized becomes a generic 500; details stay in the logs.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var notFound *service.ProductNotFoundError
	var noStock *service.InsufficientStockError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, NewUnauthorizedError("authentication required"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, NewForbiddenError("insufficient permissions"))
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, NewNotFoundError("order not found"))
	case errors.Is(err, service.ErrInvoiceNotFound):
		c.JSON(http.StatusNotFound, NewNotFoundError("invoice not found"))
	case errors.Is(err, service.ErrLineNotFound):
		c.JSON(http.StatusNotFound, NewNotFoundError("order line not found"))
	case errors.As(err, &notFound):
		c.JSON(http.StatusBadRequest, NewValidationError(notFound.Error(), []FieldError{}))
	case errors.As(err, &noStock):
		c.JSON(http.StatusConflict, NewConflictError(noStock.Error()))
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, NewValidationError(err.Error(), []FieldError{}))
	case errors.Is(err, service.ErrPaymentAlreadyInitiated),
		errors.Is(err, service.ErrInvoiceExists):
		c.JSON(http.StatusConflict, NewConflictError(err.Error()))
	case errors.Is(err, service.ErrReplicatorDisabled):
		c.JSON(http.StatusServiceUnavailable, BaseError{Code: "sales_store_unavailable", Message: err.Error()})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewInternalError(""))
	}
}
