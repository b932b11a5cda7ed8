package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/cashfolio/cashfolio/internal/domain/error"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to an HTTP status and writes the
// standardized error body.
func respondError(c *gin.Context, err error) {
	c.JSON(httpStatusFor(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	})
}

func httpStatusFor(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsValidationError(err):
		return http.StatusBadRequest
	case domainerr.IsInsufficientFundsError(err):
		return http.StatusUnprocessableEntity
	case domainerr.IsRecordLockedError(err),
		errors.Is(err, domainerr.ErrInvoiceAlreadyPaid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
