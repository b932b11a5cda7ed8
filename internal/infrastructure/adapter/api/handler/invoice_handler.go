package handler

import (
	"net/http"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/usecase/recurring"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice settlement HTTP requests
type InvoiceHandler struct {
	biller *recurring.Biller
	logger coreport.Logger
}

// NewInvoiceHandler creates a new invoice handler instance
func NewInvoiceHandler(biller *recurring.Biller, logger coreport.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		biller: biller,
		logger: logger,
	}
}

// invoiceResponse is the settlement response body
type invoiceResponse struct {
	ID         uint64 `json:"id"`
	UserID     uint64 `json:"userId"`
	ClientName string `json:"clientName"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
	PaidAt     string `json:"paidAt,omitempty"`
}

// Settle handles POST /user/:userId/invoice/:id/settle
func (h *InvoiceHandler) Settle(c *gin.Context) {
	if _, ok := parseUserID(c); !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.biller.SettleInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := invoiceResponse{
		ID:         invoice.ID,
		UserID:     invoice.UserID,
		ClientName: invoice.ClientName,
		Amount:     entity.FormatCents(invoice.AmountCents),
		Status:     string(invoice.Status),
	}
	if invoice.PaidAt != nil {
		resp.PaidAt = invoice.PaidAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}
