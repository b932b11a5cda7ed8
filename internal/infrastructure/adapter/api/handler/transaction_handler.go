package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	domainerr "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/usecase/ledger"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledgerService *ledger.Service
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	ledgerService *ledger.Service,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Create handles POST /user/:userId/transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid transaction request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	t, err := h.buildTransaction(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.ledgerService.Create(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transactionToResponse(created))
}

// Update handles PUT /user/:userId/transaction/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	t, err := h.buildTransaction(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	t.ID = transactionID

	updated, err := h.ledgerService.Update(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactionToResponse(updated))
}

// Delete handles DELETE /user/:userId/transaction/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	if _, ok := parseUserID(c); !ok {
		return
	}
	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ledgerService.Delete(c.Request.Context(), transactionID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// buildTransaction maps the request DTO onto a domain transaction
func (h *TransactionHandler) buildTransaction(userID uint64, req *dto.TransactionRequest) (*entity.Transaction, error) {
	transactionDate := time.Time{}
	if req.TransactionDate != "" {
		parsed, err := time.Parse(time.DateOnly, req.TransactionDate)
		if err != nil {
			return nil, domainerr.ErrInvalidRequest
		}
		transactionDate = parsed
	}

	t, err := entity.NewTransaction(
		userID,
		entity.TransactionType(req.Type),
		req.Amount,
		req.Currency,
		req.Title,
		transactionDate,
		h.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	t.Description = req.Description
	t.FromAccountID = req.FromAccountID
	t.ToAccountID = req.ToAccountID
	t.FromCardID = req.FromCardID
	t.ToCardID = req.ToCardID
	t.CategoryID = req.CategoryID
	t.MerchantID = req.MerchantID
	return t, nil
}

func transactionToResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              t.ID,
		ReferenceID:     t.ReferenceID,
		UserID:          t.UserID,
		Type:            string(t.Type),
		Amount:          t.Amount(),
		Currency:        t.Currency,
		Title:           t.Title,
		Description:     t.Description,
		FromAccountID:   t.FromAccountID,
		ToAccountID:     t.ToAccountID,
		FromCardID:      t.FromCardID,
		ToCardID:        t.ToCardID,
		CategoryID:      t.CategoryID,
		TransactionDate: t.TransactionDate.Format(time.DateOnly),
	}
}

// parseUserID extracts and validates the userId path parameter
func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Invalid user ID format",
		})
		return 0, false
	}
	return userID, true
}

// parseIDParam extracts a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid " + name + " format",
		})
		return 0, false
	}
	return id, true
}
