package handler

import (
	"net/http"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	domainerr "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/usecase/holder"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// HolderHandler handles bank account and card HTTP requests
type HolderHandler struct {
	holderService *holder.Service
	logger        coreport.Logger
}

// NewHolderHandler creates a new holder handler instance
func NewHolderHandler(holderService *holder.Service, logger coreport.Logger) *HolderHandler {
	return &HolderHandler{
		holderService: holderService,
		logger:        logger,
	}
}

// CreateAccount handles POST /user/:userId/account
func (h *HolderHandler) CreateAccount(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if req.OpeningBalance == "" {
		req.OpeningBalance = "0"
	}

	account, err := h.holderService.CreateAccount(c.Request.Context(), userID, req.Name, req.OpeningBalance, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, accountToResponse(account))
}

// GetAccount handles GET /user/:userId/account/:id
func (h *HolderHandler) GetAccount(c *gin.Context) {
	if _, ok := parseUserID(c); !ok {
		return
	}
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.holderService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, accountToResponse(account))
}

// CreateCard handles POST /user/:userId/card
func (h *HolderHandler) CreateCard(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	card, err := h.holderService.CreateCard(c.Request.Context(), userID, req.Name, entity.CardType(req.Type), req.BankAccountID, req.CreditLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cardToResponse(card))
}

// GetCard handles GET /user/:userId/card/:id
func (h *HolderHandler) GetCard(c *gin.Context) {
	if _, ok := parseUserID(c); !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	card, err := h.holderService.GetCard(c.Request.Context(), cardID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cardToResponse(card))
}

func accountToResponse(a *entity.BankAccount) dto.AccountResponse {
	return dto.AccountResponse{
		ID:       a.ID,
		UserID:   a.UserID,
		Name:     a.Name,
		Balance:  a.Balance(),
		Currency: a.Currency,
	}
}

func cardToResponse(card *entity.Card) dto.CardResponse {
	resp := dto.CardResponse{
		ID:            card.ID,
		UserID:        card.UserID,
		Name:          card.Name,
		Type:          string(card.Type),
		Balance:       entity.FormatCents(card.BalanceCents),
		BankAccountID: card.BankAccountID,
	}
	if card.IsCredit() {
		resp.CreditLimit = entity.FormatCents(card.CreditLimitCents)
	}
	return resp
}
