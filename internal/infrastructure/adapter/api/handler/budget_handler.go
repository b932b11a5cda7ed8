package handler

import (
	"net/http"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	domainerr "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/usecase/budget"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	tracker      *budget.Tracker
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewBudgetHandler creates a new budget handler instance
func NewBudgetHandler(tracker *budget.Tracker, timeProvider coreport.TimeProvider, logger coreport.Logger) *BudgetHandler {
	return &BudgetHandler{
		tracker:      tracker,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create handles POST /user/:userId/budget
func (h *BudgetHandler) Create(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	b, err := h.buildBudget(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.tracker.Create(c.Request.Context(), b)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.budgetToResponse(created))
}

// Get handles GET /user/:userId/budget/:id. The budget is refreshed first so
// the reported window, spend and health are current.
func (h *BudgetHandler) Get(c *gin.Context) {
	if _, ok := parseUserID(c); !ok {
		return
	}
	budgetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.tracker.Refresh(c.Request.Context(), budgetID, h.timeProvider.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.budgetToResponse(b))
}

func (h *BudgetHandler) buildBudget(userID uint64, req *dto.CreateBudgetRequest) (*entity.Budget, error) {
	amountCents, err := entity.ParsePositiveAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	b := &entity.Budget{
		UserID:         userID,
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		AmountCents:    amountCents,
		Period:         entity.BudgetPeriod(req.Period),
		RolloverUnused: req.RolloverUnused,
		AlertThreshold: req.AlertThreshold,
		CreatedAt:      h.timeProvider.Now(),
		UpdatedAt:      h.timeProvider.Now(),
	}

	if req.StartDate != "" {
		start, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			return nil, domainerr.ErrInvalidRequest
		}
		b.StartDate = start
	}
	if req.EndDate != "" {
		end, err := time.Parse(time.DateOnly, req.EndDate)
		if err != nil {
			return nil, domainerr.ErrInvalidRequest
		}
		b.EndDate = &end
	}
	return b, nil
}

func (h *BudgetHandler) budgetToResponse(b *entity.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		Name:               b.Name,
		CategoryID:         b.CategoryID,
		Amount:             entity.FormatCents(b.AmountCents),
		Period:             string(b.Period),
		CurrentPeriodStart: b.CurrentPeriodStart.Format(time.DateOnly),
		CurrentPeriodEnd:   b.CurrentPeriodEnd.Format(time.DateOnly),
		CurrentPeriodSpent: entity.FormatCents(b.CurrentPeriodSpentCents),
		Rollover:           entity.FormatCents(b.RolloverCents),
		EffectiveAmount:    entity.FormatCents(b.EffectiveAmountCents()),
		Health:             string(budget.Health(b, h.timeProvider.Now())),
		IsActive:           b.IsActive,
	}
}
