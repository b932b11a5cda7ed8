package dto

// CreateBudgetRequest represents the API request for creating a budget
type CreateBudgetRequest struct {
	Name           string  `json:"name" binding:"required"`
	CategoryID     *uint64 `json:"categoryId"`
	Amount         string  `json:"amount" binding:"required"`
	Period         string  `json:"period" binding:"required,oneof=monthly quarterly yearly"`
	StartDate      string  `json:"startDate"` // YYYY-MM-DD, defaults to today
	EndDate        string  `json:"endDate"`
	RolloverUnused bool    `json:"rolloverUnused"`
	AlertThreshold int     `json:"alertThreshold"`
}

// BudgetResponse represents the API response for a budget with its current
// window and health classification
type BudgetResponse struct {
	ID                 uint64  `json:"id"`
	UserID             uint64  `json:"userId"`
	Name               string  `json:"name"`
	CategoryID         *uint64 `json:"categoryId,omitempty"`
	Amount             string  `json:"amount"`
	Period             string  `json:"period"`
	CurrentPeriodStart string  `json:"currentPeriodStart"`
	CurrentPeriodEnd   string  `json:"currentPeriodEnd"`
	CurrentPeriodSpent string  `json:"currentPeriodSpent"`
	Rollover           string  `json:"rollover"`
	EffectiveAmount    string  `json:"effectiveAmount"`
	Health             string  `json:"health"`
	IsActive           bool    `json:"isActive"`
}
