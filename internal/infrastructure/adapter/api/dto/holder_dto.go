package dto

// CreateAccountRequest represents the API request for opening a bank account
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required"`
	OpeningBalance string `json:"openingBalance"`
	Currency       string `json:"currency"`
}

// AccountResponse represents the API response for a bank account
type AccountResponse struct {
	ID       uint64 `json:"id"`
	UserID   uint64 `json:"userId"`
	Name     string `json:"name"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

// CreateCardRequest represents the API request for registering a card
type CreateCardRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type" binding:"required,oneof=debit credit"`
	BankAccountID *uint64 `json:"bankAccountId"`
	CreditLimit   string  `json:"creditLimit"`
}

// CardResponse represents the API response for a card
type CardResponse struct {
	ID            uint64  `json:"id"`
	UserID        uint64  `json:"userId"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Balance       string  `json:"balance"`
	BankAccountID *uint64 `json:"bankAccountId,omitempty"`
	CreditLimit   string  `json:"creditLimit,omitempty"`
}
