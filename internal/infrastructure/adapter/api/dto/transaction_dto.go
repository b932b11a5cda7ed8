package dto

// TransactionRequest represents the API request for recording a transaction
type TransactionRequest struct {
	Type            string  `json:"type" binding:"required,oneof=expense income transfer card_payment"`
	Amount          string  `json:"amount" binding:"required"`
	Currency        string  `json:"currency"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	FromAccountID   *uint64 `json:"fromAccountId"`
	ToAccountID     *uint64 `json:"toAccountId"`
	FromCardID      *uint64 `json:"fromCardId"`
	ToCardID        *uint64 `json:"toCardId"`
	CategoryID      *uint64 `json:"categoryId"`
	MerchantID      *uint64 `json:"merchantId"`
	TransactionDate string  `json:"transactionDate"` // YYYY-MM-DD, defaults to today
}

// TransactionResponse represents the API response for a stored transaction
type TransactionResponse struct {
	ID              uint64  `json:"id"`
	ReferenceID     string  `json:"referenceId"`
	UserID          uint64  `json:"userId"`
	Type            string  `json:"type"`
	Amount          string  `json:"amount"`
	Currency        string  `json:"currency"`
	Title           string  `json:"title,omitempty"`
	Description     string  `json:"description,omitempty"`
	FromAccountID   *uint64 `json:"fromAccountId,omitempty"`
	ToAccountID     *uint64 `json:"toAccountId,omitempty"`
	FromCardID      *uint64 `json:"fromCardId,omitempty"`
	ToCardID        *uint64 `json:"toCardId,omitempty"`
	CategoryID      *uint64 `json:"categoryId,omitempty"`
	TransactionDate string  `json:"transactionDate"`
}
