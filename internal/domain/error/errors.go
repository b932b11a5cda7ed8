package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds   = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeInvalidType         = 4004
	CodeConstraintViolation = 4005
	CodeInvalidPeriod       = 4006
	CodeInvoiceAlreadyPaid  = 4007
	CodeAccountNotFound     = 4040
	CodeCardNotFound        = 4041
	CodeTransactionNotFound = 4042
	CodeBudgetNotFound      = 4043
	CodeRecordLocked        = 4230

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodePostingFailed  = 5001
)

// Base error types
var (
	// ErrInsufficientFunds is returned when a source account cannot cover a
	// transfer or card payment. Plain expenses do not enforce this.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned when an amount string is malformed
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNonPositiveAmount is returned when a transaction amount is zero or negative
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidTransactionType is returned for an unknown transaction type
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidCardType is returned for an unknown card type
	ErrInvalidCardType = errors.New("invalid card type")

	// ErrInvalidAccountName is returned when an account name is empty
	ErrInvalidAccountName = errors.New("account name cannot be empty")

	// ErrInvalidCardName is returned when a card name is empty
	ErrInvalidCardName = errors.New("card name cannot be empty")

	// ErrMissingEndpoint is returned when a transaction lacks the endpoint
	// reference its type requires
	ErrMissingEndpoint = errors.New("transaction is missing a required endpoint reference")

	// ErrDebitCardUnlinked is returned when a debit card has no linked bank
	// account; a debit card is not an independent balance holder
	ErrDebitCardUnlinked = errors.New("debit card is not linked to a bank account")

	// ErrHolderNotFound is returned by the posting engine when a referenced
	// money holder does not exist. This is a programming-contract violation,
	// not a user-facing condition.
	ErrHolderNotFound = errors.New("money holder not found")

	// ErrInvalidPeriod is returned for an unknown budget period
	ErrInvalidPeriod = errors.New("invalid budget period")

	// ErrInvalidFrequency is returned for an unknown recurrence frequency
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")

	// ErrInvoiceAlreadyPaid is returned when settling an invoice twice
	ErrInvoiceAlreadyPaid = errors.New("invoice has already been paid")

	// ErrAccountNotFound is returned when the requested bank account doesn't exist
	ErrAccountNotFound = errors.New("bank account not found")

	// ErrCardNotFound is returned when the requested card doesn't exist
	ErrCardNotFound = errors.New("card not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrBudgetNotFound is returned when the requested budget doesn't exist
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrSubscriptionNotFound is returned when the requested subscription doesn't exist
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrRecurringIncomeNotFound is returned when the requested recurring income doesn't exist
	ErrRecurringIncomeNotFound = errors.New("recurring income not found")

	// ErrInvoiceNotFound is returned when the requested invoice doesn't exist
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrRecordLocked is returned when a row is locked by a concurrent operation
	ErrRecordLocked = errors.New("record is locked by another operation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNonPositiveAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidTransactionType), errors.Is(err, ErrInvalidCardType):
		return CodeInvalidType
	case errors.Is(err, ErrInvalidPeriod), errors.Is(err, ErrInvalidFrequency):
		return CodeInvalidPeriod
	case errors.Is(err, ErrInvoiceAlreadyPaid):
		return CodeInvoiceAlreadyPaid
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrCardNotFound):
		return CodeCardNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrBudgetNotFound):
		return CodeBudgetNotFound
	case errors.Is(err, ErrRecordLocked):
		return CodeRecordLocked
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrHolderNotFound):
		return CodePostingFailed
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError carries enough context for the caller to act on:
// which holder is short and by how much.
type InsufficientFundsError struct {
	HolderKind     string
	HolderID       uint64
	RequiredCents  int64
	AvailableCents int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on %s %d: required %d cents, available %d cents",
		e.HolderKind, e.HolderID, e.RequiredCents, e.AvailableCents)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"holder_kind":     e.HolderKind,
		"holder_id":       e.HolderID,
		"required_cents":  e.RequiredCents,
		"available_cents": e.AvailableCents,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a detailed insufficient funds error
func NewInsufficientFundsError(holderKind string, holderID uint64, requiredCents, availableCents int64) error {
	return &InsufficientFundsError{
		HolderKind:     holderKind,
		HolderID:       holderID,
		RequiredCents:  requiredCents,
		AvailableCents: availableCents,
	}
}

// PostingError reports a balance mutation the posting engine could not apply
// because a referenced holder does not exist. Existence validation is the
// caller's job before reaching the engine, so this indicates a broken contract.
type PostingError struct {
	HolderKind string
	HolderID   uint64
	Operation  string
	Err        error
}

// Error implements the error interface
func (e *PostingError) Error() string {
	return fmt.Sprintf("posting failed: %s on %s %d: %v", e.Operation, e.HolderKind, e.HolderID, e.Err)
}

// Unwrap returns the underlying error
func (e *PostingError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PostingError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "posting_error",
		"holder_kind": e.HolderKind,
		"holder_id":   e.HolderID,
		"operation":   e.Operation,
		"error":       e.Err.Error(),
		"error_code":  CodePostingFailed,
	}
}

// NewPostingError creates a detailed posting error
func NewPostingError(holderKind string, holderID uint64, operation string, err error) error {
	return &PostingError{
		HolderKind: holderKind,
		HolderID:   holderID,
		Operation:  operation,
		Err:        err,
	}
}

// NewInvalidTransactionTypeError wraps ErrInvalidTransactionType with the
// offending value
func NewInvalidTransactionTypeError(transactionType string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransactionType, transactionType)
}

// NewInvalidPeriodError wraps ErrInvalidPeriod with the offending value
func NewInvalidPeriodError(period string) error {
	return fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
}

// NewInvalidFrequencyError wraps ErrInvalidFrequency with the offending value
func NewInvalidFrequencyError(frequency string) error {
	return fmt.Errorf("%w: %q", ErrInvalidFrequency, frequency)
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrBudgetNotFound) ||
		errors.Is(err, ErrSubscriptionNotFound) ||
		errors.Is(err, ErrRecurringIncomeNotFound) ||
		errors.Is(err, ErrInvoiceNotFound)
}

// IsRecordLockedError checks if the error is related to a locked row
func IsRecordLockedError(err error) bool {
	return errors.Is(err, ErrRecordLocked)
}

// IsValidationError checks if the error is a caller-input validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidTransactionType) ||
		errors.Is(err, ErrInvalidCardType) ||
		errors.Is(err, ErrMissingEndpoint) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidFrequency)
}
