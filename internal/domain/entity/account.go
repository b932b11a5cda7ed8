package entity

import (
	"time"

	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
)

// BankAccount is a cash-holding account. Its balance is stored in cents and is
// mutated only through the posting/reversal engine or an explicit opening
// balance at creation time.
type BankAccount struct {
	ID           uint64
	UserID       uint64
	Name         string
	BalanceCents int64
	Currency     string
	IsDefault    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewBankAccount creates a bank account with an opening balance. The opening
// balance may be negative; overdraft is representable.
func NewBankAccount(userID uint64, name, openingBalance, currency string, timeProvider coreport.TimeProvider) (*BankAccount, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if name == "" {
		return nil, errs.ErrInvalidAccountName
	}

	balanceCents, err := ParseAmount(openingBalance)
	if err != nil {
		return nil, err
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	now := timeProvider.Now()
	return &BankAccount{
		UserID:       userID,
		Name:         name,
		BalanceCents: balanceCents,
		Currency:     currency,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Balance returns the balance as a decimal string with 2 decimal places.
func (a *BankAccount) Balance() string {
	return FormatCents(a.BalanceCents)
}

// DefaultCurrency is used when callers do not specify a currency.
const DefaultCurrency = "CHF"
