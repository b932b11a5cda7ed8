package entity

import (
	"time"

	errs "github.com/cashfolio/cashfolio/internal/domain/error"
)

// Frequency is the recurrence granularity of an automated money movement.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// IsValidFrequency reports whether the given string names a known frequency.
func IsValidFrequency(frequency string) bool {
	switch Frequency(frequency) {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Subscription is a recurring expense template. When due it generates an
// expense transaction against its payment endpoint and advances the next
// billing date.
type Subscription struct {
	ID            uint64
	UserID        uint64
	Name          string
	AmountCents   int64
	Currency      string
	Frequency     Frequency
	NextBillingAt time.Time
	FromAccountID *uint64
	FromCardID    *uint64
	CategoryID    *uint64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecurringIncome is a recurring income template (salary, rent received).
// When due it generates an income transaction into the target account and
// advances the next expected date.
type RecurringIncome struct {
	ID             uint64
	UserID         uint64
	Name           string
	AmountCents    int64
	Currency       string
	Frequency      Frequency
	NextExpectedAt time.Time
	ToAccountID    uint64
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InvoiceStatus is the settlement state of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

// Invoice is a receivable. Settling it generates an income transaction into
// the target account and marks the invoice paid.
type Invoice struct {
	ID          uint64
	UserID      uint64
	ClientName  string
	AmountCents int64
	Currency    string
	DueDate     time.Time
	Status      InvoiceStatus
	ToAccountID uint64
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MarkPaid transitions the invoice to paid. Settling an already paid invoice
// is rejected so a settlement can never post twice.
func (i *Invoice) MarkPaid(at time.Time) error {
	if i.Status == InvoicePaid {
		return errs.ErrInvoiceAlreadyPaid
	}
	i.Status = InvoicePaid
	i.PaidAt = &at
	i.UpdatedAt = at
	return nil
}

// Overdue reports whether a pending invoice is past its due date at ref.
func (i *Invoice) Overdue(ref time.Time) bool {
	return i.Status == InvoicePending && ref.After(i.DueDate)
}
