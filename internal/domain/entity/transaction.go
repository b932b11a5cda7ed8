package entity

import (
	"time"

	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/google/uuid"
)

// TransactionType determines which endpoint references of a transaction are
// semantically active and in which direction money moves.
type TransactionType string

const (
	// TypeExpense takes money out of the from endpoint (account or card).
	TypeExpense TransactionType = "expense"
	// TypeIncome puts money into the to endpoint (account or card).
	TypeIncome TransactionType = "income"
	// TypeTransfer moves money between two bank accounts.
	TypeTransfer TransactionType = "transfer"
	// TypeCardPayment pays down credit card debt from a bank account.
	TypeCardPayment TransactionType = "card_payment"
)

// IsValidTransactionType reports whether the given string names a known type.
func IsValidTransactionType(transactionType string) bool {
	switch TransactionType(transactionType) {
	case TypeExpense, TypeIncome, TypeTransfer, TypeCardPayment:
		return true
	}
	return false
}

// OriginKind identifies the recurring entity kind that generated a transaction.
type OriginKind string

const (
	OriginSubscription    OriginKind = "subscription"
	OriginRecurringIncome OriginKind = "recurring_income"
	OriginInvoice         OriginKind = "invoice"
)

// OriginRef links a transaction back to the recurring entity that generated
// it. The link exists for audit and traceability only; it carries no behavior.
type OriginRef struct {
	Kind OriginKind
	ID   uint64
}

// HolderKind identifies the kind of a balance-holding entity.
type HolderKind string

const (
	HolderAccount HolderKind = "account"
	HolderCard    HolderKind = "card"
)

// HolderRef identifies a single money holder a transaction endpoint points at.
type HolderRef struct {
	Kind HolderKind
	ID   uint64
}

// Transaction is an immutable-by-convention record of one money-movement
// event. It never encodes its own "already applied" state; applying or
// reversing it exactly once per direction is the caller's responsibility.
type Transaction struct {
	ID          uint64
	ReferenceID string
	UserID      uint64
	Type        TransactionType
	AmountCents int64
	Currency    string
	Title       string
	Description string

	// Endpoint references; the type determines which are active.
	FromAccountID *uint64
	ToAccountID   *uint64
	FromCardID    *uint64
	ToCardID      *uint64

	CategoryID *uint64
	MerchantID *uint64
	Origin     *OriginRef

	TransactionDate time.Time
	CreatedAt       time.Time
}

// NewTransaction creates a transaction with basic validation. Endpoint
// existence is the caller's responsibility; the posting engine assumes valid
// references.
func NewTransaction(
	userID uint64,
	transactionType TransactionType,
	amount string,
	currency string,
	title string,
	transactionDate time.Time,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !IsValidTransactionType(string(transactionType)) {
		return nil, errs.NewInvalidTransactionTypeError(string(transactionType))
	}

	amountCents, err := ParsePositiveAmount(amount)
	if err != nil {
		return nil, err
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if transactionDate.IsZero() {
		transactionDate = timeProvider.Now()
	}

	return &Transaction{
		ReferenceID:     uuid.NewString(),
		UserID:          userID,
		Type:            transactionType,
		AmountCents:     amountCents,
		Currency:        currency,
		Title:           title,
		TransactionDate: transactionDate,
		CreatedAt:       timeProvider.Now(),
	}, nil
}

// Amount returns the amount as a decimal string with 2 decimal places.
func (t *Transaction) Amount() string {
	return FormatCents(t.AmountCents)
}

// Snapshot returns a structural copy of the transaction. Pointer fields are
// copied so that mutating the original afterwards cannot change the snapshot;
// the reversal of an edit must see the pre-edit endpoint references and amount.
func (t *Transaction) Snapshot() *Transaction {
	copied := *t
	copied.FromAccountID = copyID(t.FromAccountID)
	copied.ToAccountID = copyID(t.ToAccountID)
	copied.FromCardID = copyID(t.FromCardID)
	copied.ToCardID = copyID(t.ToCardID)
	copied.CategoryID = copyID(t.CategoryID)
	copied.MerchantID = copyID(t.MerchantID)
	if t.Origin != nil {
		origin := *t.Origin
		copied.Origin = &origin
	}
	return &copied
}

func copyID(id *uint64) *uint64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
