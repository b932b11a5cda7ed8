package entity

import (
	"time"

	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
)

// CardType distinguishes the two card semantics
type CardType string

const (
	// CardDebit cards are not independent balance holders; their money
	// movements are redirected to the linked bank account.
	CardDebit CardType = "debit"
	// CardCredit cards hold debt. A positive balance means the cardholder
	// owes money; it is never cash.
	CardCredit CardType = "credit"
)

// IsValidCardType reports whether the given string names a known card type.
func IsValidCardType(cardType string) bool {
	return cardType == string(CardDebit) || cardType == string(CardCredit)
}

// Card represents a debit or credit card.
//
// For credit cards BalanceCents is the debt owed and is mutated by the
// posting/reversal engine. For debit cards the field is informational only;
// the engine mutates the linked bank account instead.
type Card struct {
	ID               uint64
	UserID           uint64
	Name             string
	Type             CardType
	BalanceCents     int64
	BankAccountID    *uint64
	CreditLimitCents int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewCard creates a card. Debit cards must reference the bank account they
// draw from; credit cards carry a credit limit and start with zero debt.
func NewCard(userID uint64, name string, cardType CardType, bankAccountID *uint64, creditLimit string, timeProvider coreport.TimeProvider) (*Card, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if name == "" {
		return nil, errs.ErrInvalidCardName
	}
	if !IsValidCardType(string(cardType)) {
		return nil, errs.ErrInvalidCardType
	}
	if cardType == CardDebit && bankAccountID == nil {
		return nil, errs.ErrDebitCardUnlinked
	}

	var limitCents int64
	if cardType == CardCredit && creditLimit != "" {
		var err error
		limitCents, err = ParsePositiveAmount(creditLimit)
		if err != nil {
			return nil, err
		}
	}

	now := timeProvider.Now()
	return &Card{
		UserID:           userID,
		Name:             name,
		Type:             cardType,
		BankAccountID:    bankAccountID,
		CreditLimitCents: limitCents,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// IsCredit reports whether the card is an independent debt holder.
func (c *Card) IsCredit() bool {
	return c.Type == CardCredit
}

// Debt returns the current debt as a decimal string. Only meaningful for
// credit cards.
func (c *Card) Debt() string {
	return FormatCents(c.BalanceCents)
}
