package ledger

import (
	"fmt"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
)

// Validator checks transaction intents before they reach the engine.
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateTransaction validates the structural invariants of a transaction:
// positive amount, known type, and the endpoint references the type requires.
// It does not check holder existence or funds; those are preconditions
// enforced inside the lifecycle coordinator's atomic unit.
func (v *Validator) ValidateTransaction(t *entity.Transaction) error {
	if t == nil {
		return errs.ErrInvalidRequest
	}
	if t.UserID == 0 {
		return errs.ErrInvalidUserID
	}
	if !entity.IsValidTransactionType(string(t.Type)) {
		return errs.NewInvalidTransactionTypeError(string(t.Type))
	}
	if t.AmountCents <= 0 {
		return errs.ErrNonPositiveAmount
	}

	return v.validateEndpoints(t)
}

// validateEndpoints checks that the endpoints the transaction type acts on
// are present. Extra populated fields are tolerated; the effect table simply
// never reads them.
func (v *Validator) validateEndpoints(t *entity.Transaction) error {
	switch t.Type {
	case entity.TypeExpense:
		if t.FromAccountID == nil && t.FromCardID == nil {
			return fmt.Errorf("%w: expense needs a source account or card", errs.ErrMissingEndpoint)
		}
	case entity.TypeIncome:
		if t.ToAccountID == nil && t.ToCardID == nil {
			return fmt.Errorf("%w: income needs a target account or card", errs.ErrMissingEndpoint)
		}
	case entity.TypeTransfer:
		if t.FromAccountID == nil || t.ToAccountID == nil {
			return fmt.Errorf("%w: transfer needs a source and a target account", errs.ErrMissingEndpoint)
		}
	case entity.TypeCardPayment:
		if t.FromAccountID == nil || t.ToCardID == nil {
			return fmt.Errorf("%w: card payment needs a source account and a target card", errs.ErrMissingEndpoint)
		}
	}
	return nil
}
