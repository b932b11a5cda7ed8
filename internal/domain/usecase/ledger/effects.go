package ledger

import (
	"github.com/cashfolio/cashfolio/internal/domain/entity"
)

// Direction is the money-movement sense of an effect relative to one holder.
type Direction int

const (
	// Outflow means money leaves the holder: a bank account's balance goes
	// down, a credit card's debt goes up.
	Outflow Direction = iota
	// Inflow means money arrives at the holder: a bank account's balance goes
	// up, a credit card's debt goes down.
	Inflow
)

// Effect is one balance mutation implied by a transaction, expressed against
// the holder reference stored on the transaction. How a card effect lands
// (debt for credit cards, the linked account for debit cards) is resolved at
// apply time, not here.
type Effect struct {
	Ref         entity.HolderRef
	AmountCents int64
	Direction   Direction
}

// Inverse returns the exact algebraic inverse of the effect.
func (e Effect) Inverse() Effect {
	inverted := e
	if e.Direction == Outflow {
		inverted.Direction = Inflow
	} else {
		inverted.Direction = Outflow
	}
	return inverted
}

// EffectsOf computes the balance effects implied by a transaction's type and
// endpoint references. The function is pure: calling it twice with the same
// transaction yields the same effects, and reversing a transaction applies
// exactly the inverses of what posting applied.
//
// Endpoint fields that are not meaningful for the transaction's type are
// ignored even when populated; callers should not populate them, but the
// engine must not act on them either.
func EffectsOf(t *entity.Transaction) []Effect {
	effects := make([]Effect, 0, 2)

	switch t.Type {
	case entity.TypeExpense:
		if t.FromAccountID != nil {
			effects = append(effects, accountEffect(*t.FromAccountID, t.AmountCents, Outflow))
		}
		if t.FromCardID != nil {
			effects = append(effects, cardEffect(*t.FromCardID, t.AmountCents, Outflow))
		}

	case entity.TypeIncome:
		if t.ToAccountID != nil {
			effects = append(effects, accountEffect(*t.ToAccountID, t.AmountCents, Inflow))
		}
		if t.ToCardID != nil {
			effects = append(effects, cardEffect(*t.ToCardID, t.AmountCents, Inflow))
		}

	case entity.TypeTransfer:
		// Transfers move cash between bank accounts; card fields are inert.
		if t.FromAccountID != nil {
			effects = append(effects, accountEffect(*t.FromAccountID, t.AmountCents, Outflow))
		}
		if t.ToAccountID != nil {
			effects = append(effects, accountEffect(*t.ToAccountID, t.AmountCents, Inflow))
		}

	case entity.TypeCardPayment:
		// Paying down credit card debt: cash leaves the account, debt shrinks.
		if t.FromAccountID != nil {
			effects = append(effects, accountEffect(*t.FromAccountID, t.AmountCents, Outflow))
		}
		if t.ToCardID != nil {
			effects = append(effects, cardEffect(*t.ToCardID, t.AmountCents, Inflow))
		}
	}

	return effects
}

func accountEffect(id uint64, amountCents int64, direction Direction) Effect {
	return Effect{
		Ref:         entity.HolderRef{Kind: entity.HolderAccount, ID: id},
		AmountCents: amountCents,
		Direction:   direction,
	}
}

func cardEffect(id uint64, amountCents int64, direction Direction) Effect {
	return Effect{
		Ref:         entity.HolderRef{Kind: entity.HolderCard, ID: id},
		AmountCents: amountCents,
		Direction:   direction,
	}
}
