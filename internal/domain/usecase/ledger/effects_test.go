package ledger

import (
	"testing"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idRef(id uint64) *uint64 { return &id }

func TestEffectsOf(t *testing.T) {
	tests := []struct {
		name        string
		transaction *entity.Transaction
		expected    []Effect
	}{
		{
			name: "expense from account",
			transaction: &entity.Transaction{
				Type: entity.TypeExpense, AmountCents: 2500, FromAccountID: idRef(1),
			},
			expected: []Effect{
				{Ref: entity.HolderRef{Kind: entity.HolderAccount, ID: 1}, AmountCents: 2500, Direction: Outflow},
			},
		},
		{
			name: "expense from card",
			transaction: &entity.Transaction{
				Type: entity.TypeExpense, AmountCents: 2500, FromCardID: idRef(2),
			},
			expected: []Effect{
				{Ref: entity.HolderRef{Kind: entity.HolderCard, ID: 2}, AmountCents: 2500, Direction: Outflow},
			},
		},
		{
			name: "income to account",
			transaction: &entity.Transaction{
				Type: entity.TypeIncome, AmountCents: 500000, ToAccountID: idRef(1),
			},
			expected: []Effect{
				{Ref: entity.HolderRef{Kind: entity.HolderAccount, ID: 1}, AmountCents: 500000, Direction: Inflow},
			},
		},
		{
			name: "transfer between accounts",
			transaction: &entity.Transaction{
				Type: entity.TypeTransfer, AmountCents: 10000, FromAccountID: idRef(1), ToAccountID: idRef(2),
			},
			expected: []Effect{
				{Ref: entity.HolderRef{Kind: entity.HolderAccount, ID: 1}, AmountCents: 10000, Direction: Outflow},
				{Ref: entity.HolderRef{Kind: entity.HolderAccount, ID: 2}, AmountCents: 10000, Direction: Inflow},
			},
		},
		{
			name: "card payment",
			transaction: &entity.Transaction{
				Type: entity.TypeCardPayment, AmountCents: 30000, FromAccountID: idRef(1), ToCardID: idRef(9),
			},
			expected: []Effect{
				{Ref: entity.HolderRef{Kind: entity.HolderAccount, ID: 1}, AmountCents: 30000, Direction: Outflow},
				{Ref: entity.HolderRef{Kind: entity.HolderCard, ID: 9}, AmountCents: 30000, Direction: Inflow},
			},
		},
		{
			name: "transfer ignores populated card fields",
			transaction: &entity.Transaction{
				Type: entity.TypeTransfer, AmountCents: 10000,
				FromAccountID: idRef(1), ToAccountID: idRef(2),
				FromCardID: idRef(7), ToCardID: idRef(8),
			},
			expected: []Effect{
				{Ref: entity.HolderRef{Kind: entity.HolderAccount, ID: 1}, AmountCents: 10000, Direction: Outflow},
				{Ref: entity.HolderRef{Kind: entity.HolderAccount, ID: 2}, AmountCents: 10000, Direction: Inflow},
			},
		},
		{
			name: "expense ignores populated target fields",
			transaction: &entity.Transaction{
				Type: entity.TypeExpense, AmountCents: 2500,
				FromAccountID: idRef(1), ToAccountID: idRef(2), ToCardID: idRef(3),
			},
			expected: []Effect{
				{Ref: entity.HolderRef{Kind: entity.HolderAccount, ID: 1}, AmountCents: 2500, Direction: Outflow},
			},
		},
		{
			name:        "unknown type yields no effects",
			transaction: &entity.Transaction{Type: "refund", AmountCents: 100, FromAccountID: idRef(1)},
			expected:    []Effect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectsOf(tt.transaction))
		})
	}
}

func TestEffectsOfIsPure(t *testing.T) {
	tx := &entity.Transaction{
		Type: entity.TypeTransfer, AmountCents: 10000, FromAccountID: idRef(1), ToAccountID: idRef(2),
	}
	assert.Equal(t, EffectsOf(tx), EffectsOf(tx))
}

func TestEffectInverse(t *testing.T) {
	effect := Effect{
		Ref:         entity.HolderRef{Kind: entity.HolderAccount, ID: 1},
		AmountCents: 2500,
		Direction:   Outflow,
	}

	inverse := effect.Inverse()
	assert.Equal(t, Inflow, inverse.Direction)
	assert.Equal(t, effect.Ref, inverse.Ref)
	assert.Equal(t, effect.AmountCents, inverse.AmountCents)

	// Double inversion is the identity.
	assert.Equal(t, effect, inverse.Inverse())
}

func TestReversalMatchesPosting(t *testing.T) {
	tx := &entity.Transaction{
		Type: entity.TypeCardPayment, AmountCents: 30000, FromAccountID: idRef(1), ToCardID: idRef(9),
	}

	effects := EffectsOf(tx)
	require.Len(t, effects, 2)
	for i, effect := range EffectsOf(tx) {
		assert.Equal(t, effect.Inverse().Inverse(), effects[i])
	}
}
