package ledger

import (
	"testing"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestValidateTransaction(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name        string
		transaction *entity.Transaction
		wantErr     error
	}{
		{
			name:    "nil transaction",
			wantErr: errs.ErrInvalidRequest,
		},
		{
			name:        "zero user ID",
			transaction: &entity.Transaction{Type: entity.TypeExpense, AmountCents: 100, FromAccountID: idRef(1)},
			wantErr:     errs.ErrInvalidUserID,
		},
		{
			name:        "unknown type",
			transaction: &entity.Transaction{UserID: 1, Type: "refund", AmountCents: 100},
			wantErr:     errs.ErrInvalidTransactionType,
		},
		{
			name:        "zero amount",
			transaction: &entity.Transaction{UserID: 1, Type: entity.TypeExpense, AmountCents: 0, FromAccountID: idRef(1)},
			wantErr:     errs.ErrNonPositiveAmount,
		},
		{
			name:        "negative amount",
			transaction: &entity.Transaction{UserID: 1, Type: entity.TypeExpense, AmountCents: -100, FromAccountID: idRef(1)},
			wantErr:     errs.ErrNonPositiveAmount,
		},
		{
			name:        "expense without source",
			transaction: &entity.Transaction{UserID: 1, Type: entity.TypeExpense, AmountCents: 100},
			wantErr:     errs.ErrMissingEndpoint,
		},
		{
			name:        "expense from card is fine",
			transaction: &entity.Transaction{UserID: 1, Type: entity.TypeExpense, AmountCents: 100, FromCardID: idRef(1)},
		},
		{
			name:        "income without target",
			transaction: &entity.Transaction{UserID: 1, Type: entity.TypeIncome, AmountCents: 100},
			wantErr:     errs.ErrMissingEndpoint,
		},
		{
			name:        "transfer missing target account",
			transaction: &entity.Transaction{UserID: 1, Type: entity.TypeTransfer, AmountCents: 100, FromAccountID: idRef(1)},
			wantErr:     errs.ErrMissingEndpoint,
		},
		{
			name:        "transfer with both accounts",
			transaction: &entity.Transaction{UserID: 1, Type: entity.TypeTransfer, AmountCents: 100, FromAccountID: idRef(1), ToAccountID: idRef(2)},
		},
		{
			name:        "card payment missing card",
			transaction: &entity.Transaction{UserID: 1, Type: entity.TypeCardPayment, AmountCents: 100, FromAccountID: idRef(1)},
			wantErr:     errs.ErrMissingEndpoint,
		},
		{
			name:        "card payment with both endpoints",
			transaction: &entity.Transaction{UserID: 1, Type: entity.TypeCardPayment, AmountCents: 100, FromAccountID: idRef(1), ToCardID: idRef(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTransaction(tt.transaction)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
