package ledger

import (
	"context"
	"testing"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(store *memStore) *Engine {
	return NewEngine(
		&memAccountRepo{store: store},
		&memCardRepo{store: store},
		logger.NewNoopLogger(),
	)
}

func TestEnginePostAndReverse(t *testing.T) {
	ctx := context.Background()

	t.Run("expense from account round-trips to zero", func(t *testing.T) {
		store := newMemStore()
		account := store.addAccount(1, 100000)
		engine := newTestEngine(store)

		tx := &entity.Transaction{Type: entity.TypeExpense, AmountCents: 12000, FromAccountID: &account.ID}

		require.NoError(t, engine.Post(ctx, tx))
		assert.Equal(t, int64(88000), store.accounts[account.ID].BalanceCents)

		require.NoError(t, engine.Reverse(ctx, tx))
		assert.Equal(t, int64(100000), store.accounts[account.ID].BalanceCents)
	})

	t.Run("income to account", func(t *testing.T) {
		store := newMemStore()
		account := store.addAccount(1, 0)
		engine := newTestEngine(store)

		tx := &entity.Transaction{Type: entity.TypeIncome, AmountCents: 500000, ToAccountID: &account.ID}

		require.NoError(t, engine.Post(ctx, tx))
		assert.Equal(t, int64(500000), store.accounts[account.ID].BalanceCents)

		require.NoError(t, engine.Reverse(ctx, tx))
		assert.Equal(t, int64(0), store.accounts[account.ID].BalanceCents)
	})

	t.Run("transfer conserves total balance", func(t *testing.T) {
		store := newMemStore()
		from := store.addAccount(1, 100000)
		to := store.addAccount(1, 20000)
		engine := newTestEngine(store)

		tx := &entity.Transaction{Type: entity.TypeTransfer, AmountCents: 30000, FromAccountID: &from.ID, ToAccountID: &to.ID}

		require.NoError(t, engine.Post(ctx, tx))
		assert.Equal(t, int64(70000), store.accounts[from.ID].BalanceCents)
		assert.Equal(t, int64(50000), store.accounts[to.ID].BalanceCents)
		assert.Equal(t, int64(120000), store.accounts[from.ID].BalanceCents+store.accounts[to.ID].BalanceCents)

		require.NoError(t, engine.Reverse(ctx, tx))
		assert.Equal(t, int64(100000), store.accounts[from.ID].BalanceCents)
		assert.Equal(t, int64(20000), store.accounts[to.ID].BalanceCents)
	})
}

func TestEngineCreditCard(t *testing.T) {
	ctx := context.Background()

	t.Run("expense on a credit card grows debt", func(t *testing.T) {
		store := newMemStore()
		card := store.addCard(1, entity.CardCredit, nil)
		engine := newTestEngine(store)

		tx := &entity.Transaction{Type: entity.TypeExpense, AmountCents: 7500, FromCardID: &card.ID}

		require.NoError(t, engine.Post(ctx, tx))
		assert.Equal(t, int64(7500), store.cards[card.ID].BalanceCents)

		require.NoError(t, engine.Reverse(ctx, tx))
		assert.Equal(t, int64(0), store.cards[card.ID].BalanceCents)
	})

	t.Run("card payment moves cash out and shrinks debt", func(t *testing.T) {
		store := newMemStore()
		account := store.addAccount(1, 100000)
		card := store.addCard(1, entity.CardCredit, nil)
		store.cards[card.ID].BalanceCents = 40000
		engine := newTestEngine(store)

		tx := &entity.Transaction{Type: entity.TypeCardPayment, AmountCents: 30000, FromAccountID: &account.ID, ToCardID: &card.ID}

		require.NoError(t, engine.Post(ctx, tx))
		assert.Equal(t, int64(70000), store.accounts[account.ID].BalanceCents)
		assert.Equal(t, int64(10000), store.cards[card.ID].BalanceCents)

		require.NoError(t, engine.Reverse(ctx, tx))
		assert.Equal(t, int64(100000), store.accounts[account.ID].BalanceCents)
		assert.Equal(t, int64(40000), store.cards[card.ID].BalanceCents)
	})
}

func TestEngineDebitCardRedirect(t *testing.T) {
	ctx := context.Background()

	t.Run("expense on a debit card lands on the linked account", func(t *testing.T) {
		store := newMemStore()
		account := store.addAccount(1, 50000)
		card := store.addCard(1, entity.CardDebit, &account.ID)
		engine := newTestEngine(store)

		tx := &entity.Transaction{Type: entity.TypeExpense, AmountCents: 9900, FromCardID: &card.ID}

		require.NoError(t, engine.Post(ctx, tx))
		assert.Equal(t, int64(40100), store.accounts[account.ID].BalanceCents)
		// The debit card itself never holds a balance.
		assert.Equal(t, int64(0), store.cards[card.ID].BalanceCents)

		require.NoError(t, engine.Reverse(ctx, tx))
		assert.Equal(t, int64(50000), store.accounts[account.ID].BalanceCents)
	})

	t.Run("unlinked debit card fails posting", func(t *testing.T) {
		store := newMemStore()
		card := store.addCard(1, entity.CardDebit, nil)
		engine := newTestEngine(store)

		tx := &entity.Transaction{Type: entity.TypeExpense, AmountCents: 100, FromCardID: &card.ID}

		err := engine.Post(ctx, tx)
		assert.ErrorIs(t, err, errs.ErrDebitCardUnlinked)
	})

	t.Run("unlinked debit card is skipped on reversal", func(t *testing.T) {
		store := newMemStore()
		card := store.addCard(1, entity.CardDebit, nil)
		engine := newTestEngine(store)

		tx := &entity.Transaction{Type: entity.TypeExpense, AmountCents: 100, FromCardID: &card.ID}

		assert.NoError(t, engine.Reverse(ctx, tx))
	})
}

func TestEngineMissingHolder(t *testing.T) {
	ctx := context.Background()

	t.Run("posting against a missing account fails", func(t *testing.T) {
		store := newMemStore()
		engine := newTestEngine(store)
		missing := uint64(404)

		tx := &entity.Transaction{Type: entity.TypeExpense, AmountCents: 100, FromAccountID: &missing}

		err := engine.Post(ctx, tx)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrHolderNotFound)

		var postingErr *errs.PostingError
		require.ErrorAs(t, err, &postingErr)
		assert.Equal(t, "account", postingErr.HolderKind)
		assert.Equal(t, missing, postingErr.HolderID)
	})

	t.Run("posting against a missing card fails", func(t *testing.T) {
		store := newMemStore()
		engine := newTestEngine(store)
		missing := uint64(404)

		tx := &entity.Transaction{Type: entity.TypeExpense, AmountCents: 100, FromCardID: &missing}

		assert.ErrorIs(t, engine.Post(ctx, tx), errs.ErrHolderNotFound)
	})

	t.Run("reversal skips missing holders and completes the rest", func(t *testing.T) {
		store := newMemStore()
		account := store.addAccount(1, 70000)
		missing := uint64(404)
		engine := newTestEngine(store)

		// Transfer whose target account was deleted after posting.
		tx := &entity.Transaction{Type: entity.TypeTransfer, AmountCents: 30000, FromAccountID: &account.ID, ToAccountID: &missing}

		require.NoError(t, engine.Reverse(ctx, tx))
		assert.Equal(t, int64(100000), store.accounts[account.ID].BalanceCents)
	})
}
