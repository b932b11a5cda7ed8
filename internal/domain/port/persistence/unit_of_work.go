package persistence

import (
	"context"
)

// UnitOfWork coordinates operations across multiple repositories inside one
// store transaction. Either every balance mutation and row change inside the
// unit commits together, or none do; no concurrent reader may observe a
// half-applied state.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetCardRepository returns a card repository bound to the current transaction
	GetCardRepository(ctx context.Context) CardRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetBudgetRepository returns a budget repository bound to the current transaction
	GetBudgetRepository(ctx context.Context) BudgetRepository
}
