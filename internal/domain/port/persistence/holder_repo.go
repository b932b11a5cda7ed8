package persistence

import (
	"context"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
)

// AccountRepository defines persistence operations for bank accounts.
//
// Balance mutation goes exclusively through AdjustBalance, which must be an
// atomic in-database increment. Reading a balance and writing the sum back is
// a lost-update hazard under concurrency and is deliberately not part of this
// interface.
type AccountRepository interface {
	// GetByID retrieves an account by ID.
	//
	// Possible errors:
	// - ErrAccountNotFound: if no account with the ID exists
	// - ErrDatabaseConnection: if the database is unreachable
	GetByID(ctx context.Context, id uint64) (*entity.BankAccount, error)

	// GetForUpdate retrieves an account and acquires an exclusive row lock on
	// it for the remainder of the surrounding store transaction. Used for
	// funds preconditions that must stay valid until the debit commits.
	//
	// Possible errors: as GetByID, plus ErrRecordLocked on lock contention.
	GetForUpdate(ctx context.Context, id uint64) (*entity.BankAccount, error)

	// Create persists a new account, assigning its ID.
	Create(ctx context.Context, account *entity.BankAccount) error

	// AdjustBalance atomically adds deltaCents (which may be negative) to the
	// account's balance.
	//
	// Possible errors:
	// - ErrAccountNotFound: if no account with the ID exists
	// - ErrDatabaseConnection: if the database is unreachable
	AdjustBalance(ctx context.Context, id uint64, deltaCents int64) error
}

// CardRepository defines persistence operations for cards. For credit cards
// AdjustBalance moves the debt figure; debit cards are never adjusted
// directly, the posting engine redirects to the linked account.
type CardRepository interface {
	// GetByID retrieves a card by ID.
	//
	// Possible errors:
	// - ErrCardNotFound: if no card with the ID exists
	// - ErrDatabaseConnection: if the database is unreachable
	GetByID(ctx context.Context, id uint64) (*entity.Card, error)

	// GetForUpdate retrieves a card under an exclusive row lock, for debt
	// preconditions on card payments.
	GetForUpdate(ctx context.Context, id uint64) (*entity.Card, error)

	// Create persists a new card, assigning its ID.
	Create(ctx context.Context, card *entity.Card) error

	// AdjustBalance atomically adds deltaCents to the card's balance (debt).
	//
	// Possible errors:
	// - ErrCardNotFound: if no card with the ID exists
	// - ErrDatabaseConnection: if the database is unreachable
	AdjustBalance(ctx context.Context, id uint64, deltaCents int64) error
}
