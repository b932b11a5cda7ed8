package ledger

import (
	"context"
	"errors"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/port/persistence"
)

// Engine applies and reverses the balance effects of transactions against
// money holders. It is stateless; all mutation goes through the repositories'
// atomic increment operations, so two engines applying effects concurrently
// against the same holder cannot lose updates.
type Engine struct {
	accounts persistence.AccountRepository
	cards    persistence.CardRepository
	logger   coreport.Logger
}

// NewEngine creates a posting/reversal engine over the given repositories.
// The repositories are expected to be bound to the caller's unit of work so
// that every effect of one transaction commits or rolls back together.
func NewEngine(
	accounts persistence.AccountRepository,
	cards persistence.CardRepository,
	logger coreport.Logger,
) *Engine {
	return &Engine{
		accounts: accounts,
		cards:    cards,
		logger:   logger,
	}
}

// Post applies the balance deltas of a freshly created transaction. A
// referenced holder that does not exist is a contract violation and returns a
// PostingError; existence validation belongs to the caller.
func (e *Engine) Post(ctx context.Context, t *entity.Transaction) error {
	for _, effect := range EffectsOf(t) {
		if err := e.apply(ctx, effect, false); err != nil {
			return err
		}
	}
	return nil
}

// Reverse applies the exact algebraic inverse of Post against the same holder
// references stored on the transaction. A holder that no longer exists (for
// example a card deleted after the transaction was made) is skipped with a
// warning instead of failing the whole reversal: being able to delete a
// transaction record always wins over historical balance correctness. Callers
// must be aware this trade-off is lossy.
func (e *Engine) Reverse(ctx context.Context, t *entity.Transaction) error {
	for _, effect := range EffectsOf(t) {
		if err := e.apply(ctx, effect.Inverse(), true); err != nil {
			return err
		}
	}
	return nil
}

// apply lands a single effect on its holder. In lenient mode a missing holder
// is skipped; otherwise it surfaces as a PostingError.
func (e *Engine) apply(ctx context.Context, effect Effect, lenient bool) error {
	switch effect.Ref.Kind {
	case entity.HolderAccount:
		return e.applyToAccount(ctx, effect.Ref.ID, effect, lenient)
	case entity.HolderCard:
		return e.applyToCard(ctx, effect, lenient)
	}
	return errs.NewPostingError(string(effect.Ref.Kind), effect.Ref.ID, "apply", errs.ErrInternalServer)
}

func (e *Engine) applyToAccount(ctx context.Context, accountID uint64, effect Effect, lenient bool) error {
	delta := effect.AmountCents
	if effect.Direction == Outflow {
		delta = -delta
	}

	err := e.accounts.AdjustBalance(ctx, accountID, delta)
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrAccountNotFound) {
		if lenient {
			e.skipMissingHolder("account", accountID, delta)
			return nil
		}
		return errs.NewPostingError("account", accountID, "adjust balance", errs.ErrHolderNotFound)
	}
	return err
}

func (e *Engine) applyToCard(ctx context.Context, effect Effect, lenient bool) error {
	card, err := e.cards.GetByID(ctx, effect.Ref.ID)
	if err != nil {
		if errors.Is(err, errs.ErrCardNotFound) {
			if lenient {
				e.skipMissingHolder("card", effect.Ref.ID, effect.AmountCents)
				return nil
			}
			return errs.NewPostingError("card", effect.Ref.ID, "resolve card", errs.ErrHolderNotFound)
		}
		return err
	}

	if card.IsCredit() {
		// Credit cards hold debt: an outflow means the holder owes more.
		delta := effect.AmountCents
		if effect.Direction == Inflow {
			delta = -delta
		}
		if err := e.cards.AdjustBalance(ctx, card.ID, delta); err != nil {
			if errors.Is(err, errs.ErrCardNotFound) {
				if lenient {
					e.skipMissingHolder("card", card.ID, delta)
					return nil
				}
				return errs.NewPostingError("card", card.ID, "adjust debt", errs.ErrHolderNotFound)
			}
			return err
		}
		return nil
	}

	// Debit cards are not balance holders: the money really moves on the
	// linked bank account.
	if card.BankAccountID == nil {
		if lenient {
			e.logger.Warn("Skipping reversal through unlinked debit card", map[string]any{
				"card_id": card.ID,
			})
			return nil
		}
		return errs.NewPostingError("card", card.ID, "resolve linked account", errs.ErrDebitCardUnlinked)
	}
	return e.applyToAccount(ctx, *card.BankAccountID, effect, lenient)
}

func (e *Engine) skipMissingHolder(holderKind string, holderID uint64, deltaCents int64) {
	e.logger.Warn("Holder missing during reversal, skipping its balance mutation", map[string]any{
		"holder_kind": holderKind,
		"holder_id":   holderID,
		"delta":       entity.FormatCents(deltaCents),
	})
}
