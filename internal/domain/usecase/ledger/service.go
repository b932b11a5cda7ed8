package ledger

import (
	"context"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/port/persistence"
)

// Service is the transaction lifecycle coordinator. Each of its operations
// (create, update, delete) runs as one atomic unit: the transaction row change
// and every balance mutation commit together or not at all. A failure at any
// step leaves balances and the row exactly as they were.
type Service struct {
	uow          persistence.UnitOfWork
	validator    *Validator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new lifecycle coordinator.
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		validator:    NewValidator(),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create persists the transaction row and posts its balance effects. If
// posting fails the row is not retained.
func (s *Service) Create(ctx context.Context, t *entity.Transaction) (*entity.Transaction, error) {
	if err := s.validator.ValidateTransaction(t); err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	if err := s.ensureFunds(txCtx, t); err != nil {
		return nil, err
	}

	repo := s.uow.GetTransactionRepository(txCtx)
	if err := repo.Create(txCtx, t); err != nil {
		return nil, err
	}

	if err := s.engine(txCtx).Post(txCtx, t); err != nil {
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	committed = true

	s.logger.Info("Transaction posted", map[string]any{
		"transaction_id": t.ID,
		"reference_id":   t.ReferenceID,
		"user_id":        t.UserID,
		"type":           string(t.Type),
		"amount":         t.Amount(),
	})
	return t, nil
}

// Update edits a stored transaction. The sequence is: snapshot the pre-update
// state, reverse it, mutate the stored fields, post the new state. The
// snapshot is a structural copy taken before any mutation, so the reversal
// credits back the original endpoints and amount even when the edit moves the
// transaction to different holders.
func (s *Service) Update(ctx context.Context, updated *entity.Transaction) (*entity.Transaction, error) {
	if err := s.validator.ValidateTransaction(updated); err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	repo := s.uow.GetTransactionRepository(txCtx)
	current, err := repo.GetByID(txCtx, updated.ID)
	if err != nil {
		return nil, err
	}

	snapshot := current.Snapshot()
	engine := s.engine(txCtx)
	if err := engine.Reverse(txCtx, snapshot); err != nil {
		return nil, err
	}

	applyChanges(current, updated)

	if err := s.ensureFunds(txCtx, current); err != nil {
		return nil, err
	}
	if err := repo.Update(txCtx, current); err != nil {
		return nil, err
	}
	if err := engine.Post(txCtx, current); err != nil {
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	committed = true

	s.logger.Info("Transaction updated and reposted", map[string]any{
		"transaction_id": current.ID,
		"old_amount":     snapshot.Amount(),
		"new_amount":     current.Amount(),
		"type":           string(current.Type),
	})
	return current, nil
}

// Delete reverses the transaction's balance effects and removes its row.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	repo := s.uow.GetTransactionRepository(txCtx)
	current, err := repo.GetByID(txCtx, id)
	if err != nil {
		return err
	}

	if err := s.engine(txCtx).Reverse(txCtx, current); err != nil {
		return err
	}
	if err := repo.Delete(txCtx, id); err != nil {
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}
	committed = true

	s.logger.Info("Transaction reversed and deleted", map[string]any{
		"transaction_id": id,
		"type":           string(current.Type),
		"amount":         current.Amount(),
	})
	return nil
}

// engine builds a posting engine bound to the unit of work's repositories.
func (s *Service) engine(txCtx context.Context) *Engine {
	return NewEngine(
		s.uow.GetAccountRepository(txCtx),
		s.uow.GetCardRepository(txCtx),
		s.logger,
	)
}

// ensureFunds enforces the sufficient-balance precondition for transfers and
// card payments. The source account is read under an exclusive row lock so
// the check stays valid until the debit commits. Plain expenses and incomes
// skip this entirely; an overdraft is representable.
func (s *Service) ensureFunds(ctx context.Context, t *entity.Transaction) error {
	if t.Type != entity.TypeTransfer && t.Type != entity.TypeCardPayment {
		return nil
	}
	if t.FromAccountID == nil {
		return nil
	}

	accounts := s.uow.GetAccountRepository(ctx)
	account, err := accounts.GetForUpdate(ctx, *t.FromAccountID)
	if err != nil {
		return err
	}
	if account.BalanceCents < t.AmountCents {
		return errs.NewInsufficientFundsError("account", account.ID, t.AmountCents, account.BalanceCents)
	}
	return nil
}

// applyChanges copies the editable fields of the update intent onto the
// stored transaction. Identity, ownership and the origin link never change
// through an edit.
func applyChanges(current, updated *entity.Transaction) {
	snapshot := updated.Snapshot()

	current.Type = snapshot.Type
	current.AmountCents = snapshot.AmountCents
	current.Currency = snapshot.Currency
	current.Title = snapshot.Title
	current.Description = snapshot.Description
	current.TransactionDate = snapshot.TransactionDate
	current.FromAccountID = snapshot.FromAccountID
	current.ToAccountID = snapshot.ToAccountID
	current.FromCardID = snapshot.FromCardID
	current.ToCardID = snapshot.ToCardID
	current.CategoryID = snapshot.CategoryID
	current.MerchantID = snapshot.MerchantID
}
