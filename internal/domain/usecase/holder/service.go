package holder

import (
	"context"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/port/persistence"
)

// Service manages the balance-holding entities transactions post against:
// bank accounts and cards. It only creates and reads them; balance mutation
// belongs exclusively to the posting engine.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a holder management service.
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateAccount opens a bank account with an opening balance. The opening
// balance is the only balance write that does not go through the posting
// engine.
func (s *Service) CreateAccount(ctx context.Context, userID uint64, name, openingBalance, currency string) (*entity.BankAccount, error) {
	account, err := entity.NewBankAccount(userID, name, openingBalance, currency, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.uow.GetAccountRepository(ctx).Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Bank account created", map[string]any{
		"account_id":      account.ID,
		"user_id":         account.UserID,
		"opening_balance": account.Balance(),
		"currency":        account.Currency,
	})
	return account, nil
}

// CreateCard registers a card. A debit card must reference an existing bank
// account owned by the same user; the posting engine redirects its movements
// there, so a dangling link would make every debit card transaction fail.
func (s *Service) CreateCard(ctx context.Context, userID uint64, name string, cardType entity.CardType, bankAccountID *uint64, creditLimit string) (*entity.Card, error) {
	card, err := entity.NewCard(userID, name, cardType, bankAccountID, creditLimit, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if card.BankAccountID != nil {
		if _, err := s.uow.GetAccountRepository(ctx).GetByID(ctx, *card.BankAccountID); err != nil {
			return nil, err
		}
	}

	if err := s.uow.GetCardRepository(ctx).Create(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Info("Card created", map[string]any{
		"card_id": card.ID,
		"user_id": card.UserID,
		"type":    string(card.Type),
	})
	return card, nil
}

// GetAccount returns the account with its current balance.
func (s *Service) GetAccount(ctx context.Context, id uint64) (*entity.BankAccount, error) {
	return s.uow.GetAccountRepository(ctx).GetByID(ctx, id)
}

// GetCard returns the card with its current balance or debt.
func (s *Service) GetCard(ctx context.Context, id uint64) (*entity.Card, error) {
	return s.uow.GetCardRepository(ctx).GetByID(ctx, id)
}
