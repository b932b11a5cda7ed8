package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	"github.com/cashfolio/cashfolio/internal/domain/port/persistence"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time                  { return p.now }
func (p *fixedTimeProvider) Since(t time.Time) time.Duration { return p.now.Sub(t) }
func (p *fixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// memStore is the shared state behind the in-memory repositories.
type memStore struct {
	accounts     map[uint64]*entity.BankAccount
	cards        map[uint64]*entity.Card
	transactions map[uint64]*entity.Transaction
	budgets      map[uint64]*entity.Budget
	nextID       uint64
}

func newMemStore() *memStore {
	return &memStore{
		accounts:     make(map[uint64]*entity.BankAccount),
		cards:        make(map[uint64]*entity.Card),
		transactions: make(map[uint64]*entity.Transaction),
		budgets:      make(map[uint64]*entity.Budget),
	}
}

func (s *memStore) newID() uint64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addAccount(userID uint64, balanceCents int64) *entity.BankAccount {
	account := &entity.BankAccount{
		ID:           s.newID(),
		UserID:       userID,
		Name:         "Account",
		BalanceCents: balanceCents,
		Currency:     entity.DefaultCurrency,
	}
	s.accounts[account.ID] = account
	return account
}

func (s *memStore) addCard(userID uint64, cardType entity.CardType, bankAccountID *uint64) *entity.Card {
	card := &entity.Card{
		ID:            s.newID(),
		UserID:        userID,
		Name:          "Card",
		Type:          cardType,
		BankAccountID: bankAccountID,
	}
	s.cards[card.ID] = card
	return card
}

func (s *memStore) clone() *memStore {
	copied := newMemStore()
	copied.nextID = s.nextID
	for id, account := range s.accounts {
		a := *account
		copied.accounts[id] = &a
	}
	for id, card := range s.cards {
		c := *card
		if card.BankAccountID != nil {
			linked := *card.BankAccountID
			c.BankAccountID = &linked
		}
		copied.cards[id] = &c
	}
	for id, transaction := range s.transactions {
		copied.transactions[id] = transaction.Snapshot()
	}
	for id, budget := range s.budgets {
		b := *budget
		copied.budgets[id] = &b
	}
	return copied
}

func (s *memStore) restoreFrom(backup *memStore) {
	s.accounts = backup.accounts
	s.cards = backup.cards
	s.transactions = backup.transactions
	s.budgets = backup.budgets
	s.nextID = backup.nextID
}

type memAccountRepo struct {
	store *memStore
}

func (r *memAccountRepo) GetByID(_ context.Context, id uint64) (*entity.BankAccount, error) {
	account, ok := r.store.accounts[id]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *memAccountRepo) GetForUpdate(ctx context.Context, id uint64) (*entity.BankAccount, error) {
	return r.GetByID(ctx, id)
}

func (r *memAccountRepo) Create(_ context.Context, account *entity.BankAccount) error {
	account.ID = r.store.newID()
	copied := *account
	r.store.accounts[account.ID] = &copied
	return nil
}

func (r *memAccountRepo) AdjustBalance(_ context.Context, id uint64, deltaCents int64) error {
	account, ok := r.store.accounts[id]
	if !ok {
		return errs.ErrAccountNotFound
	}
	account.BalanceCents += deltaCents
	return nil
}

type memCardRepo struct {
	store *memStore
}

func (r *memCardRepo) GetByID(_ context.Context, id uint64) (*entity.Card, error) {
	card, ok := r.store.cards[id]
	if !ok {
		return nil, errs.ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

func (r *memCardRepo) GetForUpdate(ctx context.Context, id uint64) (*entity.Card, error) {
	return r.GetByID(ctx, id)
}

func (r *memCardRepo) Create(_ context.Context, card *entity.Card) error {
	card.ID = r.store.newID()
	copied := *card
	r.store.cards[card.ID] = &copied
	return nil
}

func (r *memCardRepo) AdjustBalance(_ context.Context, id uint64, deltaCents int64) error {
	card, ok := r.store.cards[id]
	if !ok {
		return errs.ErrCardNotFound
	}
	card.BalanceCents += deltaCents
	return nil
}

type memTransactionRepo struct {
	store *memStore
}

func (r *memTransactionRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	transaction.ID = r.store.newID()
	r.store.transactions[transaction.ID] = transaction.Snapshot()
	return nil
}

func (r *memTransactionRepo) Update(_ context.Context, transaction *entity.Transaction) error {
	if _, ok := r.store.transactions[transaction.ID]; !ok {
		return errs.ErrTransactionNotFound
	}
	r.store.transactions[transaction.ID] = transaction.Snapshot()
	return nil
}

func (r *memTransactionRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.store.transactions[id]; !ok {
		return errs.ErrTransactionNotFound
	}
	delete(r.store.transactions, id)
	return nil
}

func (r *memTransactionRepo) GetByID(_ context.Context, id uint64) (*entity.Transaction, error) {
	transaction, ok := r.store.transactions[id]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	return transaction.Snapshot(), nil
}

func (r *memTransactionRepo) SumExpenseCents(_ context.Context, userID uint64, from, toExclusive time.Time, categoryID *uint64) (int64, error) {
	var total int64
	for _, transaction := range r.store.transactions {
		if transaction.UserID != userID || transaction.Type != entity.TypeExpense {
			continue
		}
		if transaction.TransactionDate.Before(from) || !transaction.TransactionDate.Before(toExclusive) {
			continue
		}
		if categoryID != nil {
			if transaction.CategoryID == nil || *transaction.CategoryID != *categoryID {
				continue
			}
		}
		total += transaction.AmountCents
	}
	return total, nil
}

type memBudgetRepo struct {
	store *memStore
}

func (r *memBudgetRepo) GetByID(_ context.Context, id uint64) (*entity.Budget, error) {
	budget, ok := r.store.budgets[id]
	if !ok {
		return nil, errs.ErrBudgetNotFound
	}
	copied := *budget
	return &copied, nil
}

func (r *memBudgetRepo) Create(_ context.Context, budget *entity.Budget) error {
	budget.ID = r.store.newID()
	copied := *budget
	r.store.budgets[budget.ID] = &copied
	return nil
}

func (r *memBudgetRepo) Update(_ context.Context, budget *entity.Budget) error {
	if _, ok := r.store.budgets[budget.ID]; !ok {
		return errs.ErrBudgetNotFound
	}
	copied := *budget
	r.store.budgets[budget.ID] = &copied
	return nil
}

func (r *memBudgetRepo) ListActive(_ context.Context) ([]*entity.Budget, error) {
	var active []*entity.Budget
	for _, budget := range r.store.budgets {
		if budget.IsActive {
			copied := *budget
			active = append(active, &copied)
		}
	}
	return active, nil
}

// memUnitOfWork serializes units of work with a mutex, the way row locks and
// the store transaction do against a real database, and restores a snapshot on
// rollback.
type memUnitOfWork struct {
	mu        sync.Mutex
	store     *memStore
	backup    *memStore
	commits   int
	rollbacks int
}

func newMemUnitOfWork(store *memStore) *memUnitOfWork {
	return &memUnitOfWork{store: store}
}

func (u *memUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.mu.Lock()
	u.backup = u.store.clone()
	return ctx, nil
}

func (u *memUnitOfWork) Commit(context.Context) error {
	u.backup = nil
	u.commits++
	u.mu.Unlock()
	return nil
}

func (u *memUnitOfWork) Rollback(context.Context) error {
	if u.backup != nil {
		u.store.restoreFrom(u.backup)
		u.backup = nil
	}
	u.rollbacks++
	u.mu.Unlock()
	return nil
}

func (u *memUnitOfWork) GetAccountRepository(context.Context) persistence.AccountRepository {
	return &memAccountRepo{store: u.store}
}

func (u *memUnitOfWork) GetCardRepository(context.Context) persistence.CardRepository {
	return &memCardRepo{store: u.store}
}

func (u *memUnitOfWork) GetTransactionRepository(context.Context) persistence.TransactionRepository {
	return &memTransactionRepo{store: u.store}
}

func (u *memUnitOfWork) GetBudgetRepository(context.Context) persistence.BudgetRepository {
	return &memBudgetRepo{store: u.store}
}
