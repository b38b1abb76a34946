package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caioevan/fincontrol/internal/domain"
)

// LedgerUseCase handles entry business logic. Every mutation is a single
// transaction that row-locks the owning account, so two concurrent mutations
// against the same account serialize while different accounts never contend.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	ranges      *domain.DateRangeResolver
	idGen       IDGenerator
	retrier     Retrier
	cache       Cache
}

// NewLedgerUseCase creates a new LedgerUseCase. retrier and cache may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	ranges *domain.DateRangeResolver,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		ranges:      ranges,
		idGen:       idGen,
		retrier:     retrier,
		cache:       cache,
	}
}

// AddEntryInput represents input for adding an entry.
type AddEntryInput struct {
	AccountID string
	Kind      string
	Amount    decimal.Decimal
	Date      time.Time
	Category  string
}

// AddEntry records a new ledger entry and applies its effect to the owning
// account's balance. The entry write and the balance write commit together
// or not at all.
func (uc *LedgerUseCase) AddEntry(ctx context.Context, input AddEntryInput) (*domain.Entry, error) {
	var created *domain.Entry

	err := uc.retry(ctx, func() error {
		entry, err := uc.addEntry(ctx, input)
		if err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateBalance(ctx, input.AccountID)

	return created, nil
}

func (uc *LedgerUseCase) addEntry(ctx context.Context, input AddEntryInput) (*domain.Entry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the account first; a missing account fails before any other check.
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	kind, err := domain.ParseEntryKind(input.Kind)
	if err != nil {
		return nil, err
	}

	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	updated, err := domain.ApplyEntry(*account, kind, input.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	entry := &domain.Entry{
		ID:        uc.idGen.Generate(),
		AccountID: account.ID,
		Kind:      kind,
		Amount:    input.Amount,
		Date:      domain.Day(input.Date),
		Category:  category,
		CreatedAt: now,
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, updated.Balance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// AddEntryResult is the outcome of one item in a batch add.
type AddEntryResult struct {
	Entry *domain.Entry
	Err   error
}

// AddEntries applies each input independently, in order. A failed item does
// not roll back the ones before it.
func (uc *LedgerUseCase) AddEntries(ctx context.Context, inputs []AddEntryInput) []AddEntryResult {
	results := make([]AddEntryResult, len(inputs))
	for i, input := range inputs {
		entry, err := uc.AddEntry(ctx, input)
		results[i] = AddEntryResult{Entry: entry, Err: err}
	}
	return results
}

// DeleteEntry removes an entry and reverses its effect on the owning
// account's balance, as one atomic unit.
func (uc *LedgerUseCase) DeleteEntry(ctx context.Context, accountID, entryID string) error {
	err := uc.retry(ctx, func() error {
		return uc.deleteEntry(ctx, accountID, entryID)
	})
	if err != nil {
		return err
	}

	uc.invalidateBalance(ctx, accountID)

	return nil
}

func (uc *LedgerUseCase) deleteEntry(ctx context.Context, accountID, entryID string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}

	// The composite lookup deliberately conflates "does not exist" with
	// "belongs to another account" so callers learn nothing about other
	// accounts' entries.
	entry, err := uc.entryRepo.GetByIDAndAccount(ctx, entryID, accountID)
	if err != nil {
		return err
	}

	updated, err := domain.ReverseEntry(*account, entry.Kind, entry.Amount)
	if err != nil {
		return err
	}

	if err := uc.entryRepo.Delete(ctx, tx, entry.ID); err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, updated.Balance, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListEntries returns all entries of an account.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByAccount(ctx, accountID)
}

// GetEntry returns a single entry of an account, with the same not-found
// semantics as DeleteEntry.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, accountID, entryID string) (*domain.Entry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.entryRepo.GetByIDAndAccount(ctx, entryID, accountID)
}

// ListEntriesByMonth returns the account's entries dated within the given
// calendar month, bounds inclusive.
func (uc *LedgerUseCase) ListEntriesByMonth(ctx context.Context, accountID string, month, year int) ([]*domain.Entry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	r, err := uc.ranges.Month(month, year)
	if err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByAccountAndDateRange(ctx, accountID, r)
}

// ListEntriesByYear returns the account's entries dated within the given
// calendar year, bounds inclusive.
func (uc *LedgerUseCase) ListEntriesByYear(ctx context.Context, accountID string, year int) ([]*domain.Entry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	r, err := uc.ranges.Year(year)
	if err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByAccountAndDateRange(ctx, accountID, r)
}

// ListEntriesByCustomRange returns the account's entries dated within the
// caller-supplied bounds, validated and resolved to an inclusive range.
func (uc *LedgerUseCase) ListEntriesByCustomRange(ctx context.Context, accountID string, bounds domain.CustomRangeBounds) ([]*domain.Entry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	r, err := uc.ranges.Custom(bounds)
	if err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByAccountAndDateRange(ctx, accountID, r)
}

// ListEntriesByCategory returns the account's entries matching a category.
func (uc *LedgerUseCase) ListEntriesByCategory(ctx context.Context, accountID, category string) ([]*domain.Entry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByAccountAndCategory(ctx, accountID, c)
}

func (uc *LedgerUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}
	return uc.retrier.Retry(ctx, operation)
}

func (uc *LedgerUseCase) invalidateBalance(ctx context.Context, accountID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, balanceCacheKey(accountID))
}
