package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caioevan/fincontrol/internal/domain"
	"github.com/caioevan/fincontrol/internal/usecase"
)

// FakeAccountRepository is an in-memory fake of AccountRepository.
type FakeAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ExistsByDocumentFunc func(ctx context.Context, document string) (bool, error)
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *FakeAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *FakeAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *FakeAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *FakeAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *FakeAccountRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	if m.ExistsByDocumentFunc != nil {
		return m.ExistsByDocumentFunc(ctx, document)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Document == document {
			return true, nil
		}
	}
	return false, nil
}

func (m *FakeAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// FakeEntryRepository is an in-memory fake of EntryRepository.
type FakeEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	CreateFunc                    func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDAndAccountFunc         func(ctx context.Context, entryID, accountID string) (*domain.Entry, error)
	ListByAccountFunc             func(ctx context.Context, accountID string) ([]*domain.Entry, error)
	ListByAccountAndDateRangeFunc func(ctx context.Context, accountID string, r domain.DateRange) ([]*domain.Entry, error)
	ListByAccountAndCategoryFunc  func(ctx context.Context, accountID string, category domain.Category) ([]*domain.Entry, error)
	DeleteFunc                    func(ctx context.Context, tx usecase.Transaction, entryID string) error
}

func NewFakeEntryRepository() *FakeEntryRepository {
	return &FakeEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *FakeEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *FakeEntryRepository) GetByIDAndAccount(ctx context.Context, entryID, accountID string) (*domain.Entry, error) {
	if m.GetByIDAndAccountFunc != nil {
		return m.GetByIDAndAccountFunc(ctx, entryID, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[entryID]; ok && e.AccountID == accountID {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *FakeEntryRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *FakeEntryRepository) ListByAccountAndDateRange(ctx context.Context, accountID string, r domain.DateRange) ([]*domain.Entry, error) {
	if m.ListByAccountAndDateRangeFunc != nil {
		return m.ListByAccountAndDateRangeFunc(ctx, accountID, r)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID && r.Contains(e.Date) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *FakeEntryRepository) ListByAccountAndCategory(ctx context.Context, accountID string, category domain.Category) ([]*domain.Entry, error) {
	if m.ListByAccountAndCategoryFunc != nil {
		return m.ListByAccountAndCategoryFunc(ctx, accountID, category)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID && e.Category == category {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *FakeEntryRepository) Delete(ctx context.Context, tx usecase.Transaction, entryID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, entryID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, entryID)
	return nil
}

// FakeTransaction is an in-memory fake of Transaction.
type FakeTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *FakeTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *FakeTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// FakeTransactionManager is an in-memory fake of TransactionManager.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *FakeTransaction
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &FakeTransaction{}
	return m.LastTx, nil
}

// FakeIDGenerator is an in-memory fake of IDGenerator.
type FakeIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (m *FakeIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + string(rune('0'+m.counter%10))
}

// ErrCacheMiss is returned by FakeCache.Get for absent keys.
var ErrCacheMiss = errors.New("cache miss")

// FakeCache is an in-memory fake of Cache.
type FakeCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error

	Deleted []string
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		values: make(map[string][]byte),
	}
}

func (m *FakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, ErrCacheMiss
}

func (m *FakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *FakeCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

// FakeRetrier runs the operation once, without backoff.
type FakeRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func (m *FakeRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
