package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caioevan/fincontrol/internal/domain"
	"github.com/caioevan/fincontrol/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create creates a new entry inside the given transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	ptx := pgxTx(tx)

	_, err := ptx.Exec(ctx,
		`INSERT INTO entries (id, account_id, kind, amount, entry_date, category, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID,
		entry.AccountID,
		string(entry.Kind),
		decimalToNumeric(entry.Amount),
		dayToPgDate(entry.Date),
		string(entry.Category),
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

const selectEntry = `SELECT id, account_id, kind, amount, entry_date, category, created_at FROM entries`

// Listing order: entry date first, then insertion order for entries on the
// same day.
const entryOrder = ` ORDER BY entry_date, created_at, id`

// GetByIDAndAccount retrieves an entry by ID scoped to an account. An entry
// that exists but belongs to another account is reported as not found.
func (r *EntryRepository) GetByIDAndAccount(ctx context.Context, entryID, accountID string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx, selectEntry+` WHERE id = $1 AND account_id = $2`, entryID, accountID)

	return scanEntry(row)
}

// ListByAccount retrieves all entries of an account.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, selectEntry+` WHERE account_id = $1`+entryOrder, accountID)
	if err != nil {
		return nil, err
	}

	return collectEntries(rows)
}

// ListByAccountAndDateRange retrieves entries of an account whose date falls
// within the range, both ends inclusive.
func (r *EntryRepository) ListByAccountAndDateRange(ctx context.Context, accountID string, dr domain.DateRange) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		selectEntry+` WHERE account_id = $1 AND entry_date BETWEEN $2 AND $3`+entryOrder,
		accountID,
		dayToPgDate(dr.Start),
		dayToPgDate(dr.End),
	)
	if err != nil {
		return nil, err
	}

	return collectEntries(rows)
}

// ListByAccountAndCategory retrieves entries of an account with the given category.
func (r *EntryRepository) ListByAccountAndCategory(ctx context.Context, accountID string, category domain.Category) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		selectEntry+` WHERE account_id = $1 AND category = $2`+entryOrder,
		accountID,
		string(category),
	)
	if err != nil {
		return nil, err
	}

	return collectEntries(rows)
}

// Delete removes an entry inside the given transaction.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, entryID string) error {
	ptx := pgxTx(tx)

	_, err := ptx.Exec(ctx, `DELETE FROM entries WHERE id = $1`, entryID)

	return err
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry     domain.Entry
		kind      string
		amount    pgtype.Numeric
		entryDate pgtype.Date
		category  string
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&entry.ID, &entry.AccountID, &kind, &amount, &entryDate, &category, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry.Kind = domain.EntryKind(kind)
	entry.Amount = numericToDecimal(amount)
	entry.Date = domain.Day(entryDate.Time)
	entry.Category = domain.Category(category)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

func collectEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
