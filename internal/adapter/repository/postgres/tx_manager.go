package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caioevan/fincontrol/internal/usecase"
)

// txBeginner is the one slice of pgxpool.Pool the manager needs. Tests swap
// in a pgxmock pool through newTxManagerWithPool.
type txBeginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager hands out usecase.Transaction values backed by pgx transactions.
// Repositories in this package unwrap them with pgxTx to run statements under
// the caller's transaction.
type TxManager struct {
	pool txBeginner
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool txBeginner) *TxManager {
	return &TxManager{pool: pool}
}

func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &Tx{tx: tx}, nil
}

// Tx adapts pgx.Tx to usecase.Transaction.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// pgxTx recovers the pgx transaction behind a usecase.Transaction. Only
// transactions minted by this package's TxManager are valid here; anything
// else is a wiring bug and panics.
func pgxTx(tx usecase.Transaction) pgx.Tx {
	return tx.(*Tx).tx
}
