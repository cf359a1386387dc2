// internal/repository/postgres/store_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"solvest-backend/internal/repository"
)

// Store implements repository.Store for PostgreSQL. The zero-value q is the
// bare connection; WithinTx produces a Store whose q is a *sqlx.Tx, so every
// repository obtained from it shares that transaction.
type Store struct {
	db *sqlx.DB
	q  repository.DBExecutor
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() repository.UserRepository               { return &UserRepository{q: s.q} }
func (s *Store) Portfolios() repository.PortfolioRepository     { return &PortfolioRepository{q: s.q} }
func (s *Store) Transactions() repository.TransactionRepository { return &TransactionRepository{q: s.q} }
func (s *Store) Referrals() repository.ReferralRepository       { return &ReferralRepository{q: s.q} }
func (s *Store) Deposits() repository.DepositRepository         { return &DepositRepository{q: s.q} }
func (s *Store) Investments() repository.InvestmentRepository   { return &InvestmentRepository{q: s.q} }
func (s *Store) Withdrawals() repository.WithdrawalRepository   { return &WithdrawalRepository{q: s.q} }

// WithinTx runs fn against a transaction-scoped Store. A nested call reuses
// the enclosing transaction rather than opening a second one.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if _, inTx := s.q.(*sqlx.Tx); inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to roll back transaction", "error", err)
		}
	}()

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
