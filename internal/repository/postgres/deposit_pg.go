// internal/repository/postgres/deposit_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
	"solvest-backend/internal/util"
)

// DepositRepository implements repository.DepositRepository for PostgreSQL.
type DepositRepository struct {
	q repository.DBExecutor
}

const depositColumns = `id, user_id, transaction_id, amount, screenshot_url, status, created_at, processed_at`

// Create inserts a pending deposit submission.
func (r *DepositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	query := `INSERT INTO deposits (user_id, transaction_id, amount, screenshot_url, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		deposit.UserID,
		deposit.TransactionID,
		deposit.Amount,
		deposit.ScreenshotURL,
		deposit.Status,
		deposit.CreatedAt,
	).Scan(&deposit.ID)
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}

// GetByID retrieves a deposit by its ID.
func (r *DepositRepository) GetByID(ctx context.Context, id int64) (*domain.Deposit, error) {
	var deposit domain.Deposit
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE id = $1`
	if err := r.q.GetContext(ctx, &deposit, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deposit %d: %w", id, err)
	}
	return &deposit, nil
}

// GetByIDForUpdate retrieves a deposit with a row lock, so concurrent
// processing of the same deposit serializes on the pending check.
func (r *DepositRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Deposit, error) {
	var deposit domain.Deposit
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE id = $1 FOR UPDATE`
	if err := r.q.GetContext(ctx, &deposit, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock deposit %d: %w", id, err)
	}
	return &deposit, nil
}

// ListByUser retrieves a user's deposit history, newest first.
func (r *DepositRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Deposit, error) {
	deposits := []domain.Deposit{}
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.q.SelectContext(ctx, &deposits, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch deposits for user %d: %w", userID, err)
	}
	return deposits, nil
}

// UpdateStatus transitions a deposit and stamps processed_at.
func (r *DepositRepository) UpdateStatus(ctx context.Context, id int64, status domain.DepositStatus) error {
	query := `UPDATE deposits SET status = $1, processed_at = $2 WHERE id = $3`
	result, err := r.q.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update deposit %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for deposit update: %w", err)
	}
	if rowsAffected == 0 {
		return util.ErrDepositNotFound
	}
	return nil
}
