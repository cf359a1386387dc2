// internal/repository/postgres/withdrawal_pg.go
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

// WithdrawalRepository implements repository.WithdrawalRepository for PostgreSQL.
type WithdrawalRepository struct {
	q repository.DBExecutor
}

const withdrawalColumns = `id, user_id, amount, wallet_address, status, requested_at, processed_at, tx_hash`

// Create inserts a pending withdrawal request.
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *domain.WithdrawalRequest) error {
	query := `INSERT INTO withdrawal_requests (user_id, amount, wallet_address, status, requested_at)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		withdrawal.UserID,
		withdrawal.Amount,
		withdrawal.WalletAddress,
		withdrawal.Status,
		withdrawal.RequestedAt,
	).Scan(&withdrawal.ID)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal request: %w", err)
	}
	return nil
}

// GetByID retrieves a withdrawal request by its ID.
func (r *WithdrawalRepository) GetByID(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	var withdrawal domain.WithdrawalRequest
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`
	if err := r.q.GetContext(ctx, &withdrawal, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal request %d: %w", id, err)
	}
	return &withdrawal, nil
}

// GetByIDForUpdate retrieves a withdrawal request with a row lock, so
// concurrent processing of the same request serializes on the pending check.
func (r *WithdrawalRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	var withdrawal domain.WithdrawalRequest
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1 FOR UPDATE`
	if err := r.q.GetContext(ctx, &withdrawal, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock withdrawal request %d: %w", id, err)
	}
	return &withdrawal, nil
}

// ListByUser retrieves a user's withdrawal history, newest first.
func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error) {
	withdrawals := []domain.WithdrawalRequest{}
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE user_id = $1 ORDER BY requested_at DESC`
	if err := r.q.SelectContext(ctx, &withdrawals, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch withdrawals for user %d: %w", userID, err)
	}
	return withdrawals, nil
}

// UpdateStatus transitions a withdrawal request, stamping processed_at and
// recording the settlement hash when present.
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, id int64, status domain.WithdrawalStatus, txHash *string) error {
	query := `UPDATE withdrawal_requests SET status = $1, processed_at = $2, tx_hash = $3 WHERE id = $4`
	result, err := r.q.ExecContext(ctx, query, status, time.Now().UTC(), txHash, id)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal request %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for withdrawal update: %w", err)
	}
	if rowsAffected == 0 {
		return util.ErrWithdrawalNotFound
	}
	return nil
}
