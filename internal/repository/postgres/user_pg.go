// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
	"solvest-backend/internal/util"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	q repository.DBExecutor
}

const userColumns = `id, first_name, last_name, email, password, wallet_balance,
	solana_address, referral_code, referred_by, created_at`

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (first_name, last_name, email, password, wallet_balance,
				solana_address, referral_code, referred_by, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.WalletBalance,
		user.SolanaAddress,
		user.ReferralCode,
		user.ReferredBy,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		// A concurrent signup can slip past the service-level email check
		// and land on the unique index instead.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return util.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.q.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetByIDForUpdate retrieves a user with a row lock, serializing concurrent
// balance reads-then-writes for the same user.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	if err := r.q.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock user %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := r.q.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email '%s': %w", email, err)
	}
	return &user, nil
}

// GetByReferralCode retrieves a user by their referral code.
func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE referral_code = $1`
	if err := r.q.GetContext(ctx, &user, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by referral code '%s': %w", code, err)
	}
	return &user, nil
}

// AddToBalance applies a signed delta to the user's wallet balance.
func (r *UserRepository) AddToBalance(ctx context.Context, userID int64, delta decimal.Decimal) error {
	query := `UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id = $2`
	result, err := r.q.ExecContext(ctx, query, delta, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for user %d: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for user %d balance update: %w", userID, err)
	}
	if rowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}
