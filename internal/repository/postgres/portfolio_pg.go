// internal/repository/postgres/portfolio_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
	"solvest-backend/internal/util"
)

// PortfolioRepository implements repository.PortfolioRepository for PostgreSQL.
type PortfolioRepository struct {
	q repository.DBExecutor
}

// Create inserts a new portfolio.
func (r *PortfolioRepository) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	query := `INSERT INTO portfolios (user_id, total_value, last_updated)
			  VALUES ($1, $2, $3) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		portfolio.UserID, portfolio.TotalValue, portfolio.LastUpdated,
	).Scan(&portfolio.ID)
	if err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}
	return nil
}

// GetByUserID retrieves a user's portfolio.
func (r *PortfolioRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Portfolio, error) {
	var portfolio domain.Portfolio
	query := `SELECT id, user_id, total_value, last_updated FROM portfolios WHERE user_id = $1`
	if err := r.q.GetContext(ctx, &portfolio, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio for user %d: %w", userID, err)
	}
	return &portfolio, nil
}

// UpdateValue overwrites the cached portfolio total.
func (r *PortfolioRepository) UpdateValue(ctx context.Context, userID int64, totalValue decimal.Decimal) error {
	query := `UPDATE portfolios SET total_value = $1, last_updated = $2 WHERE user_id = $3`
	result, err := r.q.ExecContext(ctx, query, totalValue, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio for user %d: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for portfolio update: %w", err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
