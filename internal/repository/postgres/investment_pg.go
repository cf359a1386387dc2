// internal/repository/postgres/investment_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
	"solvest-backend/internal/util"
)

// InvestmentRepository implements repository.InvestmentRepository for PostgreSQL.
type InvestmentRepository struct {
	q repository.DBExecutor
}

const investmentColumns = `id, user_id, amount, roi_percent, start_date, end_date,
	daily_return, total_profit, status, created_at`

// Create inserts a new investment position.
func (r *InvestmentRepository) Create(ctx context.Context, investment *domain.Investment) error {
	query := `INSERT INTO investments (user_id, amount, roi_percent, start_date, end_date,
				daily_return, total_profit, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		investment.UserID,
		investment.Amount,
		investment.ROIPercent,
		investment.StartDate,
		investment.EndDate,
		investment.DailyReturn,
		investment.TotalProfit,
		investment.Status,
		investment.CreatedAt,
	).Scan(&investment.ID)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

// GetByID retrieves an investment by its ID.
func (r *InvestmentRepository) GetByID(ctx context.Context, id int64) (*domain.Investment, error) {
	var investment domain.Investment
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1`
	if err := r.q.GetContext(ctx, &investment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get investment %d: %w", id, err)
	}
	return &investment, nil
}

// ListByUser retrieves all of a user's investments, newest first.
func (r *InvestmentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Investment, error) {
	investments := []domain.Investment{}
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.q.SelectContext(ctx, &investments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch investments for user %d: %w", userID, err)
	}
	return investments, nil
}

// ListActive retrieves every active investment across all users for the batch
// profit recompute, oldest first.
func (r *InvestmentRepository) ListActive(ctx context.Context) ([]domain.Investment, error) {
	investments := []domain.Investment{}
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE status = $1 ORDER BY start_date ASC`
	if err := r.q.SelectContext(ctx, &investments, query, domain.InvestmentStatusActive); err != nil {
		return nil, fmt.Errorf("failed to fetch active investments: %w", err)
	}
	return investments, nil
}

// UpdateProfit overwrites an investment's accrued profit.
func (r *InvestmentRepository) UpdateProfit(ctx context.Context, id int64, totalProfit decimal.Decimal) error {
	query := `UPDATE investments SET total_profit = $1 WHERE id = $2`
	result, err := r.q.ExecContext(ctx, query, totalProfit, id)
	if err != nil {
		return fmt.Errorf("failed to update profit for investment %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for profit update: %w", err)
	}
	if rowsAffected == 0 {
		return util.ErrInvestmentNotFound
	}
	return nil
}

// UpdateStatus transitions an investment's lifecycle state.
func (r *InvestmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.InvestmentStatus) error {
	query := `UPDATE investments SET status = $1 WHERE id = $2`
	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status for investment %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for status update: %w", err)
	}
	if rowsAffected == 0 {
		return util.ErrInvestmentNotFound
	}
	return nil
}
