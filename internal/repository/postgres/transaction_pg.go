// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for
// PostgreSQL. The ledger is append-only; there are no update statements here.
type TransactionRepository struct {
	q repository.DBExecutor
}

// Create appends a ledger entry.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (user_id, type, amount, description, created_at)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		transaction.UserID,
		transaction.Type,
		transaction.Amount,
		transaction.Description,
		transaction.CreatedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListByUser retrieves a paginated ledger for a user, newest first, together
// with the total entry count.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT id, user_id, type, amount, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	if err := r.q.SelectContext(ctx, &transactions, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for user %d: %w", userID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE user_id = $1`
	if err := r.q.GetContext(ctx, &totalCount, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for user %d: %w", userID, err)
	}

	return transactions, totalCount, nil
}
