// internal/repository/postgres/referral_pg.go
package postgres

import (
	"context"
	"fmt"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
)

// ReferralRepository implements repository.ReferralRepository for PostgreSQL.
type ReferralRepository struct {
	q repository.DBExecutor
}

// Create inserts a referral record.
func (r *ReferralRepository) Create(ctx context.Context, referral *domain.Referral) error {
	query := `INSERT INTO referrals (referrer_id, referred_id, bonus_amount, created_at)
			  VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		referral.ReferrerID,
		referral.ReferredID,
		referral.BonusAmount,
		referral.CreatedAt,
	).Scan(&referral.ID)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

// ListByReferrer retrieves all referrals credited to a referrer.
func (r *ReferralRepository) ListByReferrer(ctx context.Context, referrerID int64) ([]domain.Referral, error) {
	referrals := []domain.Referral{}
	query := `SELECT id, referrer_id, referred_id, bonus_amount, created_at
			  FROM referrals WHERE referrer_id = $1 ORDER BY created_at DESC`
	if err := r.q.SelectContext(ctx, &referrals, query, referrerID); err != nil {
		return nil, fmt.Errorf("failed to fetch referrals for user %d: %w", referrerID, err)
	}
	return referrals, nil
}
