// internal/domain/portfolio.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio mirrors a user's invested position value. The stored total is a
// cached figure refreshed by the batch recompute; reads derive the live value
// from the investments themselves.
type Portfolio struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"userId"`
	TotalValue  decimal.Decimal `db:"total_value" json:"totalValue"`
	LastUpdated time.Time       `db:"last_updated" json:"lastUpdated"`
}

// NewPortfolio creates an empty portfolio for a freshly registered user.
func NewPortfolio(userID int64) *Portfolio {
	return &Portfolio{
		UserID:      userID,
		TotalValue:  decimal.Zero,
		LastUpdated: time.Now().UTC(),
	}
}
