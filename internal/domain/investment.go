// internal/domain/investment.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentStatus is the lifecycle state of a fixed-term investment.
type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "active"
	InvestmentStatusCompleted InvestmentStatus = "completed"
	InvestmentStatusWithdrawn InvestmentStatus = "withdrawn"
)

// Investment is a fixed-term position. ROI is drawn once at creation and fixed
// for the investment's lifetime; TotalProfit is the only mutable money field,
// overwritten by the batch accrual recompute.
type Investment struct {
	ID          int64            `db:"id" json:"id"`
	UserID      int64            `db:"user_id" json:"userId"`
	Amount      decimal.Decimal  `db:"amount" json:"amount"`
	ROIPercent  decimal.Decimal  `db:"roi_percent" json:"roiPercent"`
	StartDate   time.Time        `db:"start_date" json:"startDate"`
	EndDate     time.Time        `db:"end_date" json:"endDate"`
	DailyReturn decimal.Decimal  `db:"daily_return" json:"dailyReturn"`
	TotalProfit decimal.Decimal  `db:"total_profit" json:"totalProfit"`
	Status      InvestmentStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
}

// NewInvestment creates an active investment running from start for termDays.
// DailyReturn = amount * roiPercent / 100, rounded to cents.
func NewInvestment(userID int64, amount, roiPercent decimal.Decimal, start time.Time, termDays int) *Investment {
	dailyReturn := amount.Mul(roiPercent).Div(decimal.NewFromInt(100)).Round(2)
	return &Investment{
		UserID:      userID,
		Amount:      amount,
		ROIPercent:  roiPercent,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, termDays),
		DailyReturn: dailyReturn,
		TotalProfit: decimal.Zero,
		Status:      InvestmentStatusActive,
		CreatedAt:   start,
	}
}
