// internal/accrual/accrual.go
package accrual

import (
	"time"

	"github.com/shopspring/decimal"
)

// TermDays is the fixed investment term.
const TermDays = 7

// Status is the time-derived view of an investment's accrual. It is computed
// on read and never stored, except for CurrentProfit which the batch recompute
// persists as the investment's totalProfit.
type Status struct {
	DaysPassed    int
	DaysRemaining int
	CurrentProfit decimal.Decimal
	IsCompleted   bool
	CanWithdraw   bool
}

// Evaluate computes the accrual status of an investment at the given instant.
// It is pure, idempotent, and monotonic in now: profit never decreases while
// the clock moves forward. A now before start (clock skew) yields zero days,
// never a negative count.
func Evaluate(start, end time.Time, dailyReturn decimal.Decimal, now time.Time) Status {
	daysPassed := int(now.Sub(start) / (24 * time.Hour))
	if daysPassed < 0 {
		daysPassed = 0
	}
	if daysPassed > TermDays {
		daysPassed = TermDays
	}

	isCompleted := !now.Before(end)

	daysRemaining := TermDays - daysPassed
	if isCompleted || daysRemaining < 0 {
		daysRemaining = 0
	}

	return Status{
		DaysPassed:    daysPassed,
		DaysRemaining: daysRemaining,
		CurrentProfit: dailyReturn.Mul(decimal.NewFromInt(int64(daysPassed))),
		IsCompleted:   isCompleted,
		CanWithdraw:   isCompleted,
	}
}
