// internal/accrual/accrual_test.go
package accrual

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, TermDays)
	dailyReturn := decimal.RequireFromString("3.00")

	tests := []struct {
		name          string
		now           time.Time
		daysPassed    int
		daysRemaining int
		profit        string
		completed     bool
	}{
		{"at start", start, 0, 7, "0", false},
		{"before first full day", start.Add(23 * time.Hour), 0, 7, "0", false},
		{"after three days", start.AddDate(0, 0, 3).Add(time.Hour), 3, 4, "9.00", false},
		{"just before maturity", end.Add(-time.Minute), 6, 1, "18.00", false},
		{"exactly at maturity", end, 7, 0, "21.00", true},
		{"well past maturity", end.AddDate(0, 0, 30), 7, 0, "21.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Evaluate(start, end, dailyReturn, tt.now)
			assert.Equal(t, tt.daysPassed, st.DaysPassed)
			assert.Equal(t, tt.daysRemaining, st.DaysRemaining)
			assert.True(t, st.CurrentProfit.Equal(decimal.RequireFromString(tt.profit)),
				"profit = %s, want %s", st.CurrentProfit, tt.profit)
			assert.Equal(t, tt.completed, st.IsCompleted)
			assert.Equal(t, tt.completed, st.CanWithdraw)
		})
	}
}

func TestEvaluateClockSkew(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, TermDays)

	st := Evaluate(start, end, decimal.RequireFromString("2.50"), start.Add(-2*time.Hour))
	assert.Equal(t, 0, st.DaysPassed)
	assert.True(t, st.CurrentProfit.IsZero())
	assert.False(t, st.IsCompleted)
	assert.False(t, st.CanWithdraw)
}

func TestEvaluateMonotonicProfit(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	end := start.AddDate(0, 0, TermDays)
	dailyReturn := decimal.RequireFromString("1.75")

	prev := decimal.Zero
	for hour := 0; hour <= TermDays*24+48; hour += 6 {
		now := start.Add(time.Duration(hour) * time.Hour)
		st := Evaluate(start, end, dailyReturn, now)
		require.True(t, st.CurrentProfit.GreaterThanOrEqual(prev),
			"profit decreased at hour %d: %s < %s", hour, st.CurrentProfit, prev)
		require.True(t, st.CurrentProfit.LessThanOrEqual(dailyReturn.Mul(decimal.NewFromInt(TermDays))))
		prev = st.CurrentProfit
	}
}
