// internal/domain/investment_test.go
package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewInvestment(t *testing.T) {
	start := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("DailyReturnRoundedToCents", func(t *testing.T) {
		inv := NewInvestment(1, decimal.RequireFromString("150.00"), decimal.RequireFromString("3.33"), start, 7)
		// 150.00 * 3.33% = 4.995, rounds to 5.00.
		assert.True(t, decimal.RequireFromString("5.00").Equal(inv.DailyReturn), "got %s", inv.DailyReturn)
	})

	t.Run("TermAndInitialState", func(t *testing.T) {
		inv := NewInvestment(1, decimal.RequireFromString("100.00"), decimal.RequireFromString("3.00"), start, 7)
		assert.Equal(t, start.AddDate(0, 0, 7), inv.EndDate)
		assert.Equal(t, InvestmentStatusActive, inv.Status)
		assert.True(t, decimal.Zero.Equal(inv.TotalProfit))
		assert.True(t, decimal.RequireFromString("3.00").Equal(inv.DailyReturn))
	})
}

func TestNewReferralCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := NewReferralCode()
		assert.True(t, strings.HasPrefix(code, "REF-"))
		assert.Len(t, code, len("REF-")+8)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 90, "codes should be effectively unique")
}
