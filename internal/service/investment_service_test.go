// internal/service/investment_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solvest-backend/internal/accrual"
	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository/memory"
	"solvest-backend/internal/util"
)

// TestDrawROI checks the bounds and granularity of the daily ROI draw.
func TestDrawROI(t *testing.T) {
	lo := dec("2.00")
	hi := dec("3.50")
	for i := 0; i < 1000; i++ {
		roi := DrawROI()
		assert.True(t, roi.GreaterThanOrEqual(lo), "roi %s below lower bound", roi)
		assert.True(t, roi.LessThanOrEqual(hi), "roi %s above upper bound", roi)
		assert.True(t, roi.Mul(dec("100")).IsInteger(), "roi %s not on the 0.01 grid", roi)
	}
}

// TestStartInvestment tests the Start method of InvestmentService.
func TestStartInvestment(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulStart", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewInvestmentService(store, testLogger(), clock.Now, fixedROI("3.00"))

		user := createTestUser(t, store, "ada@example.com", dec("500.00"))
		investment, err := svc.Start(ctx, user.ID, dec("100.00"))
		require.NoError(t, err)
		require.NotNil(t, investment)

		assertDecimalEqual(t, dec("3.00"), investment.DailyReturn)
		assertDecimalEqual(t, dec("3.00"), investment.ROIPercent)
		assert.Equal(t, domain.InvestmentStatusActive, investment.Status)
		assert.Equal(t, testStart.AddDate(0, 0, accrual.TermDays), investment.EndDate)

		reloaded, err := store.Users().GetByID(ctx, user.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("400.00"), reloaded.WalletBalance)

		entries := ledger(t, store, user.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.TransactionTypeInvestment, entries[0].Type)
		assertDecimalEqual(t, dec("100.00"), entries[0].Amount)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewInvestmentService(store, testLogger(), clock.Now, fixedROI("3.00"))

		user := createTestUser(t, store, "ada@example.com", dec("50.00"))
		investment, err := svc.Start(ctx, user.ID, dec("100.00"))
		assert.ErrorIs(t, err, util.ErrInsufficientBalance)
		assert.Nil(t, investment)

		// The failed attempt must leave no trace: balance, positions, and
		// ledger all untouched.
		reloaded, err := store.Users().GetByID(ctx, user.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("50.00"), reloaded.WalletBalance)

		positions, err := store.Investments().ListByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, positions)
		assert.Empty(t, ledger(t, store, user.ID))
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewInvestmentService(store, testLogger(), newFakeClock().Now, fixedROI("3.00"))

		user := createTestUser(t, store, "ada@example.com", dec("500.00"))
		_, err := svc.Start(ctx, user.ID, dec("-10.00"))
		assert.ErrorIs(t, err, util.ErrInvalidInput)

		_, err = svc.Start(ctx, user.ID, dec("0"))
		assert.ErrorIs(t, err, util.ErrInvalidInput)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewInvestmentService(store, testLogger(), newFakeClock().Now, fixedROI("3.00"))

		_, err := svc.Start(ctx, 9999, dec("100.00"))
		assert.ErrorIs(t, err, util.ErrUserNotFound)
	})
}

// TestInvestmentStatus tests the computed-on-read accrual view.
func TestInvestmentStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clock := newFakeClock()
	svc := NewInvestmentService(store, testLogger(), clock.Now, fixedROI("3.00"))

	user := createTestUser(t, store, "ada@example.com", dec("500.00"))
	_, err := svc.Start(ctx, user.ID, dec("100.00"))
	require.NoError(t, err)

	t.Run("MidTerm", func(t *testing.T) {
		clock.t = testStart.Add(3*24*time.Hour + 5*time.Hour)
		views, err := svc.Status(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, views, 1)

		assertDecimalEqual(t, dec("9.00"), views[0].CurrentProfit)
		assert.Equal(t, 4, views[0].DaysRemaining)
		assert.False(t, views[0].IsCompleted)
		assert.False(t, views[0].CanWithdraw)
		// TotalProfit only moves with the batch recompute.
		assertDecimalEqual(t, dec("0"), views[0].TotalProfit)
	})

	t.Run("Matured", func(t *testing.T) {
		clock.t = testStart.Add(8 * 24 * time.Hour)
		views, err := svc.Status(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, views, 1)

		assertDecimalEqual(t, dec("21.00"), views[0].CurrentProfit)
		assert.Equal(t, 0, views[0].DaysRemaining)
		assert.True(t, views[0].IsCompleted)
		assert.True(t, views[0].CanWithdraw)
	})
}

// TestRecomputeProfits tests the batch accrual sweep.
func TestRecomputeProfits(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsProfitAndRefreshesPortfolio", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewInvestmentService(store, testLogger(), clock.Now, fixedROI("3.00"))

		user := createTestUser(t, store, "ada@example.com", dec("500.00"))
		investment, err := svc.Start(ctx, user.ID, dec("100.00"))
		require.NoError(t, err)

		clock.Advance(3 * 24 * time.Hour)
		updated, err := svc.RecomputeProfits(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, updated)

		reloaded, err := store.Investments().GetByID(ctx, investment.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("9.00"), reloaded.TotalProfit)
		assert.Equal(t, domain.InvestmentStatusActive, reloaded.Status)

		portfolio, err := store.Portfolios().GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("109.00"), portfolio.TotalValue)
	})

	t.Run("FlipsMaturedToCompleted", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewInvestmentService(store, testLogger(), clock.Now, fixedROI("3.00"))

		user := createTestUser(t, store, "ada@example.com", dec("500.00"))
		investment, err := svc.Start(ctx, user.ID, dec("100.00"))
		require.NoError(t, err)

		clock.Advance(7 * 24 * time.Hour)
		_, err = svc.RecomputeProfits(ctx)
		require.NoError(t, err)

		reloaded, err := store.Investments().GetByID(ctx, investment.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("21.00"), reloaded.TotalProfit)
		assert.Equal(t, domain.InvestmentStatusCompleted, reloaded.Status)
	})

	t.Run("FreshInvestmentUntouched", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewInvestmentService(store, testLogger(), clock.Now, fixedROI("3.00"))

		user := createTestUser(t, store, "ada@example.com", dec("500.00"))
		_, err := svc.Start(ctx, user.ID, dec("100.00"))
		require.NoError(t, err)

		clock.Advance(12 * time.Hour)
		updated, err := svc.RecomputeProfits(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, updated)
	})

	t.Run("Idempotent", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewInvestmentService(store, testLogger(), clock.Now, fixedROI("3.00"))

		user := createTestUser(t, store, "ada@example.com", dec("500.00"))
		investment, err := svc.Start(ctx, user.ID, dec("100.00"))
		require.NoError(t, err)

		clock.Advance(3 * 24 * time.Hour)
		_, err = svc.RecomputeProfits(ctx)
		require.NoError(t, err)
		_, err = svc.RecomputeProfits(ctx)
		require.NoError(t, err)

		reloaded, err := store.Investments().GetByID(ctx, investment.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("9.00"), reloaded.TotalProfit)
	})
}

// TestReinvest tests the matured-position close-out into a new investment.
func TestReinvest(t *testing.T) {
	ctx := context.Background()

	// seed opens a 100.00 position at 3.00% for the user and returns it.
	seed := func(t *testing.T) (*memory.Store, *fakeClock, InvestmentService, *domain.User, *domain.Investment) {
		t.Helper()
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewInvestmentService(store, testLogger(), clock.Now, fixedROI("3.00"))

		user := createTestUser(t, store, "ada@example.com", dec("500.00"))
		investment, err := svc.Start(ctx, user.ID, dec("100.00"))
		require.NoError(t, err)
		return store, clock, svc, user, investment
	}

	t.Run("NotMatured", func(t *testing.T) {
		store, clock, svc, user, investment := seed(t)
		clock.Advance(3 * 24 * time.Hour)

		_, err := svc.Reinvest(ctx, user.ID, investment.ID, ReinvestProfits, dec("5.00"))
		assert.ErrorIs(t, err, util.ErrNotMatured)

		reloaded, err := store.Investments().GetByID(ctx, investment.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InvestmentStatusActive, reloaded.Status)
	})

	t.Run("ProfitsRolled", func(t *testing.T) {
		store, clock, svc, user, investment := seed(t)
		clock.Advance(7 * 24 * time.Hour)

		// Full profit of 21.00 rolls into the new position; the 100.00
		// principal is paid back to the wallet.
		next, err := svc.Reinvest(ctx, user.ID, investment.ID, ReinvestProfits, dec("21.00"))
		require.NoError(t, err)
		assertDecimalEqual(t, dec("21.00"), next.Amount)
		assert.Equal(t, domain.InvestmentStatusActive, next.Status)

		old, err := store.Investments().GetByID(ctx, investment.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InvestmentStatusWithdrawn, old.Status)

		reloaded, err := store.Users().GetByID(ctx, user.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("500.00"), reloaded.WalletBalance) // 400 after invest + 100 principal back
	})

	t.Run("FullRollNoWalletCredit", func(t *testing.T) {
		store, clock, svc, user, investment := seed(t)
		clock.Advance(7 * 24 * time.Hour)

		next, err := svc.Reinvest(ctx, user.ID, investment.ID, ReinvestBoth, dec("121.00"))
		require.NoError(t, err)
		assertDecimalEqual(t, dec("121.00"), next.Amount)

		reloaded, err := store.Users().GetByID(ctx, user.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("400.00"), reloaded.WalletBalance)
	})

	t.Run("ExceedsAvailable", func(t *testing.T) {
		store, clock, svc, user, investment := seed(t)
		clock.Advance(7 * 24 * time.Hour)

		_, err := svc.Reinvest(ctx, user.ID, investment.ID, ReinvestProfits, dec("50.00"))
		assert.ErrorIs(t, err, util.ErrInsufficientBalance)

		// Rejection must leave the source position open.
		reloaded, err := store.Investments().GetByID(ctx, investment.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InvestmentStatusActive, reloaded.Status)
	})

	t.Run("InvalidReinvestType", func(t *testing.T) {
		_, clock, svc, user, investment := seed(t)
		clock.Advance(7 * 24 * time.Hour)

		_, err := svc.Reinvest(ctx, user.ID, investment.ID, "everything", dec("10.00"))
		assert.ErrorIs(t, err, util.ErrInvalidInput)
	})

	t.Run("NotOwner", func(t *testing.T) {
		store, clock, svc, _, investment := seed(t)
		other := createTestUser(t, store, "eve@example.com", dec("0"))
		clock.Advance(7 * 24 * time.Hour)

		_, err := svc.Reinvest(ctx, other.ID, investment.ID, ReinvestProfits, dec("5.00"))
		assert.ErrorIs(t, err, util.ErrInvestmentNotFound)
	})

	t.Run("AlreadyWithdrawn", func(t *testing.T) {
		store, clock, svc, user, investment := seed(t)
		clock.Advance(7 * 24 * time.Hour)
		require.NoError(t, store.Investments().UpdateStatus(ctx, investment.ID, domain.InvestmentStatusWithdrawn))

		_, err := svc.Reinvest(ctx, user.ID, investment.ID, ReinvestProfits, dec("5.00"))
		assert.ErrorIs(t, err, util.ErrInvalidStatus)
	})
}
