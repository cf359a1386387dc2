// internal/service/account_service_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository/memory"
	"solvest-backend/internal/util"
)

// TestSignup tests the Signup method of AccountService.
func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulSignup", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewAccountService(store, testLogger(), clock.Now)

		user, err := svc.Signup(ctx, SignupInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Password:  "secret123",
		})
		require.NoError(t, err)
		require.NotNil(t, user)

		assertDecimalEqual(t, domain.SignupBonus, user.WalletBalance)
		assert.True(t, strings.HasPrefix(user.ReferralCode, "REF-"))
		assert.Len(t, user.ReferralCode, len("REF-")+8)
		assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

		portfolio, err := store.Portfolios().GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("0"), portfolio.TotalValue)

		entries := ledger(t, store, user.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.TransactionTypeSignupBonus, entries[0].Type)
		assertDecimalEqual(t, domain.SignupBonus, entries[0].Amount)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewAccountService(store, testLogger(), clock.Now)

		in := SignupInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret123"}
		_, err := svc.Signup(ctx, in)
		require.NoError(t, err)

		user, err := svc.Signup(ctx, in)
		assert.ErrorIs(t, err, util.ErrDuplicateEmail)
		assert.Nil(t, user)
	})

	t.Run("WithReferralCode", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewAccountService(store, testLogger(), clock.Now)

		referrer, err := svc.Signup(ctx, SignupInput{
			FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "secret123",
		})
		require.NoError(t, err)

		referred, err := svc.Signup(ctx, SignupInput{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret123",
			ReferralCode: &referrer.ReferralCode,
		})
		require.NoError(t, err)

		// The new user gets the plain signup bonus, nothing extra.
		assertDecimalEqual(t, domain.SignupBonus, referred.WalletBalance)

		// The referrer's wallet is credited on top of their own signup bonus.
		reloaded, err := store.Users().GetByID(ctx, referrer.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, domain.SignupBonus.Add(domain.ReferralBonus), reloaded.WalletBalance)

		referrals, err := store.Referrals().ListByReferrer(ctx, referrer.ID)
		require.NoError(t, err)
		require.Len(t, referrals, 1)
		assert.Equal(t, referred.ID, referrals[0].ReferredID)
		assertDecimalEqual(t, domain.ReferralBonus, referrals[0].BonusAmount)

		entries := ledger(t, store, referrer.ID)
		require.Len(t, entries, 2)
		types := []domain.TransactionType{entries[0].Type, entries[1].Type}
		assert.Contains(t, types, domain.TransactionTypeReferral)
	})

	t.Run("UnknownReferralCodeIgnored", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		svc := NewAccountService(store, testLogger(), clock.Now)

		code := "REF-DOESNOTX"
		user, err := svc.Signup(ctx, SignupInput{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret123",
			ReferralCode: &code,
		})
		require.NoError(t, err)
		assertDecimalEqual(t, domain.SignupBonus, user.WalletBalance)

		referrals, err := store.Referrals().ListByReferrer(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, referrals)
	})
}

// TestLogin tests the Login method of AccountService.
func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clock := newFakeClock()
	svc := NewAccountService(store, testLogger(), clock.Now)

	_, err := svc.Signup(ctx, SignupInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	t.Run("SuccessfulLogin", func(t *testing.T) {
		user, err := svc.Login(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		user, err := svc.Login(ctx, "ada@example.com", "wrongpass")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		user, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
		assert.Nil(t, user)
	})
}

// TestDashboard tests the Dashboard aggregate of AccountService.
func TestDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("DerivedPortfolioValue", func(t *testing.T) {
		store := memory.NewStore()
		clock := newFakeClock()
		accounts := NewAccountService(store, testLogger(), clock.Now)
		investments := NewInvestmentService(store, testLogger(), clock.Now, fixedROI("3.00"))

		user := createTestUser(t, store, "ada@example.com", dec("500.00"))
		_, err := investments.Start(ctx, user.ID, dec("100.00"))
		require.NoError(t, err)

		// Three full days in: 100.00 principal plus 3 * 3.00 accrued.
		clock.Advance(3*24*time.Hour + time.Hour)
		view, err := accounts.Dashboard(ctx, user.ID)
		require.NoError(t, err)
		assertDecimalEqual(t, dec("109.00"), view.Portfolio.TotalValue)
		assert.NotEmpty(t, view.RecentTransactions)
		assert.Equal(t, 0, view.ReferralCount)
		assertDecimalEqual(t, dec("0"), view.ReferralEarnings)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		store := memory.NewStore()
		accounts := NewAccountService(store, testLogger(), newFakeClock().Now)

		view, err := accounts.Dashboard(ctx, 9999)
		assert.ErrorIs(t, err, util.ErrUserNotFound)
		assert.Nil(t, view)
	})
}

// TestTransactions tests the paged ledger listing.
func TestTransactions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clock := newFakeClock()
	svc := NewAccountService(store, testLogger(), clock.Now)

	user := createTestUser(t, store, "ada@example.com", dec("0"))
	for i := 0; i < 5; i++ {
		entry := domain.NewTransaction(user.ID, domain.TransactionTypeDeposit, dec("10.00"), "seed")
		require.NoError(t, store.Transactions().Create(ctx, entry))
	}

	t.Run("FirstPage", func(t *testing.T) {
		entries, total, err := svc.Transactions(ctx, user.ID, 3, 0)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
		assert.Equal(t, int64(5), total)
	})

	t.Run("SecondPage", func(t *testing.T) {
		entries, total, err := svc.Transactions(ctx, user.ID, 3, 3)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, int64(5), total)
	})

	t.Run("OffsetPastEnd", func(t *testing.T) {
		entries, total, err := svc.Transactions(ctx, user.ID, 3, 50)
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Equal(t, int64(5), total)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		_, _, err := svc.Transactions(ctx, 9999, 10, 0)
		assert.ErrorIs(t, err, util.ErrUserNotFound)
	})
}
