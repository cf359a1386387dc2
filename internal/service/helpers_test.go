// internal/service/helpers_test.go
package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository/memory"
	"solvest-backend/internal/util"
)

// testStart is the fixed reference instant every service test runs against.
var testStart = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// fakeClock is an injectable clock for the now func of the services.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: testStart}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// fixedROI returns a drawROI func that always yields the given percentage.
func fixedROI(v string) func() decimal.Decimal {
	roi := decimal.RequireFromString(v)
	return func() decimal.Decimal { return roi }
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// createTestUser seeds a user with a portfolio and the given wallet balance,
// bypassing the signup flow.
func createTestUser(t *testing.T, store *memory.Store, email string, balance decimal.Decimal) *domain.User {
	t.Helper()
	hash, err := util.HashPassword("password123")
	require.NoError(t, err)

	user := domain.NewUser("Test", "User", email, hash, nil)
	user.WalletBalance = balance
	require.NoError(t, store.Users().Create(context.Background(), user))
	require.NoError(t, store.Portfolios().Create(context.Background(), domain.NewPortfolio(user.ID)))
	return user
}

// ledger returns every ledger entry for the user, newest first.
func ledger(t *testing.T, store *memory.Store, userID int64) []domain.Transaction {
	t.Helper()
	entries, _, err := store.Transactions().ListByUser(context.Background(), userID, 100, 0)
	require.NoError(t, err)
	return entries
}

// assertDecimalEqual fails unless the two decimals are numerically equal.
func assertDecimalEqual(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.True(t, expected.Equal(actual), "expected %s, got %s: %v", expected, actual, msgAndArgs)
}
