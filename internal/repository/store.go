// internal/repository/store.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/domain"
)

// Store aggregates the per-entity repositories behind one handle. Two
// implementations exist: a PostgreSQL-backed one and an in-memory one. All
// storage access goes through an explicit Store; there is no global state.
type Store interface {
	Users() UserRepository
	Portfolios() PortfolioRepository
	Transactions() TransactionRepository
	Referrals() ReferralRepository
	Deposits() DepositRepository
	Investments() InvestmentRepository
	Withdrawals() WithdrawalRepository

	// WithinTx runs fn against a transaction-scoped Store. If fn returns an
	// error the transaction is rolled back, otherwise it is committed. Every
	// multi-row workflow (signup, invest, reinvest, approval, processing) must
	// run inside WithinTx so that partial application cannot be observed.
	// Nested calls reuse the enclosing transaction.
	WithinTx(ctx context.Context, fn func(Store) error) error
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByIDForUpdate loads a user while serializing concurrent
	// read-then-write access to the balance. Only valid inside WithinTx.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.User, error)
	// AddToBalance applies a signed delta to walletBalance.
	AddToBalance(ctx context.Context, userID int64, delta decimal.Decimal) error
}

// PortfolioRepository defines the interface for portfolio data operations.
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *domain.Portfolio) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Portfolio, error)
	UpdateValue(ctx context.Context, userID int64, totalValue decimal.Decimal) error
}

// TransactionRepository defines the interface for ledger entries. Entries are
// append-only; there is deliberately no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
}

// ReferralRepository defines the interface for referral records.
type ReferralRepository interface {
	Create(ctx context.Context, referral *domain.Referral) error
	ListByReferrer(ctx context.Context, referrerID int64) ([]domain.Referral, error)
}

// DepositRepository defines the interface for deposit submissions.
type DepositRepository interface {
	Create(ctx context.Context, deposit *domain.Deposit) error
	GetByID(ctx context.Context, id int64) (*domain.Deposit, error)
	// GetByIDForUpdate loads a deposit while serializing concurrent status
	// transitions. Only valid inside WithinTx.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Deposit, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Deposit, error)
	UpdateStatus(ctx context.Context, id int64, status domain.DepositStatus) error
}

// InvestmentRepository defines the interface for investment positions.
type InvestmentRepository interface {
	Create(ctx context.Context, investment *domain.Investment) error
	GetByID(ctx context.Context, id int64) (*domain.Investment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Investment, error)
	// ListActive returns every active investment across all users, oldest
	// first, for the batch profit recompute.
	ListActive(ctx context.Context) ([]domain.Investment, error)
	UpdateProfit(ctx context.Context, id int64, totalProfit decimal.Decimal) error
	UpdateStatus(ctx context.Context, id int64, status domain.InvestmentStatus) error
}

// WithdrawalRepository defines the interface for withdrawal requests.
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *domain.WithdrawalRequest) error
	GetByID(ctx context.Context, id int64) (*domain.WithdrawalRequest, error)
	// GetByIDForUpdate loads a withdrawal request while serializing concurrent
	// status transitions. Only valid inside WithinTx.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.WithdrawalStatus, txHash *string) error
}
