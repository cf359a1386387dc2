// internal/service/account_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/accrual"
	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
	"solvest-backend/internal/util"
)

// referralCodeAttempts bounds the retry loop for code collisions.
const referralCodeAttempts = 5

// SignupInput carries validated registration data. The password is plaintext
// here and hashed before anything is persisted.
type SignupInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	ReferralCode *string
}

// DashboardView is the aggregate returned for the dashboard endpoint.
type DashboardView struct {
	User               *domain.User         `json:"user"`
	Portfolio          *domain.Portfolio    `json:"portfolio"`
	RecentTransactions []domain.Transaction `json:"recentTransactions"`
	ReferralCount      int                  `json:"referralCount"`
	ReferralEarnings   decimal.Decimal      `json:"referralEarnings"`
}

// AccountService defines the registration, login, and account-view logic.
type AccountService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Dashboard(ctx context.Context, userID int64) (*DashboardView, error)
	Transactions(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
}

type accountService struct {
	store  repository.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewAccountService creates a new AccountService. A nil now falls back to the
// wall clock; tests inject a fixed clock.
func NewAccountService(store repository.Store, logger *slog.Logger, now func() time.Time) AccountService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &accountService{store: store, logger: logger, now: now}
}

// Signup registers a user. The user row, its portfolio, the signup-bonus
// ledger entry, and any referral crediting are one atomic unit: either all of
// them exist afterwards or none do.
func (s *accountService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	passwordHash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: failed to hash password: %w", err)
	}

	var user *domain.User
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		_, err := tx.Users().GetByEmail(ctx, in.Email)
		if err == nil {
			return util.ErrDuplicateEmail
		}
		if !util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("signup: failed to check existing user: %w", err)
		}

		user = domain.NewUser(in.FirstName, in.LastName, in.Email, passwordHash, in.ReferralCode)
		if err := s.ensureUniqueReferralCode(ctx, tx, user); err != nil {
			return err
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("signup: failed to create user: %w", err)
		}

		if err := tx.Portfolios().Create(ctx, domain.NewPortfolio(user.ID)); err != nil {
			return fmt.Errorf("signup: failed to create portfolio: %w", err)
		}

		bonus := domain.NewTransaction(user.ID, domain.TransactionTypeSignupBonus,
			domain.SignupBonus, "Welcome bonus for new user registration")
		if err := tx.Transactions().Create(ctx, bonus); err != nil {
			return fmt.Errorf("signup: failed to create signup bonus transaction: %w", err)
		}

		if in.ReferralCode != nil && *in.ReferralCode != "" {
			if err := s.creditReferrer(ctx, tx, *in.ReferralCode, user); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ensureUniqueReferralCode regenerates the user's referral code until it is
// unused. The unique index remains the backstop for races.
func (s *accountService) ensureUniqueReferralCode(ctx context.Context, tx repository.Store, user *domain.User) error {
	for i := 0; i < referralCodeAttempts; i++ {
		_, err := tx.Users().GetByReferralCode(ctx, user.ReferralCode)
		if util.IsError(err, util.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("signup: failed to check referral code: %w", err)
		}
		user.ReferralCode = domain.NewReferralCode()
	}
	return fmt.Errorf("signup: could not generate a unique referral code after %d attempts", referralCodeAttempts)
}

// creditReferrer resolves the supplied code by referral code and, when it
// resolves, records the referral and credits the referrer's wallet. An
// unresolvable code is ignored.
func (s *accountService) creditReferrer(ctx context.Context, tx repository.Store, code string, referred *domain.User) error {
	referrer, err := tx.Users().GetByReferralCode(ctx, code)
	if util.IsError(err, util.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("signup: failed to resolve referral code: %w", err)
	}

	if err := tx.Referrals().Create(ctx, domain.NewReferral(referrer.ID, referred.ID)); err != nil {
		return fmt.Errorf("signup: failed to create referral: %w", err)
	}

	entry := domain.NewTransaction(referrer.ID, domain.TransactionTypeReferral, domain.ReferralBonus,
		fmt.Sprintf("Referral bonus for inviting %s %s", referred.FirstName, referred.LastName))
	if err := tx.Transactions().Create(ctx, entry); err != nil {
		return fmt.Errorf("signup: failed to create referral transaction: %w", err)
	}

	if err := tx.Users().AddToBalance(ctx, referrer.ID, domain.ReferralBonus); err != nil {
		return fmt.Errorf("signup: failed to credit referrer: %w", err)
	}
	return nil
}

// Login verifies credentials and returns the user.
func (s *accountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if util.IsError(err, util.ErrNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: failed to load user: %w", err)
	}
	if !util.CheckPassword(password, user.Password) {
		return nil, util.ErrInvalidCredentials
	}
	return user, nil
}

// Dashboard aggregates the user, their portfolio (with the total derived from
// live investments), recent ledger entries, and referral stats.
func (s *accountService) Dashboard(ctx context.Context, userID int64) (*DashboardView, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if util.IsError(err, util.ErrNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to load user: %w", err)
	}

	portfolio, err := s.store.Portfolios().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to load portfolio: %w", err)
	}

	investments, err := s.store.Investments().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to load investments: %w", err)
	}
	portfolio.TotalValue = PortfolioValue(investments, s.now())

	recent, _, err := s.store.Transactions().ListByUser(ctx, userID, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to load transactions: %w", err)
	}

	referrals, err := s.store.Referrals().ListByReferrer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to load referrals: %w", err)
	}
	earnings := decimal.Zero
	for _, ref := range referrals {
		earnings = earnings.Add(ref.BonusAmount)
	}

	return &DashboardView{
		User:               user,
		Portfolio:          portfolio,
		RecentTransactions: recent,
		ReferralCount:      len(referrals),
		ReferralEarnings:   earnings,
	}, nil
}

// Transactions returns a page of the user's ledger.
func (s *accountService) Transactions(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, 0, util.ErrUserNotFound
		}
		return nil, 0, fmt.Errorf("transactions: failed to load user: %w", err)
	}
	transactions, total, err := s.store.Transactions().ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("transactions: failed to list ledger: %w", err)
	}
	return transactions, total, nil
}

// PortfolioValue derives the live portfolio total: principal plus accrued
// profit over every position that has not been withdrawn.
func PortfolioValue(investments []domain.Investment, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		if inv.Status == domain.InvestmentStatusWithdrawn {
			continue
		}
		st := accrual.Evaluate(inv.StartDate, inv.EndDate, inv.DailyReturn, now)
		total = total.Add(inv.Amount).Add(st.CurrentProfit)
	}
	return total
}
