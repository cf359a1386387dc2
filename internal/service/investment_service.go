// internal/service/investment_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/accrual"
	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
	"solvest-backend/internal/util"
)

// Reinvestment source selectors.
const (
	ReinvestProfits = "profits"
	ReinvestCapital = "capital"
	ReinvestBoth    = "both"
)

// InvestmentStatusView is the computed-on-read status of one investment.
type InvestmentStatusView struct {
	ID            int64                   `json:"id"`
	Amount        decimal.Decimal         `json:"amount"`
	ROIPercent    decimal.Decimal         `json:"roiPercent"`
	DailyReturn   decimal.Decimal         `json:"dailyReturn"`
	DaysRemaining int                     `json:"daysRemaining"`
	CurrentProfit decimal.Decimal         `json:"currentProfit"`
	TotalProfit   decimal.Decimal         `json:"totalProfit"`
	Status        domain.InvestmentStatus `json:"status"`
	IsCompleted   bool                    `json:"isCompleted"`
	CanWithdraw   bool                    `json:"canWithdraw"`
}

// InvestmentService defines the investment lifecycle logic.
type InvestmentService interface {
	Start(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Investment, error)
	Status(ctx context.Context, userID int64) ([]InvestmentStatusView, error)
	// RecomputeProfits runs the batch accrual sweep and returns the number of
	// investments whose profit was overwritten.
	RecomputeProfits(ctx context.Context) (int, error)
	Reinvest(ctx context.Context, userID, investmentID int64, reinvestType string, amount decimal.Decimal) (*domain.Investment, error)
}

type investmentService struct {
	store   repository.Store
	logger  *slog.Logger
	now     func() time.Time
	drawROI func() decimal.Decimal
}

// NewInvestmentService creates a new InvestmentService. A nil now falls back
// to the wall clock; a nil drawROI falls back to the uniform draw over
// [2.00, 3.50]. Tests inject both.
func NewInvestmentService(store repository.Store, logger *slog.Logger, now func() time.Time, drawROI func() decimal.Decimal) InvestmentService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if drawROI == nil {
		drawROI = DrawROI
	}
	return &investmentService{store: store, logger: logger, now: now, drawROI: drawROI}
}

// DrawROI draws a daily ROI percentage uniformly from {2.00, 2.01, ..., 3.50},
// both endpoints inclusive.
func DrawROI() decimal.Decimal {
	basis := 200 + rand.Int64N(151)
	return decimal.NewFromInt(basis).Div(decimal.NewFromInt(100))
}

// Start opens a 7-day position. The balance check, the decrement, the
// investment row, and the ledger entry are one atomic unit; the user row is
// locked so concurrent starts cannot both spend the same balance.
func (s *investmentService) Start(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Investment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	var investment *domain.Investment
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByIDForUpdate(ctx, userID)
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("invest: failed to lock user %d: %w", userID, err)
		}

		if amount.GreaterThan(user.WalletBalance) {
			return util.ErrInsufficientBalance
		}

		roi := s.drawROI()
		investment = domain.NewInvestment(userID, amount, roi, s.now(), accrual.TermDays)
		if err := tx.Investments().Create(ctx, investment); err != nil {
			return fmt.Errorf("invest: failed to create investment: %w", err)
		}

		entry := domain.NewTransaction(userID, domain.TransactionTypeInvestment, amount,
			fmt.Sprintf("Investment started with %s%% daily ROI for %d days", roi.StringFixed(2), accrual.TermDays))
		if err := tx.Transactions().Create(ctx, entry); err != nil {
			return fmt.Errorf("invest: failed to create transaction: %w", err)
		}

		if err := tx.Users().AddToBalance(ctx, userID, amount.Neg()); err != nil {
			return fmt.Errorf("invest: failed to debit balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return investment, nil
}

// Status returns every investment for the user with accrual fields computed
// at read time. Only totalProfit reflects the last batch recompute.
func (s *investmentService) Status(ctx context.Context, userID int64) ([]InvestmentStatusView, error) {
	investments, err := s.store.Investments().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("investment status: %w", err)
	}

	now := s.now()
	views := make([]InvestmentStatusView, 0, len(investments))
	for _, inv := range investments {
		st := accrual.Evaluate(inv.StartDate, inv.EndDate, inv.DailyReturn, now)
		views = append(views, InvestmentStatusView{
			ID:            inv.ID,
			Amount:        inv.Amount,
			ROIPercent:    inv.ROIPercent,
			DailyReturn:   inv.DailyReturn,
			DaysRemaining: st.DaysRemaining,
			CurrentProfit: st.CurrentProfit,
			TotalProfit:   inv.TotalProfit,
			Status:        inv.Status,
			IsCompleted:   st.IsCompleted,
			CanWithdraw:   st.CanWithdraw,
		})
	}
	return views, nil
}

// RecomputeProfits overwrites totalProfit for every active investment with at
// least one elapsed day, flips matured positions to completed, and refreshes
// the cached portfolio totals of the affected users. The whole sweep is one
// storage transaction, so it only ever sees investments whose creation has
// committed.
func (s *investmentService) RecomputeProfits(ctx context.Context) (int, error) {
	updated := 0
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		active, err := tx.Investments().ListActive(ctx)
		if err != nil {
			return fmt.Errorf("recompute: %w", err)
		}

		now := s.now()
		touched := map[int64]struct{}{}
		for _, inv := range active {
			st := accrual.Evaluate(inv.StartDate, inv.EndDate, inv.DailyReturn, now)
			if st.DaysPassed > 0 {
				if err := tx.Investments().UpdateProfit(ctx, inv.ID, st.CurrentProfit); err != nil {
					return fmt.Errorf("recompute: %w", err)
				}
				updated++
			}
			if st.IsCompleted {
				if err := tx.Investments().UpdateStatus(ctx, inv.ID, domain.InvestmentStatusCompleted); err != nil {
					return fmt.Errorf("recompute: %w", err)
				}
			}
			touched[inv.UserID] = struct{}{}
		}

		for userID := range touched {
			investments, err := tx.Investments().ListByUser(ctx, userID)
			if err != nil {
				return fmt.Errorf("recompute: %w", err)
			}
			if err := tx.Portfolios().UpdateValue(ctx, userID, PortfolioValue(investments, now)); err != nil {
				return fmt.Errorf("recompute: failed to refresh portfolio for user %d: %w", userID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// Reinvest closes out a matured position into a new one. The reinvestType
// caps how much of the close-out may be rolled: profits caps at the accrued
// profit, capital at the principal, both at their sum. The old position moves
// to withdrawn and whatever is not rolled is credited to the wallet, all in
// one transaction with the ledger entry.
func (s *investmentService) Reinvest(ctx context.Context, userID, investmentID int64, reinvestType string, amount decimal.Decimal) (*domain.Investment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}
	if reinvestType != ReinvestProfits && reinvestType != ReinvestCapital && reinvestType != ReinvestBoth {
		return nil, util.ErrInvalidInput
	}

	var investment *domain.Investment
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		source, err := tx.Investments().GetByID(ctx, investmentID)
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrInvestmentNotFound
		}
		if err != nil {
			return fmt.Errorf("reinvest: failed to load investment %d: %w", investmentID, err)
		}
		if source.UserID != userID {
			return util.ErrInvestmentNotFound
		}
		if source.Status == domain.InvestmentStatusWithdrawn {
			return util.ErrInvalidStatus
		}

		now := s.now()
		st := accrual.Evaluate(source.StartDate, source.EndDate, source.DailyReturn, now)
		if !st.CanWithdraw {
			return util.ErrNotMatured
		}

		payout := source.Amount.Add(st.CurrentProfit)
		available := payout
		switch reinvestType {
		case ReinvestProfits:
			available = st.CurrentProfit
		case ReinvestCapital:
			available = source.Amount
		}
		if amount.GreaterThan(available) {
			return util.ErrInsufficientBalance
		}

		roi := s.drawROI()
		investment = domain.NewInvestment(userID, amount, roi, now, accrual.TermDays)
		if err := tx.Investments().Create(ctx, investment); err != nil {
			return fmt.Errorf("reinvest: failed to create investment: %w", err)
		}

		if err := tx.Investments().UpdateStatus(ctx, source.ID, domain.InvestmentStatusWithdrawn); err != nil {
			return fmt.Errorf("reinvest: failed to close source investment: %w", err)
		}

		if remainder := payout.Sub(amount); remainder.IsPositive() {
			if err := tx.Users().AddToBalance(ctx, userID, remainder); err != nil {
				return fmt.Errorf("reinvest: failed to credit close-out remainder: %w", err)
			}
		}

		entry := domain.NewTransaction(userID, domain.TransactionTypeReinvestment, amount,
			fmt.Sprintf("Reinvestment of %s - %s%% daily ROI for %d days", reinvestType, roi.StringFixed(2), accrual.TermDays))
		if err := tx.Transactions().Create(ctx, entry); err != nil {
			return fmt.Errorf("reinvest: failed to create transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return investment, nil
}
