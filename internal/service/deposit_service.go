// internal/service/deposit_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
	"solvest-backend/internal/util"
)

// DepositService defines the deposit intake and approval logic.
type DepositService interface {
	Submit(ctx context.Context, userID int64, transactionID string, amount decimal.Decimal, screenshotURL *string) (*domain.Deposit, error)
	// Process transitions a pending deposit. Approval credits the user's
	// wallet and appends a deposit ledger entry atomically.
	Process(ctx context.Context, depositID int64, status domain.DepositStatus) (*domain.Deposit, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Deposit, error)
}

type depositService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewDepositService creates a new DepositService.
func NewDepositService(store repository.Store, logger *slog.Logger) DepositService {
	return &depositService{store: store, logger: logger}
}

// Submit records a claimed on-chain transfer as a pending deposit. No balance
// effect happens until an admin approves it.
func (s *depositService) Submit(ctx context.Context, userID int64, transactionID string, amount decimal.Decimal, screenshotURL *string) (*domain.Deposit, error) {
	if transactionID == "" || amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("submit deposit: failed to load user: %w", err)
	}

	deposit := domain.NewDeposit(userID, transactionID, amount, screenshotURL)
	if err := s.store.Deposits().Create(ctx, deposit); err != nil {
		return nil, fmt.Errorf("submit deposit: %w", err)
	}
	return deposit, nil
}

// Process approves or rejects a pending deposit. The row is loaded under a
// row lock so concurrent processing serializes on the pending check; approval
// credits the wallet in the same transaction.
func (s *depositService) Process(ctx context.Context, depositID int64, status domain.DepositStatus) (*domain.Deposit, error) {
	if status != domain.DepositStatusApproved && status != domain.DepositStatusRejected {
		return nil, util.ErrInvalidStatus
	}

	var deposit *domain.Deposit
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		deposit, err = tx.Deposits().GetByIDForUpdate(ctx, depositID)
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrDepositNotFound
		}
		if err != nil {
			return fmt.Errorf("process deposit: failed to lock deposit %d: %w", depositID, err)
		}
		if deposit.Status != domain.DepositStatusPending {
			return util.ErrInvalidStatus
		}

		if err := tx.Deposits().UpdateStatus(ctx, depositID, status); err != nil {
			return fmt.Errorf("process deposit: %w", err)
		}

		if status == domain.DepositStatusApproved {
			if err := tx.Users().AddToBalance(ctx, deposit.UserID, deposit.Amount); err != nil {
				return fmt.Errorf("process deposit: failed to credit wallet: %w", err)
			}
			entry := domain.NewTransaction(deposit.UserID, domain.TransactionTypeDeposit, deposit.Amount,
				fmt.Sprintf("Deposit approved - TX: %s", deposit.TransactionID))
			if err := tx.Transactions().Create(ctx, entry); err != nil {
				return fmt.Errorf("process deposit: failed to create transaction: %w", err)
			}
		}

		deposit, err = tx.Deposits().GetByID(ctx, depositID)
		if err != nil {
			return fmt.Errorf("process deposit: failed to re-fetch deposit %d: %w", depositID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deposit, nil
}

// ListByUser returns a user's deposit history.
func (s *depositService) ListByUser(ctx context.Context, userID int64) ([]domain.Deposit, error) {
	deposits, err := s.store.Deposits().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	return deposits, nil
}
