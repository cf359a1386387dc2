// internal/service/withdrawal_service.go
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

// minWalletAddressLen is a minimum-length sanity check, not real address
// validation.
const minWalletAddressLen = 32

// WithdrawalService defines the withdrawal request and processing logic.
type WithdrawalService interface {
	Request(ctx context.Context, userID int64, amount decimal.Decimal, walletAddress string) (*domain.WithdrawalRequest, error)
	// Process settles or rejects a pending request. Settling debits the
	// wallet after a fresh balance check under the user row lock.
	Process(ctx context.Context, withdrawalID int64, status domain.WithdrawalStatus, txHash *string) (*domain.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error)
}

type withdrawalService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewWithdrawalService creates a new WithdrawalService.
func NewWithdrawalService(store repository.Store, logger *slog.Logger) WithdrawalService {
	return &withdrawalService{store: store, logger: logger}
}

// Request creates a pending withdrawal. The balance is checked under the user
// row lock so concurrent requests cannot both pass against the same stale
// balance, but it is not reserved: the debit happens at processing time.
func (s *withdrawalService) Request(ctx context.Context, userID int64, amount decimal.Decimal, walletAddress string) (*domain.WithdrawalRequest, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}
	if len(walletAddress) < minWalletAddressLen {
		return nil, util.ErrInvalidWalletAddress
	}

	var withdrawal *domain.WithdrawalRequest
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByIDForUpdate(ctx, userID)
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("request withdrawal: failed to lock user %d: %w", userID, err)
		}

		if amount.GreaterThan(user.WalletBalance) {
			return util.ErrInsufficientBalance
		}

		withdrawal = domain.NewWithdrawalRequest(userID, amount, walletAddress)
		if err := tx.Withdrawals().Create(ctx, withdrawal); err != nil {
			return fmt.Errorf("request withdrawal: %w", err)
		}

		entry := domain.NewTransaction(userID, domain.TransactionTypeWithdrawalRequest, amount,
			fmt.Sprintf("Withdrawal request to %s...", walletAddress[:8]))
		if err := tx.Transactions().Create(ctx, entry); err != nil {
			return fmt.Errorf("request withdrawal: failed to create transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// Process transitions a pending request. The row is loaded under a row lock
// so concurrent processing serializes on the pending check. On processed, the
// user's wallet is debited; a balance that shrank since the request was made
// fails the processing rather than driving the balance negative.
func (s *withdrawalService) Process(ctx context.Context, withdrawalID int64, status domain.WithdrawalStatus, txHash *string) (*domain.WithdrawalRequest, error) {
	if status != domain.WithdrawalStatusProcessed && status != domain.WithdrawalStatusRejected {
		return nil, util.ErrInvalidStatus
	}

	var withdrawal *domain.WithdrawalRequest
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		withdrawal, err = tx.Withdrawals().GetByIDForUpdate(ctx, withdrawalID)
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrWithdrawalNotFound
		}
		if err != nil {
			return fmt.Errorf("process withdrawal: failed to lock request %d: %w", withdrawalID, err)
		}
		if withdrawal.Status != domain.WithdrawalStatusPending {
			return util.ErrInvalidStatus
		}

		if status == domain.WithdrawalStatusProcessed {
			user, err := tx.Users().GetByIDForUpdate(ctx, withdrawal.UserID)
			if err != nil {
				return fmt.Errorf("process withdrawal: failed to lock user %d: %w", withdrawal.UserID, err)
			}
			if withdrawal.Amount.GreaterThan(user.WalletBalance) {
				return util.ErrInsufficientBalance
			}
			if err := tx.Users().AddToBalance(ctx, withdrawal.UserID, withdrawal.Amount.Neg()); err != nil {
				return fmt.Errorf("process withdrawal: failed to debit wallet: %w", err)
			}

			hash := "N/A"
			if txHash != nil && *txHash != "" {
				hash = *txHash
			}
			entry := domain.NewTransaction(withdrawal.UserID, domain.TransactionTypeWithdrawalProcessed, withdrawal.Amount,
				fmt.Sprintf("Withdrawal processed to %s... - TX: %s", withdrawal.WalletAddress[:8], hash))
			if err := tx.Transactions().Create(ctx, entry); err != nil {
				return fmt.Errorf("process withdrawal: failed to create transaction: %w", err)
			}
		}

		if err := tx.Withdrawals().UpdateStatus(ctx, withdrawalID, status, txHash); err != nil {
			return fmt.Errorf("process withdrawal: %w", err)
		}

		withdrawal, err = tx.Withdrawals().GetByID(ctx, withdrawalID)
		if err != nil {
			return fmt.Errorf("process withdrawal: failed to re-fetch request %d: %w", withdrawalID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// ListByUser returns a user's withdrawal history.
func (s *withdrawalService) ListByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error) {
	withdrawals, err := s.store.Withdrawals().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	return withdrawals, nil
}
