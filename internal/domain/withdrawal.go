// internal/domain/withdrawal.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the workflow state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusProcessed WithdrawalStatus = "processed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

// WithdrawalRequest is a pending payout. Balance is checked but not reserved
// at request time; the debit happens when an admin marks it processed.
type WithdrawalRequest struct {
	ID            int64            `db:"id" json:"id"`
	UserID        int64            `db:"user_id" json:"userId"`
	Amount        decimal.Decimal  `db:"amount" json:"amount"`
	WalletAddress string           `db:"wallet_address" json:"walletAddress"`
	Status        WithdrawalStatus `db:"status" json:"status"`
	RequestedAt   time.Time        `db:"requested_at" json:"requestedAt"`
	ProcessedAt   *time.Time       `db:"processed_at" json:"processedAt"`
	TxHash        *string          `db:"tx_hash" json:"txHash"`
}

// NewWithdrawalRequest creates a pending withdrawal request.
func NewWithdrawalRequest(userID int64, amount decimal.Decimal, walletAddress string) *WithdrawalRequest {
	return &WithdrawalRequest{
		UserID:        userID,
		Amount:        amount,
		WalletAddress: walletAddress,
		Status:        WithdrawalStatusPending,
		RequestedAt:   time.Now().UTC(),
	}
}
