// internal/domain/deposit.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus is the workflow state of a submitted deposit proof.
type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusApproved DepositStatus = "approved"
	DepositStatusRejected DepositStatus = "rejected"
)

// Deposit is a user-submitted claim of an on-chain transfer. The transaction
// reference is not verified against the chain; an admin approves or rejects
// it, and only approval credits the wallet.
type Deposit struct {
	ID            int64           `db:"id" json:"id"`
	UserID        int64           `db:"user_id" json:"userId"`
	TransactionID string          `db:"transaction_id" json:"transactionId"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	ScreenshotURL *string         `db:"screenshot_url" json:"screenshotUrl"`
	Status        DepositStatus   `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	ProcessedAt   *time.Time      `db:"processed_at" json:"processedAt"`
}

// NewDeposit creates a pending deposit submission.
func NewDeposit(userID int64, transactionID string, amount decimal.Decimal, screenshotURL *string) *Deposit {
	return &Deposit{
		UserID:        userID,
		TransactionID: transactionID,
		Amount:        amount,
		ScreenshotURL: screenshotURL,
		Status:        DepositStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}
