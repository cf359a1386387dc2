// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit             TransactionType = "deposit"
	TransactionTypeInvestment          TransactionType = "investment"
	TransactionTypeReferral            TransactionType = "referral"
	TransactionTypeSignupBonus         TransactionType = "signup_bonus"
	TransactionTypeWithdrawalRequest   TransactionType = "withdrawal_request"
	TransactionTypeWithdrawalProcessed TransactionType = "withdrawal_processed"
	TransactionTypeReinvestment        TransactionType = "reinvestment"
)

// Transaction is an append-only ledger entry. Rows are immutable once created
// and form the sole audit trail for balance movements.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"userId"`
	Type        TransactionType `db:"type" json:"type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Description string          `db:"description" json:"description"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// NewTransaction creates a new ledger entry.
func NewTransaction(userID int64, txType TransactionType, amount decimal.Decimal, description string) *Transaction {
	return &Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}
