// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input provided")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrDuplicateEmail       = errors.New("user already exists with this email")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrNotMatured           = errors.New("investment has not matured")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvestmentNotFound   = errors.New("investment not found")
	ErrWithdrawalNotFound   = errors.New("withdrawal request not found")
	ErrDepositNotFound      = errors.New("deposit not found")
)

// IsError checks if the target error is present in the error chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
