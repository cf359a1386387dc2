// internal/domain/user.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SignupBonus is the fixed wallet credit granted unconditionally at registration.
var SignupBonus = decimal.RequireFromString("15.00")

// User represents a registered account.
type User struct {
	ID            int64           `db:"id" json:"id"`
	FirstName     string          `db:"first_name" json:"firstName"`
	LastName      string          `db:"last_name" json:"lastName"`
	Email         string          `db:"email" json:"email"`
	Password      string          `db:"password" json:"-"` // bcrypt hash, never serialized
	WalletBalance decimal.Decimal `db:"wallet_balance" json:"walletBalance"`
	SolanaAddress *string         `db:"solana_address" json:"solanaAddress"`
	ReferralCode  string          `db:"referral_code" json:"referralCode"`
	ReferredBy    *string         `db:"referred_by" json:"referredBy"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
}

// NewUser creates a new User instance with the signup credit applied.
// The password must already be hashed.
func NewUser(firstName, lastName, email, passwordHash string, referredBy *string) *User {
	return &User{
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		Password:      passwordHash,
		WalletBalance: SignupBonus,
		ReferralCode:  NewReferralCode(),
		ReferredBy:    referredBy,
		CreatedAt:     time.Now().UTC(),
	}
}

// NewReferralCode generates a referral code of the form REF-XXXXXXXX.
// Uniqueness is enforced at the storage layer; callers retry on collision.
func NewReferralCode() string {
	id := strings.ToUpper(uuid.NewString())
	return "REF-" + strings.ReplaceAll(id, "-", "")[:8]
}
