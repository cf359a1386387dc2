// internal/domain/referral.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferralBonus is the fixed wallet credit granted to a referrer when their
// referred user completes registration.
var ReferralBonus = decimal.RequireFromString("15.00")

// Referral records a completed referred signup.
type Referral struct {
	ID          int64           `db:"id" json:"id"`
	ReferrerID  int64           `db:"referrer_id" json:"referrerId"`
	ReferredID  int64           `db:"referred_id" json:"referredId"`
	BonusAmount decimal.Decimal `db:"bonus_amount" json:"bonusAmount"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// NewReferral creates a referral record carrying the fixed bonus.
func NewReferral(referrerID, referredID int64) *Referral {
	return &Referral{
		ReferrerID:  referrerID,
		ReferredID:  referredID,
		BonusAmount: ReferralBonus,
		CreatedAt:   time.Now().UTC(),
	}
}
