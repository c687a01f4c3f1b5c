// model/lookup.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lookup rows are referenced by business code (type, name, code) and
// snapshotted into consuming documents, so later edits never alter
// historical transactions.

type MembershipLevel string

const (
	MembershipGold   MembershipLevel = "GOLD"
	MembershipSilver MembershipLevel = "SILVER"
	MembershipBronze MembershipLevel = "BRONZE"
)

type MembershipType struct {
	MembershipID   int64           `json:"membershipId"`
	Type           MembershipLevel `json:"type"`
	MonthlyCostDkk decimal.Decimal `json:"monthlyCostDkk"`
}

type FeeKind string

const (
	FeeLate    FeeKind = "LATE"
	FeeDamaged FeeKind = "DAMAGED"
	FeeOther   FeeKind = "OTHER"
)

type FeeType struct {
	FeeID            int64            `json:"feeId"`
	FeeType          FeeKind          `json:"feeType"`
	DefaultAmountDkk *decimal.Decimal `json:"defaultAmountDkk"`
}

type Genre struct {
	GenreID int64  `json:"genreId"`
	Name    string `json:"name"`
}

type Format struct {
	FormatID int64  `json:"formatId"`
	Type     string `json:"type"` // DVD | BLU-RAY | VHS
}

type PromoCode struct {
	PromoCodeID  int64            `json:"promoCodeId"`
	Code         string           `json:"code"`
	Description  *string          `json:"description,omitempty"`
	PercentOff   *decimal.Decimal `json:"percentOff"`
	AmountOffDkk *decimal.Decimal `json:"amountOffDkk"`
	StartsAt     time.Time        `json:"startsAt"`
	EndsAt       *time.Time       `json:"endsAt"`
}

// ActiveAt reports whether the code may be redeemed at t. A nil EndsAt
// means the code has no expiry.
func (p PromoCode) ActiveAt(t time.Time) bool {
	if t.Before(p.StartsAt) {
		return false
	}
	return p.EndsAt == nil || !t.After(*p.EndsAt)
}
