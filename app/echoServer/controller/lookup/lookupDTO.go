package lookup

import (
	"time"

	"github.com/shopspring/decimal"
)

type MembershipTypeReq struct {
	Type           string          `json:"type" validate:"required,oneof=GOLD SILVER BRONZE"`
	MonthlyCostDkk decimal.Decimal `json:"monthly_cost_dkk" validate:"required"`
}

type FeeTypeReq struct {
	FeeType          string           `json:"fee_type" validate:"required,oneof=LATE DAMAGED OTHER"`
	DefaultAmountDkk *decimal.Decimal `json:"default_amount_dkk,omitempty"`
}

type GenreReq struct {
	Name string `json:"name" validate:"required"`
}

type FormatReq struct {
	Type string `json:"type" validate:"required,oneof=DVD BLU-RAY VHS"`
}

type PromoCodeReq struct {
	Code         string           `json:"code" validate:"required"`
	Description  *string          `json:"description,omitempty"`
	PercentOff   *decimal.Decimal `json:"percent_off,omitempty"`
	AmountOffDkk *decimal.Decimal `json:"amount_off_dkk,omitempty"`
	StartsAt     time.Time        `json:"starts_at" validate:"required"`
	EndsAt       *time.Time       `json:"ends_at,omitempty"`
}
