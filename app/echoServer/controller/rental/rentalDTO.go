package rental

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReserveReq struct {
	CustomerID       int64   `json:"customer_id" validate:"required,gt=0"`
	LocationID       int64   `json:"location_id" validate:"required,gt=0"`
	InventoryItemIDs []int64 `json:"inventory_item_ids" validate:"required,min=1,unique,dive,gt=0"`
	PromoCode        *string `json:"promo_code,omitempty"`
}

type CheckOutReq struct {
	EmployeeID int64 `json:"employee_id" validate:"required,gt=0"`
}

type ReturnReq struct {
	// Defaults to now when omitted.
	ReturnedAt     *time.Time `json:"returned_at,omitempty"`
	DamagedItemIDs []int64    `json:"damaged_item_ids,omitempty"`
}

type FeeReq struct {
	FeeType string           `json:"fee_type" validate:"required,oneof=LATE DAMAGED OTHER"`
	Amount  *decimal.Decimal `json:"amount_dkk,omitempty"`
}

type PaymentReq struct {
	Amount decimal.Decimal `json:"amount_dkk" validate:"required"`
}
