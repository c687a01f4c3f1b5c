// model/rental.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rental is the aggregate root of a transaction: it owns its items,
// payments, fees and promo snapshot, and weakly references the customer,
// location, employee and inventory items involved.
type Rental struct {
	RentalID           int64          `json:"rentalId"`
	CustomerID         int64          `json:"customerId"`
	LocationID         int64          `json:"locationId"`
	EmployeeID         *int64         `json:"employeeId,omitempty"`
	Status             RentalStatus   `json:"status"`
	ReservedAtDatetime *time.Time     `json:"reservedAtDatetime,omitempty"`
	RentedAtDatetime   *time.Time     `json:"rentedAtDatetime,omitempty"`
	DueAtDatetime      *time.Time     `json:"dueAtDatetime,omitempty"`
	ReturnedAtDatetime *time.Time     `json:"returnedAtDatetime,omitempty"`
	Items              []RentalItem   `json:"items"` // never empty
	Payments           []Payment      `json:"payments"`
	Fees               []Fee          `json:"fees"`
	Promo              *PromoSnapshot `json:"promo,omitempty"`
}

// RentalItem carries a weak reference to the inventory item plus redundant
// movie/format copies so the line survives later inventory edits.
type RentalItem struct {
	RentalItemID    int64 `json:"rentalItemId"`
	InventoryItemID int64 `json:"inventoryItemId"`
	MovieID         int64 `json:"movieId"`
	FormatID        int64 `json:"formatId"`
}

type Payment struct {
	PaymentID int64           `json:"paymentId"`
	AmountDkk decimal.Decimal `json:"amountDkk"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Fee struct {
	RentalFeeID int64           `json:"rentalFeeId"`
	FeeID       int64           `json:"feeId"`
	AmountDkk   decimal.Decimal `json:"amountDkk"`
	Snapshot    *FeeSnapshot    `json:"snapshot,omitempty"`
}

// FeeSnapshot captures the FeeType terms at assessment time.
type FeeSnapshot struct {
	FeeType          FeeKind          `json:"feeType"`
	DefaultAmountDkk *decimal.Decimal `json:"defaultAmountDkk"`
}

// PromoSnapshot captures the PromoCode terms at redemption time, immune to
// later edits of the lookup row.
type PromoSnapshot struct {
	PromoCodeID  int64            `json:"promoCodeId"`
	Code         string           `json:"code"`
	PercentOff   *decimal.Decimal `json:"percentOff"`
	AmountOffDkk *decimal.Decimal `json:"amountOffDkk"`
	StartsAt     time.Time        `json:"startsAt"`
	EndsAt       *time.Time       `json:"endsAt"`
}

// NextPaymentID returns the next embedded payment id for the aggregate.
func (r *Rental) NextPaymentID() int64 {
	var max int64
	for _, p := range r.Payments {
		if p.PaymentID > max {
			max = p.PaymentID
		}
	}
	return max + 1
}

// NextFeeID returns the next embedded fee id for the aggregate.
func (r *Rental) NextFeeID() int64 {
	var max int64
	for _, f := range r.Fees {
		if f.RentalFeeID > max {
			max = f.RentalFeeID
		}
	}
	return max + 1
}

// Summary projects the aggregate into a recent-rental cache entry.
func (r *Rental) Summary() RentalSummary {
	return RentalSummary{
		RentalID:         r.RentalID,
		Status:           r.Status,
		RentedAtDatetime: r.RentedAtDatetime,
	}
}
