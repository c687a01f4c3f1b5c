// model/customer.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxRecentRentals caps the per-customer recent-rental cache.
const MaxRecentRentals = 5

type Customer struct {
	CustomerID     int64           `json:"customerId"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	PhoneNumber    *string         `json:"phoneNumber,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	Address        Address         `json:"address"`
	MembershipPlan *MembershipPlan `json:"membershipPlan,omitempty"`
	RecentRentals  []RentalSummary `json:"recentRentals"`
}

// Address is owned 1:1 by its customer. Mutable, no history retained.
type Address struct {
	AddressID int64  `json:"addressId"`
	Address   string `json:"address"`
	City      string `json:"city"`
	PostCode  string `json:"postCode"`
}

// MembershipPlan is a snapshot of a MembershipType taken at subscription
// time. Immutable once created; a new subscription replaces it with a new
// snapshot object so historical billing terms are never edited in place.
type MembershipPlan struct {
	MembershipPlanID int64           `json:"membershipPlanId"`
	MembershipType   MembershipLevel `json:"membershipType"`
	StartsOn         time.Time       `json:"startsOn"`
	EndsOn           *time.Time      `json:"endsOn,omitempty"`
	MonthlyCostDkk   decimal.Decimal `json:"monthlyCostDkk"`
	MembershipID     int64           `json:"membershipId"`
}

// RentalSummary is one entry of the recent-rental cache. The rentals
// collection stays authoritative; the cache is rebuildable.
type RentalSummary struct {
	RentalID         int64        `json:"rentalId"`
	Status           RentalStatus `json:"status"`
	RentedAtDatetime *time.Time   `json:"rentedAtDatetime"`
}

// PushRecentRental appends s to the cache, newest last. An entry carrying
// the same rentalId is replaced rather than duplicated, which makes
// re-applying the same push idempotent. The result holds at most
// MaxRecentRentals entries; the oldest are evicted.
func PushRecentRental(cache []RentalSummary, s RentalSummary) []RentalSummary {
	out := make([]RentalSummary, 0, len(cache)+1)
	for _, e := range cache {
		if e.RentalID != s.RentalID {
			out = append(out, e)
		}
	}
	out = append(out, s)
	if len(out) > MaxRecentRentals {
		out = out[len(out)-MaxRecentRentals:]
	}
	return out
}
