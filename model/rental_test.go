package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

func TestNextPaymentID(t *testing.T) {
	r := &model.Rental{}
	if got := r.NextPaymentID(); got != 1 {
		t.Fatalf("empty ledger: got %d, want 1", got)
	}
	r.Payments = []model.Payment{
		{PaymentID: 1, AmountDkk: decimal.NewFromInt(50)},
		{PaymentID: 3, AmountDkk: decimal.NewFromInt(25)},
	}
	if got := r.NextPaymentID(); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
}

func TestNextFeeID(t *testing.T) {
	r := &model.Rental{Fees: []model.Fee{{RentalFeeID: 2}}}
	if got := r.NextFeeID(); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestSummary(t *testing.T) {
	now := time.Now().UTC()
	r := &model.Rental{RentalID: 7, Status: model.RentalOpen, RentedAtDatetime: &now}
	s := r.Summary()
	if s.RentalID != 7 || s.Status != model.RentalOpen || s.RentedAtDatetime != &now {
		t.Fatalf("bad projection: %+v", s)
	}
}

func TestPromoActiveAt(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	p := model.PromoCode{Code: "SUMMER", StartsAt: start, EndsAt: &end}
	if p.ActiveAt(start.Add(-time.Hour)) {
		t.Error("active before window start")
	}
	if !p.ActiveAt(start) {
		t.Error("inactive at window start")
	}
	if !p.ActiveAt(end) {
		t.Error("inactive at window end")
	}
	if p.ActiveAt(end.Add(time.Hour)) {
		t.Error("active after window end")
	}

	open := model.PromoCode{Code: "FOREVER", StartsAt: start}
	if !open.ActiveAt(end.AddDate(10, 0, 0)) {
		t.Error("nil EndsAt should never expire")
	}
}
