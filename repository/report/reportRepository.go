// repository/report/repo.go
package reportrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Rows mirror the reporting views; hours_overdue and all sums are computed
// by the database at query time, never stored.

type OverdueRow struct {
	RentalID      int64     `json:"rental_id"`
	CustomerID    int64     `json:"customer_id"`
	DueAtDatetime time.Time `json:"due_at_datetime"`
	Status        string    `json:"status"`
	HoursOverdue  int64     `json:"hours_overdue"`
}

type SummaryRow struct {
	CustomerID            int64           `json:"customer_id"`
	FirstName             string          `json:"first_name"`
	LastName              string          `json:"last_name"`
	Email                 string          `json:"email"`
	PhoneNumber           *string         `json:"phone_number,omitempty"`
	TotalRentals          int64           `json:"total_rentals"`
	OpenRentals           int64           `json:"open_rentals"`
	LateRentals           int64           `json:"late_rentals"`
	ReservedRentals       int64           `json:"reserved_rentals"`
	ReturnedRentals       int64           `json:"returned_rentals"`
	FirstRentedAtDatetime *time.Time      `json:"first_rented_at_datetime"`
	LastRentedAtDatetime  *time.Time      `json:"last_rented_at_datetime"`
	TotalPaymentsDkk      decimal.Decimal `json:"total_payments_dkk"`
	TotalLateFeesDkk      decimal.Decimal `json:"total_late_fees_dkk"`
	TotalDamagedFeesDkk   decimal.Decimal `json:"total_damaged_fees_dkk"`
	TotalOtherFeesDkk     decimal.Decimal `json:"total_other_fees_dkk"`
	TotalAllFeesDkk       decimal.Decimal `json:"total_all_fees_dkk"`
}

type AddressRow struct {
	CustomerID  int64   `json:"customer_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	AddressID   int64   `json:"address_id"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	PostCode    string  `json:"post_code"`
}

type AddressRentalRow struct {
	CustomerID         int64      `json:"customer_id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Email              string     `json:"email"`
	PhoneNumber        *string    `json:"phone_number,omitempty"`
	AddressID          int64      `json:"address_id"`
	Address            string     `json:"address"`
	City               string     `json:"city"`
	PostCode           string     `json:"post_code"`
	RentalID           int64      `json:"rental_id"`
	RentalStatus       string     `json:"rental_status"`
	RentedAtDatetime   *time.Time `json:"rented_at_datetime"`
	DueAtDatetime      *time.Time `json:"due_at_datetime"`
	ReturnedAtDatetime *time.Time `json:"returned_at_datetime"`
	ReservedAtDatetime *time.Time `json:"reserved_at_datetime"`
	EmployeeID         *int64     `json:"employee_id"`
	PromoCodeID        *int64     `json:"promo_code_id"`
}

type MembershipRow struct {
	CustomerID       int64            `json:"customer_id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Email            string           `json:"email"`
	PhoneNumber      *string          `json:"phone_number,omitempty"`
	MembershipPlanID *int64           `json:"membership_plan_id"`
	MembershipLevel  *string          `json:"membership_level"`
	MonthlyCost      *decimal.Decimal `json:"monthly_cost"`
	StartsOn         *time.Time       `json:"starts_on"`
	EndsOn           *time.Time       `json:"ends_on"`
}

type Repo interface {
	OverdueRentals(ctx context.Context) ([]OverdueRow, error)
	CustomerSummaries(ctx context.Context, customerID *int64) ([]SummaryRow, error)
	CustomerAddresses(ctx context.Context) ([]AddressRow, error)
	CustomerAddressRentals(ctx context.Context, customerID *int64) ([]AddressRentalRow, error)
	CustomerMemberships(ctx context.Context) ([]MembershipRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) OverdueRentals(ctx context.Context) ([]OverdueRow, error) {
	const q = `
		SELECT rental_id, customer_id, due_at_datetime, status, hours_overdue
		FROM vw_overdue_rentals
		ORDER BY hours_overdue DESC, rental_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OverdueRow
	for rows.Next() {
		var o OverdueRow
		if err := rows.Scan(&o.RentalID, &o.CustomerID, &o.DueAtDatetime, &o.Status, &o.HoursOverdue); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repo) CustomerSummaries(ctx context.Context, customerID *int64) ([]SummaryRow, error) {
	const q = `
		SELECT customer_id, first_name, last_name, email, phone_number,
		       total_rentals, open_rentals, late_rentals, reserved_rentals, returned_rentals,
		       first_rented_at_datetime, last_rented_at_datetime,
		       total_payments_dkk, total_late_fees_dkk, total_damaged_fees_dkk,
		       total_other_fees_dkk, total_all_fees_dkk
		FROM vw_customer_rental_summary
		WHERE ($1::BIGINT IS NULL OR customer_id = $1)
		ORDER BY customer_id`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var s SummaryRow
		if err := rows.Scan(&s.CustomerID, &s.FirstName, &s.LastName, &s.Email, &s.PhoneNumber,
			&s.TotalRentals, &s.OpenRentals, &s.LateRentals, &s.ReservedRentals, &s.ReturnedRentals,
			&s.FirstRentedAtDatetime, &s.LastRentedAtDatetime,
			&s.TotalPaymentsDkk, &s.TotalLateFeesDkk, &s.TotalDamagedFeesDkk,
			&s.TotalOtherFeesDkk, &s.TotalAllFeesDkk); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) CustomerAddresses(ctx context.Context) ([]AddressRow, error) {
	const q = `
		SELECT customer_id, first_name, last_name, email, phone_number,
		       address_id, address, city, post_code
		FROM vw_customer_addresses
		ORDER BY customer_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AddressRow
	for rows.Next() {
		var a AddressRow
		if err := rows.Scan(&a.CustomerID, &a.FirstName, &a.LastName, &a.Email, &a.PhoneNumber,
			&a.AddressID, &a.Address, &a.City, &a.PostCode); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) CustomerAddressRentals(ctx context.Context, customerID *int64) ([]AddressRentalRow, error) {
	const q = `
		SELECT customer_id, first_name, last_name, email, phone_number,
		       address_id, address, city, post_code,
		       rental_id, rental_status,
		       rented_at_datetime, due_at_datetime, returned_at_datetime, reserved_at_datetime,
		       employee_id, promo_code_id
		FROM vw_customer_address_rentals
		WHERE ($1::BIGINT IS NULL OR customer_id = $1)
		ORDER BY customer_id, rental_id`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AddressRentalRow
	for rows.Next() {
		var a AddressRentalRow
		if err := rows.Scan(&a.CustomerID, &a.FirstName, &a.LastName, &a.Email, &a.PhoneNumber,
			&a.AddressID, &a.Address, &a.City, &a.PostCode,
			&a.RentalID, &a.RentalStatus,
			&a.RentedAtDatetime, &a.DueAtDatetime, &a.ReturnedAtDatetime, &a.ReservedAtDatetime,
			&a.EmployeeID, &a.PromoCodeID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) CustomerMemberships(ctx context.Context) ([]MembershipRow, error) {
	const q = `
		SELECT customer_id, first_name, last_name, email, phone_number,
		       membership_plan_id, membership_level, monthly_cost, starts_on, ends_on
		FROM vw_customer_membership
		ORDER BY customer_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MembershipRow
	for rows.Next() {
		var m MembershipRow
		var cost decimal.NullDecimal
		if err := rows.Scan(&m.CustomerID, &m.FirstName, &m.LastName, &m.Email, &m.PhoneNumber,
			&m.MembershipPlanID, &m.MembershipLevel, &cost, &m.StartsOn, &m.EndsOn); err != nil {
			return nil, err
		}
		if cost.Valid {
			m.MonthlyCost = &cost.Decimal
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
