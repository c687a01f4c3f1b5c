// repository/rental/repo.go
package rentalrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LateRow identifies a rental swept OPEN -> LATE.
type LateRow struct {
	RentalID   int64
	CustomerID int64
	RentedAt   *time.Time
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) (int64, error)
	Get(ctx context.Context, id int64) (*model.Rental, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error)

	// Save writes back the aggregate's mutable state: status, timestamps
	// and the embedded payments/fees arrays. Items and promo are frozen
	// at Reserve time.
	Save(ctx context.Context, tx *sql.Tx, r *model.Rental) error

	// ListRecentByCustomer replays a customer's rentals newest-first for
	// the recent-rental cache rebuild.
	ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]model.RentalSummary, error)

	// MarkLateBatch flips every OPEN rental past due at now to LATE and
	// reports the flipped rows.
	MarkLateBatch(ctx context.Context, tx *sql.Tx, now time.Time) ([]LateRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, m *model.Rental) (int64, error) {
	items, err := json.Marshal(m.Items)
	if err != nil {
		return 0, err
	}
	payments, err := json.Marshal(orEmptyPayments(m.Payments))
	if err != nil {
		return 0, err
	}
	fees, err := json.Marshal(orEmptyFees(m.Fees))
	if err != nil {
		return 0, err
	}
	var promo []byte
	if m.Promo != nil {
		if promo, err = json.Marshal(m.Promo); err != nil {
			return 0, err
		}
	}
	const q = `
		INSERT INTO rentals (customer_id, location_id, employee_id, status,
		                     reserved_at_datetime, rented_at_datetime, due_at_datetime, returned_at_datetime,
		                     items, payments, fees, promo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING rental_id`
	var id int64
	err = tx.QueryRowContext(ctx, q,
		m.CustomerID, m.LocationID, m.EmployeeID, m.Status,
		m.ReservedAtDatetime, m.RentedAtDatetime, m.DueAtDatetime, m.ReturnedAtDatetime,
		items, payments, fees, promo,
	).Scan(&id)
	return id, err
}

const selectRental = `
	SELECT rental_id, customer_id, location_id, employee_id, status,
	       reserved_at_datetime, rented_at_datetime, due_at_datetime, returned_at_datetime,
	       items, payments, fees, promo
	FROM rentals
	WHERE rental_id = $1`

func (r *repo) Get(ctx context.Context, id int64) (*model.Rental, error) {
	m, err := scanRental(r.db.QueryRowContext(ctx, selectRental, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error) {
	m, err := scanRental(tx.QueryRowContext(ctx, selectRental+`
	FOR UPDATE`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) Save(ctx context.Context, tx *sql.Tx, m *model.Rental) error {
	payments, err := json.Marshal(orEmptyPayments(m.Payments))
	if err != nil {
		return err
	}
	fees, err := json.Marshal(orEmptyFees(m.Fees))
	if err != nil {
		return err
	}
	const q = `
		UPDATE rentals
		SET status = $2,
		    employee_id = $3,
		    rented_at_datetime = $4,
		    due_at_datetime = $5,
		    returned_at_datetime = $6,
		    payments = $7,
		    fees = $8
		WHERE rental_id = $1`
	_, err = tx.ExecContext(ctx, q,
		m.RentalID, m.Status, m.EmployeeID,
		m.RentedAtDatetime, m.DueAtDatetime, m.ReturnedAtDatetime,
		payments, fees,
	)
	return err
}

func (r *repo) ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]model.RentalSummary, error) {
	const q = `
		SELECT rental_id, status, rented_at_datetime
		FROM rentals
		WHERE customer_id = $1
		ORDER BY COALESCE(rented_at_datetime, reserved_at_datetime) DESC, rental_id DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RentalSummary
	for rows.Next() {
		var s model.RentalSummary
		if err := rows.Scan(&s.RentalID, &s.Status, &s.RentedAtDatetime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) MarkLateBatch(ctx context.Context, tx *sql.Tx, now time.Time) ([]LateRow, error) {
	const q = `
		UPDATE rentals
		SET status = 'LATE'
		WHERE status = 'OPEN'
		  AND due_at_datetime < $1
		RETURNING rental_id, customer_id, rented_at_datetime`
	rows, err := tx.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LateRow
	for rows.Next() {
		var l LateRow
		if err := rows.Scan(&l.RentalID, &l.CustomerID, &l.RentedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanRental(scan func(...any) error) (*model.Rental, error) {
	var m model.Rental
	var items, payments, fees, promo []byte
	if err := scan(&m.RentalID, &m.CustomerID, &m.LocationID, &m.EmployeeID, &m.Status,
		&m.ReservedAtDatetime, &m.RentedAtDatetime, &m.DueAtDatetime, &m.ReturnedAtDatetime,
		&items, &payments, &fees, &promo); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &m.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payments, &m.Payments); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fees, &m.Fees); err != nil {
		return nil, err
	}
	if promo != nil {
		if err := json.Unmarshal(promo, &m.Promo); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func orEmptyPayments(s []model.Payment) []model.Payment {
	if s == nil {
		return []model.Payment{}
	}
	return s
}

func orEmptyFees(s []model.Fee) []model.Fee {
	if s == nil {
		return []model.Fee{}
	}
	return s
}
