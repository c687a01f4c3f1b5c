// repository/customer/repo.go
package customerrepo

import (
	"context"
	"database/sql"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Repo interface {
	Create(ctx context.Context, c *model.Customer) (int64, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Customer, error)

	UpdateAddress(ctx context.Context, id int64, a model.Address) (bool, error)

	// SetMembership stores the plan snapshot and allocates its id on the
	// customer row in the same statement. Returns the stored plan, or nil
	// when the customer does not exist.
	SetMembership(ctx context.Context, id int64, plan model.MembershipPlan) (*model.MembershipPlan, error)
	SetRecentRentals(ctx context.Context, tx *sql.Tx, id int64, cache []model.RentalSummary) error

	// PushSummary applies one recent-rental cache push under the customer
	// row lock. Re-applying the same (rentalId, status) push is a no-op
	// beyond replacing the entry in place.
	PushSummary(ctx context.Context, tx *sql.Tx, customerID int64, s model.RentalSummary) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, c *model.Customer) (int64, error) {
	address, err := json.Marshal(c.Address)
	if err != nil {
		return 0, err
	}
	const q = `
		INSERT INTO customers (first_name, last_name, email, phone_number, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING customer_id, created_at`
	var id int64
	err = r.db.QueryRowContext(ctx, q,
		c.FirstName, c.LastName, c.Email, c.PhoneNumber, address,
	).Scan(&id, &c.CreatedAt)
	return id, err
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Customer, error) {
	const q = `
		SELECT customer_id, first_name, last_name, email, phone_number, created_at,
		       address, membership_plan, recent_rentals
		FROM customers
		WHERE customer_id = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Customer, error) {
	const q = `
		SELECT customer_id, first_name, last_name, email, phone_number, created_at,
		       address, membership_plan, recent_rentals
		FROM customers
		WHERE customer_id = $1
		FOR UPDATE`
	c, err := scanCustomer(tx.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) UpdateAddress(ctx context.Context, id int64, a model.Address) (bool, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	const q = `UPDATE customers SET address = $2 WHERE customer_id = $1`
	res, err := r.db.ExecContext(ctx, q, id, b)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff == 1, nil
}

func (r *repo) SetMembership(ctx context.Context, id int64, plan model.MembershipPlan) (*model.MembershipPlan, error) {
	b, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}
	// The next plan id comes from the row being updated, so two concurrent
	// subscriptions can never mint the same id.
	const q = `
		UPDATE customers
		SET membership_plan = jsonb_set($2::jsonb, '{membershipPlanId}',
		        to_jsonb(COALESCE((membership_plan ->> 'membershipPlanId')::BIGINT, 0) + 1))
		WHERE customer_id = $1
		RETURNING membership_plan`
	var raw []byte
	err = r.db.QueryRowContext(ctx, q, id, b).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stored model.MembershipPlan
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *repo) SetRecentRentals(ctx context.Context, tx *sql.Tx, id int64, cache []model.RentalSummary) error {
	if cache == nil {
		cache = []model.RentalSummary{}
	}
	b, err := json.Marshal(cache)
	if err != nil {
		return err
	}
	const q = `UPDATE customers SET recent_rentals = $2 WHERE customer_id = $1`
	_, err = tx.ExecContext(ctx, q, id, b)
	return err
}

func (r *repo) PushSummary(ctx context.Context, tx *sql.Tx, customerID int64, s model.RentalSummary) error {
	const sel = `
		SELECT recent_rentals
		FROM customers
		WHERE customer_id = $1
		FOR UPDATE`
	var raw []byte
	if err := tx.QueryRowContext(ctx, sel, customerID).Scan(&raw); err != nil {
		return err
	}
	var cache []model.RentalSummary
	if err := json.Unmarshal(raw, &cache); err != nil {
		return err
	}
	return r.SetRecentRentals(ctx, tx, customerID, model.PushRecentRental(cache, s))
}

func scanCustomer(scan func(...any) error) (*model.Customer, error) {
	var c model.Customer
	var address, recent []byte
	var plan []byte
	if err := scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.CreatedAt,
		&address, &plan, &recent); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(address, &c.Address); err != nil {
		return nil, err
	}
	if plan != nil {
		if err := json.Unmarshal(plan, &c.MembershipPlan); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(recent, &c.RecentRentals); err != nil {
		return nil, err
	}
	return &c, nil
}
