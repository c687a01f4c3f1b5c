// repository/location/repo.go
package locationrepo

import (
	"context"
	"database/sql"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AvailableItem is one AVAILABLE inventory item for the checkout
// availability query.
type AvailableItem struct {
	LocationID      int64  `json:"locationId"`
	City            string `json:"city"`
	InventoryItemID int64  `json:"inventoryItemId"`
	MovieID         int64  `json:"movieId"`
	FormatID        int64  `json:"formatId"`
}

type Repo interface {
	Create(ctx context.Context, l *model.Location) (int64, error)
	Get(ctx context.Context, id int64) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)

	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Location, error)
	SaveEmployees(ctx context.Context, tx *sql.Tx, locationID int64, employees []model.Employee) error
	SaveInventory(ctx context.Context, tx *sql.Tx, locationID int64, inventory []model.InventoryItem) error

	// CASItemStatus transitions one embedded item from -> to in a single
	// statement. Returns false when the item was not in the expected
	// status (or not at the location), leaving the row untouched.
	CASItemStatus(ctx context.Context, tx *sql.Tx, locationID, itemID int64, from, to model.ItemStatus) (bool, error)

	Availability(ctx context.Context, movieID int64, formatID, locationID *int64) ([]AvailableItem, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, l *model.Location) (int64, error) {
	employees, err := json.Marshal(orEmptyEmployees(l.Employees))
	if err != nil {
		return 0, err
	}
	inventory, err := json.Marshal(orEmptyItems(l.Inventory))
	if err != nil {
		return 0, err
	}
	const q = `
		INSERT INTO locations (address, city, employees, inventory)
		VALUES ($1, $2, $3, $4)
		RETURNING location_id`
	var id int64
	err = r.db.QueryRowContext(ctx, q, l.Address, l.City, employees, inventory).Scan(&id)
	return id, err
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Location, error) {
	const q = `
		SELECT location_id, address, city, employees, inventory
		FROM locations
		WHERE location_id = $1`
	l, err := scanLocation(r.db.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *repo) List(ctx context.Context) ([]model.Location, error) {
	const q = `
		SELECT location_id, address, city, employees, inventory
		FROM locations
		ORDER BY location_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Location
	for rows.Next() {
		l, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Location, error) {
	const q = `
		SELECT location_id, address, city, employees, inventory
		FROM locations
		WHERE location_id = $1
		FOR UPDATE`
	l, err := scanLocation(tx.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *repo) SaveEmployees(ctx context.Context, tx *sql.Tx, locationID int64, employees []model.Employee) error {
	b, err := json.Marshal(orEmptyEmployees(employees))
	if err != nil {
		return err
	}
	const q = `UPDATE locations SET employees = $2 WHERE location_id = $1`
	_, err = tx.ExecContext(ctx, q, locationID, b)
	return err
}

func (r *repo) SaveInventory(ctx context.Context, tx *sql.Tx, locationID int64, inventory []model.InventoryItem) error {
	b, err := json.Marshal(orEmptyItems(inventory))
	if err != nil {
		return err
	}
	const q = `UPDATE locations SET inventory = $2 WHERE location_id = $1`
	_, err = tx.ExecContext(ctx, q, locationID, b)
	return err
}

func (r *repo) CASItemStatus(ctx context.Context, tx *sql.Tx, locationID, itemID int64, from, to model.ItemStatus) (bool, error) {
	// The containment predicate is the compare-and-swap: the row only
	// matches while the item still carries the expected status, so
	// concurrent checkouts of the same item let exactly one win.
	const q = `
		UPDATE locations
		SET inventory = (
			SELECT jsonb_agg(
				CASE WHEN (it ->> 'inventoryItemId')::BIGINT = $2
				     THEN jsonb_set(it, '{status}', to_jsonb($4::TEXT))
				     ELSE it
				END)
			FROM jsonb_array_elements(inventory) it
		)
		WHERE location_id = $1
		  AND inventory @> jsonb_build_array(jsonb_build_object('inventoryItemId', $2, 'status', $3::TEXT))`
	res, err := tx.ExecContext(ctx, q, locationID, itemID, string(from), string(to))
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

func (r *repo) Availability(ctx context.Context, movieID int64, formatID, locationID *int64) ([]AvailableItem, error) {
	const q = `
		SELECT l.location_id, l.city,
		       (it ->> 'inventoryItemId')::BIGINT,
		       (it ->> 'movieId')::BIGINT,
		       (it ->> 'formatId')::BIGINT
		FROM locations l, jsonb_array_elements(l.inventory) it
		WHERE it ->> 'status' = 'AVAILABLE'
		  AND (it ->> 'movieId')::BIGINT = $1
		  AND ($2::BIGINT IS NULL OR (it ->> 'formatId')::BIGINT = $2)
		  AND ($3::BIGINT IS NULL OR l.location_id = $3)
		ORDER BY l.location_id, (it ->> 'inventoryItemId')::BIGINT`
	rows, err := r.db.QueryContext(ctx, q, movieID, formatID, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AvailableItem
	for rows.Next() {
		var a AvailableItem
		if err := rows.Scan(&a.LocationID, &a.City, &a.InventoryItemID, &a.MovieID, &a.FormatID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanLocation(scan func(...any) error) (*model.Location, error) {
	var l model.Location
	var employees, inventory []byte
	if err := scan(&l.LocationID, &l.Address, &l.City, &employees, &inventory); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(employees, &l.Employees); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inventory, &l.Inventory); err != nil {
		return nil, err
	}
	return &l, nil
}

func orEmptyEmployees(s []model.Employee) []model.Employee {
	if s == nil {
		return []model.Employee{}
	}
	return s
}

func orEmptyItems(s []model.InventoryItem) []model.InventoryItem {
	if s == nil {
		return []model.InventoryItem{}
	}
	return s
}
