package facilitysvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
	locationrepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/location"
)

type ErrCode string

const (
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrStateConflict   ErrCode = "STATE_CONFLICT"
	ErrSchemaViolation ErrCode = "SCHEMA_VIOLATION"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type EmployeeReq struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
}

type AvailableItem = locationrepo.AvailableItem

type Repo interface {
	Create(ctx context.Context, l *model.Location) (int64, error)
	Get(ctx context.Context, id int64) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Location, error)
	SaveEmployees(ctx context.Context, tx *sql.Tx, locationID int64, employees []model.Employee) error
	SaveInventory(ctx context.Context, tx *sql.Tx, locationID int64, inventory []model.InventoryItem) error
	Availability(ctx context.Context, movieID int64, formatID, locationID *int64) ([]AvailableItem, error)
}

type MovieRepo interface {
	Get(ctx context.Context, id int64) (*model.Movie, error)
}

type FormatRepo interface {
	FormatByID(ctx context.Context, id int64) (*model.Format, error)
}

type Service interface {
	CreateLocation(ctx context.Context, address, city string) (int64, error)
	Get(ctx context.Context, id int64) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)

	AddEmployee(ctx context.Context, locationID int64, req EmployeeReq) (*model.Employee, error)
	// DeactivateEmployee flips isActive off. Employees are never deleted;
	// deactivating twice is a no-op.
	DeactivateEmployee(ctx context.Context, locationID, employeeID int64) error

	AddInventory(ctx context.Context, locationID, movieID, formatID int64, n int) ([]model.InventoryItem, error)
	RetireItem(ctx context.Context, locationID, itemID int64) error
	DamageItem(ctx context.Context, locationID, itemID int64) error
	RepairItem(ctx context.Context, locationID, itemID int64) error

	Availability(ctx context.Context, movieID int64, formatID, locationID *int64) ([]AvailableItem, error)
}

type service struct {
	db *sql.DB
	r  Repo
	mr MovieRepo
	fr FormatRepo
}

func New(db *sql.DB, r Repo, mr MovieRepo, fr FormatRepo) Service {
	return &service{db: db, r: r, mr: mr, fr: fr}
}

func (s *service) CreateLocation(ctx context.Context, address, city string) (int64, error) {
	if address == "" || city == "" {
		return 0, makeErr(ErrSchemaViolation)
	}
	return s.r.Create(ctx, &model.Location{Address: address, City: city})
}

func (s *service) Get(ctx context.Context, id int64) (*model.Location, error) {
	loc, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, makeErr(ErrNotFound)
	}
	return loc, nil
}

func (s *service) List(ctx context.Context) ([]model.Location, error) { return s.r.List(ctx) }

func (s *service) AddEmployee(ctx context.Context, locationID int64, req EmployeeReq) (_ *model.Employee, err error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return nil, makeErr(ErrSchemaViolation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	loc, err := s.r.GetForUpdate(ctx, tx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, makeErr(ErrNotFound)
	}

	emp := model.Employee{
		EmployeeID:  nextEmployeeID(loc.Employees),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		IsActive:    true,
	}
	if err = s.r.SaveEmployees(ctx, tx, locationID, append(loc.Employees, emp)); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *service) DeactivateEmployee(ctx context.Context, locationID, employeeID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	loc, err := s.r.GetForUpdate(ctx, tx, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return makeErr(ErrNotFound)
	}
	emp := loc.EmployeeByID(employeeID)
	if emp == nil {
		return makeErr(ErrNotFound)
	}
	emp.IsActive = false

	if err = s.r.SaveEmployees(ctx, tx, locationID, loc.Employees); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) AddInventory(ctx context.Context, locationID, movieID, formatID int64, n int) (_ []model.InventoryItem, err error) {
	if n <= 0 {
		return nil, makeErr(ErrSchemaViolation)
	}
	movie, err := s.mr.Get(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, makeErr(ErrNotFound)
	}
	format, err := s.fr.FormatByID(ctx, formatID)
	if err != nil {
		return nil, err
	}
	if format == nil {
		return nil, makeErr(ErrNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	loc, err := s.r.GetForUpdate(ctx, tx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, makeErr(ErrNotFound)
	}

	next := nextItemID(loc.Inventory)
	added := make([]model.InventoryItem, 0, n)
	for i := 0; i < n; i++ {
		added = append(added, model.InventoryItem{
			InventoryItemID: next + int64(i),
			MovieID:         movieID,
			FormatID:        formatID,
			Status:          model.ItemAvailable,
		})
	}
	if err = s.r.SaveInventory(ctx, tx, locationID, append(loc.Inventory, added...)); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return added, nil
}

// RetireItem is an operator action. Idempotent on RETIRED; an item in a
// customer's hands (RENTED) cannot be retired.
func (s *service) RetireItem(ctx context.Context, locationID, itemID int64) error {
	return s.adminItemUpdate(ctx, locationID, itemID, func(it *model.InventoryItem) error {
		switch it.Status {
		case model.ItemRetired:
			return nil
		case model.ItemRented:
			return makeErr(ErrStateConflict)
		}
		it.Status = model.ItemRetired
		return nil
	})
}

// DamageItem is an operator action and may flag an item regardless of
// whether it is on the shelf or out on a rental. Retired items stay
// retired.
func (s *service) DamageItem(ctx context.Context, locationID, itemID int64) error {
	return s.adminItemUpdate(ctx, locationID, itemID, func(it *model.InventoryItem) error {
		switch it.Status {
		case model.ItemDamaged:
			return nil
		case model.ItemRetired:
			return makeErr(ErrStateConflict)
		}
		it.Status = model.ItemDamaged
		return nil
	})
}

func (s *service) RepairItem(ctx context.Context, locationID, itemID int64) error {
	return s.adminItemUpdate(ctx, locationID, itemID, func(it *model.InventoryItem) error {
		if !it.Status.CanTransitionTo(model.ItemAvailable) || it.Status != model.ItemDamaged {
			return makeErr(ErrStateConflict)
		}
		it.Status = model.ItemAvailable
		return nil
	})
}

func (s *service) adminItemUpdate(ctx context.Context, locationID, itemID int64, apply func(*model.InventoryItem) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	loc, err := s.r.GetForUpdate(ctx, tx, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return makeErr(ErrNotFound)
	}
	it := loc.ItemByID(itemID)
	if it == nil {
		return makeErr(ErrNotFound)
	}
	if err = apply(it); err != nil {
		return err
	}
	if err = s.r.SaveInventory(ctx, tx, locationID, loc.Inventory); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Availability(ctx context.Context, movieID int64, formatID, locationID *int64) ([]AvailableItem, error) {
	return s.r.Availability(ctx, movieID, formatID, locationID)
}

func nextEmployeeID(employees []model.Employee) int64 {
	var max int64
	for _, e := range employees {
		if e.EmployeeID > max {
			max = e.EmployeeID
		}
	}
	return max + 1
}

func nextItemID(items []model.InventoryItem) int64 {
	var max int64
	for _, it := range items {
		if it.InventoryItemID > max {
			max = it.InventoryItemID
		}
	}
	return max + 1
}
