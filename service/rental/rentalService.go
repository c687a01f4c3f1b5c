package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
	rentalrepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound             ErrCode = "NOT_FOUND"
	ErrStateConflict        ErrCode = "STATE_CONFLICT"
	ErrAvailabilityConflict ErrCode = "AVAILABILITY_CONFLICT"
	ErrSchemaViolation      ErrCode = "SCHEMA_VIOLATION"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type ReserveReq struct {
	CustomerID       int64
	LocationID       int64
	InventoryItemIDs []int64
	PromoCode        *string
}

type LateRow = rentalrepo.LateRow

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) (int64, error)
	Get(ctx context.Context, id int64) (*model.Rental, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error)
	Save(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	MarkLateBatch(ctx context.Context, tx *sql.Tx, now time.Time) ([]LateRow, error)
}

type LocationRepo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Location, error)
	CASItemStatus(ctx context.Context, tx *sql.Tx, locationID, itemID int64, from, to model.ItemStatus) (bool, error)
}

type CustomerRepo interface {
	Get(ctx context.Context, id int64) (*model.Customer, error)
	PushSummary(ctx context.Context, tx *sql.Tx, customerID int64, s model.RentalSummary) error
}

type LookupRepo interface {
	PromoByCode(ctx context.Context, code string) (*model.PromoCode, error)
	FeeTypeByKind(ctx context.Context, kind model.FeeKind) (*model.FeeType, error)
}

type Service interface {
	// Reserve creates a RESERVED rental over AVAILABLE items at one
	// location. Reservation is a soft hold: item status does not change
	// until checkout.
	Reserve(ctx context.Context, req ReserveReq) (*model.Rental, error)

	// CheckOut opens a reserved rental and flips every item to RENTED.
	CheckOut(ctx context.Context, rentalID, employeeID int64) (*model.Rental, error)

	// Return closes an OPEN or LATE rental, freeing the items (DAMAGED
	// for flagged ones) and assessing a LATE fee on overdue returns.
	Return(ctx context.Context, rentalID int64, returnedAt time.Time, damagedItemIDs []int64) (*model.Rental, error)

	// Cancel voids a RESERVED rental.
	Cancel(ctx context.Context, rentalID int64) (*model.Rental, error)

	AssessFee(ctx context.Context, rentalID int64, kind model.FeeKind, amount *decimal.Decimal) (*model.Rental, error)
	RecordPayment(ctx context.Context, rentalID int64, amount decimal.Decimal) (*model.Rental, error)

	Get(ctx context.Context, rentalID int64) (*model.Rental, error)

	// MarkLateSweep flips overdue OPEN rentals to LATE and returns how
	// many were flipped.
	MarkLateSweep(ctx context.Context) (int64, error)
}

// ----- Service implementation -----

type service struct {
	db           *sql.DB
	r            Repo
	lr           LocationRepo
	cr           CustomerRepo
	kr           LookupRepo
	rentalPeriod time.Duration
}

func New(db *sql.DB, r Repo, lr LocationRepo, cr CustomerRepo, kr LookupRepo, rentalPeriodDays int) Service {
	return &service{
		db:           db,
		r:            r,
		lr:           lr,
		cr:           cr,
		kr:           kr,
		rentalPeriod: time.Duration(rentalPeriodDays) * 24 * time.Hour,
	}
}

func (s *service) Reserve(ctx context.Context, req ReserveReq) (_ *model.Rental, err error) {
	if len(req.InventoryItemIDs) == 0 {
		return nil, makeErr(ErrSchemaViolation)
	}
	// One physical copy per rental line. A duplicated id would deadlock
	// checkout: the second AVAILABLE -> RENTED swap on the same item can
	// never succeed.
	seen := make(map[int64]bool, len(req.InventoryItemIDs))
	for _, itemID := range req.InventoryItemIDs {
		if seen[itemID] {
			return nil, makeErr(ErrSchemaViolation)
		}
		seen[itemID] = true
	}

	cust, err := s.cr.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, makeErr(ErrNotFound)
	}

	now := time.Now().UTC()

	// Promo terms are snapshotted at redemption so later edits to the
	// lookup never touch this rental.
	var promo *model.PromoSnapshot
	if req.PromoCode != nil && *req.PromoCode != "" {
		p, err := s.kr.PromoByCode(ctx, *req.PromoCode)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, makeErr(ErrNotFound)
		}
		if !p.ActiveAt(now) {
			return nil, makeErr(ErrStateConflict)
		}
		promo = &model.PromoSnapshot{
			PromoCodeID:  p.PromoCodeID,
			Code:         p.Code,
			PercentOff:   p.PercentOff,
			AmountOffDkk: p.AmountOffDkk,
			StartsAt:     p.StartsAt,
			EndsAt:       p.EndsAt,
		}
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

	loc, err := s.lr.GetForUpdate(ctx, tx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, makeErr(ErrNotFound)
	}

	items := make([]model.RentalItem, 0, len(req.InventoryItemIDs))
	for i, itemID := range req.InventoryItemIDs {
		it := loc.ItemByID(itemID)
		if it == nil {
			// missing or held by a different location
			return nil, makeErr(ErrNotFound)
		}
		if it.Status != model.ItemAvailable {
			return nil, makeErr(ErrAvailabilityConflict)
		}
		items = append(items, model.RentalItem{
			RentalItemID:    int64(i + 1),
			InventoryItemID: it.InventoryItemID,
			MovieID:         it.MovieID,
			FormatID:        it.FormatID,
		})
	}

	rental := &model.Rental{
		CustomerID:         req.CustomerID,
		LocationID:         req.LocationID,
		Status:             model.RentalReserved,
		ReservedAtDatetime: &now,
		Items:              items,
		Promo:              promo,
	}
	id, err := s.r.Insert(ctx, tx, rental)
	if err != nil {
		return nil, err
	}
	rental.RentalID = id

	if err = s.cr.PushSummary(ctx, tx, rental.CustomerID, rental.Summary()); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *service) CheckOut(ctx context.Context, rentalID, employeeID int64) (_ *model.Rental, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rental, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, makeErr(ErrNotFound)
	}
	if !rental.Status.CanTransitionTo(model.RentalOpen) {
		return nil, makeErr(ErrStateConflict)
	}

	loc, err := s.lr.GetForUpdate(ctx, tx, rental.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, makeErr(ErrNotFound)
	}
	emp := loc.EmployeeByID(employeeID)
	if emp == nil {
		return nil, makeErr(ErrNotFound)
	}
	if !emp.IsActive {
		return nil, makeErr(ErrStateConflict)
	}

	// Reservation is a soft hold, so another rental may have taken an
	// item since Reserve. The compare-and-swap lets exactly one checkout
	// win per item; losing rolls the whole transaction back.
	for _, it := range rental.Items {
		ok, err := s.lr.CASItemStatus(ctx, tx, rental.LocationID, it.InventoryItemID, model.ItemAvailable, model.ItemRented)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, makeErr(ErrAvailabilityConflict)
		}
	}

	now := time.Now().UTC()
	due := now.Add(s.rentalPeriod)
	rental.Status = model.RentalOpen
	rental.EmployeeID = &employeeID
	rental.RentedAtDatetime = &now
	rental.DueAtDatetime = &due

	if err = s.r.Save(ctx, tx, rental); err != nil {
		return nil, err
	}
	if err = s.cr.PushSummary(ctx, tx, rental.CustomerID, rental.Summary()); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *service) Return(ctx context.Context, rentalID int64, returnedAt time.Time, damagedItemIDs []int64) (_ *model.Rental, err error) {
	damaged := make(map[int64]bool, len(damagedItemIDs))
	for _, id := range damagedItemIDs {
		damaged[id] = true
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

	rental, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, makeErr(ErrNotFound)
	}
	if !rental.Status.CanTransitionTo(model.RentalReturned) {
		return nil, makeErr(ErrStateConflict)
	}

	if err = s.releaseItems(ctx, tx, rental, damaged); err != nil {
		return nil, err
	}

	rental.Status = model.RentalReturned
	rental.ReturnedAtDatetime = &returnedAt

	if rental.DueAtDatetime != nil && returnedAt.After(*rental.DueAtDatetime) {
		if err = s.appendFee(ctx, rental, model.FeeLate, nil); err != nil {
			return nil, err
		}
	}

	if err = s.r.Save(ctx, tx, rental); err != nil {
		return nil, err
	}
	if err = s.cr.PushSummary(ctx, tx, rental.CustomerID, rental.Summary()); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rental, nil
}

// releaseItems frees the rental's copies on return: AVAILABLE for a clean
// one, DAMAGED for flagged ones. An operator may have damaged or retired a
// copy while it was out; such an item has already left RENTED, so a missed
// compare-and-swap is not an error and the return proceeds without it.
func (s *service) releaseItems(ctx context.Context, tx *sql.Tx, rental *model.Rental, damaged map[int64]bool) error {
	for _, it := range rental.Items {
		to := model.ItemAvailable
		if damaged[it.InventoryItemID] {
			to = model.ItemDamaged
		}
		if _, err := s.lr.CASItemStatus(ctx, tx, rental.LocationID, it.InventoryItemID, model.ItemRented, to); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Cancel(ctx context.Context, rentalID int64) (_ *model.Rental, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rental, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, makeErr(ErrNotFound)
	}
	if !rental.Status.CanTransitionTo(model.RentalCancelled) {
		return nil, makeErr(ErrStateConflict)
	}

	// Soft hold: nothing to release on the inventory side.
	rental.Status = model.RentalCancelled

	if err = s.r.Save(ctx, tx, rental); err != nil {
		return nil, err
	}
	if err = s.cr.PushSummary(ctx, tx, rental.CustomerID, rental.Summary()); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *service) AssessFee(ctx context.Context, rentalID int64, kind model.FeeKind, amount *decimal.Decimal) (_ *model.Rental, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rental, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, makeErr(ErrNotFound)
	}

	if err = s.appendFee(ctx, rental, kind, amount); err != nil {
		return nil, err
	}
	if err = s.r.Save(ctx, tx, rental); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rental, nil
}

// appendFee snapshots the FeeType terms at assessment time. An omitted
// amount falls back to the current default.
func (s *service) appendFee(ctx context.Context, rental *model.Rental, kind model.FeeKind, amount *decimal.Decimal) error {
	ft, err := s.kr.FeeTypeByKind(ctx, kind)
	if err != nil {
		return err
	}
	if ft == nil {
		return makeErr(ErrNotFound)
	}
	if amount == nil {
		amount = ft.DefaultAmountDkk
	}
	if amount == nil {
		// e.g. OTHER has no default; an explicit amount is required
		return makeErr(ErrSchemaViolation)
	}
	rental.Fees = append(rental.Fees, model.Fee{
		RentalFeeID: rental.NextFeeID(),
		FeeID:       ft.FeeID,
		AmountDkk:   *amount,
		Snapshot: &model.FeeSnapshot{
			FeeType:          ft.FeeType,
			DefaultAmountDkk: ft.DefaultAmountDkk,
		},
	})
	return nil
}

func (s *service) RecordPayment(ctx context.Context, rentalID int64, amount decimal.Decimal) (_ *model.Rental, err error) {
	if !amount.IsPositive() {
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

	rental, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, makeErr(ErrNotFound)
	}

	// Payments and fees are independent ledgers; no balance is tracked.
	rental.Payments = append(rental.Payments, model.Payment{
		PaymentID: rental.NextPaymentID(),
		AmountDkk: amount,
		CreatedAt: time.Now().UTC(),
	})

	if err = s.r.Save(ctx, tx, rental); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *service) Get(ctx context.Context, rentalID int64) (*model.Rental, error) {
	rental, err := s.r.Get(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, makeErr(ErrNotFound)
	}
	return rental, nil
}

func (s *service) MarkLateSweep(ctx context.Context) (_ int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rows, err := s.r.MarkLateBatch(ctx, tx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		summary := model.RentalSummary{
			RentalID:         row.RentalID,
			Status:           model.RentalLate,
			RentedAtDatetime: row.RentedAt,
		}
		if err = s.cr.PushSummary(ctx, tx, row.CustomerID, summary); err != nil {
			return 0, err
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
