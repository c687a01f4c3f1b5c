package customersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
	"github.com/DBD-Movie-Rental/movie-rental-main/util/database"
)

type ErrCode string

const (
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrEmailTaken      ErrCode = "EMAIL_TAKEN"
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

type CreateReq struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
	Address     string
	City        string
	PostCode    string
}

type AddressReq struct {
	Address  string
	City     string
	PostCode string
}

type Repo interface {
	Create(ctx context.Context, c *model.Customer) (int64, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Customer, error)
	UpdateAddress(ctx context.Context, id int64, a model.Address) (bool, error)
	SetMembership(ctx context.Context, id int64, plan model.MembershipPlan) (*model.MembershipPlan, error)
	SetRecentRentals(ctx context.Context, tx *sql.Tx, id int64, cache []model.RentalSummary) error
}

type RentalRepo interface {
	ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]model.RentalSummary, error)
}

type LookupRepo interface {
	MembershipTypeByLevel(ctx context.Context, level model.MembershipLevel) (*model.MembershipType, error)
}

type Service interface {
	Create(ctx context.Context, req CreateReq) (*model.Customer, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)

	// UpdateAddress replaces the owned address in place. No history is
	// retained.
	UpdateAddress(ctx context.Context, id int64, req AddressReq) error

	// Subscribe snapshots the current MembershipType terms into a new
	// immutable plan object. A resubscription builds a fresh snapshot,
	// never edits the old one.
	Subscribe(ctx context.Context, id int64, level model.MembershipLevel) (*model.MembershipPlan, error)

	// RebuildRecentRentals replays the customer's rentals newest-first
	// and rewrites the bounded cache. The rentals collection is
	// authoritative; the cache is derived.
	RebuildRecentRentals(ctx context.Context, id int64) ([]model.RentalSummary, error)
}

type service struct {
	db *sql.DB
	r  Repo
	rr RentalRepo
	kr LookupRepo
}

func New(db *sql.DB, r Repo, rr RentalRepo, kr LookupRepo) Service {
	return &service{db: db, r: r, rr: rr, kr: kr}
}

func (s *service) Create(ctx context.Context, req CreateReq) (*model.Customer, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Address == "" || req.City == "" || req.PostCode == "" {
		return nil, makeErr(ErrSchemaViolation)
	}

	c := &model.Customer{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber: req.PhoneNumber,
		Address: model.Address{
			AddressID: 1,
			Address:   req.Address,
			City:      req.City,
			PostCode:  req.PostCode,
		},
		RecentRentals: []model.RentalSummary{},
	}
	id, err := s.r.Create(ctx, c)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, makeErr(ErrEmailTaken)
		}
		return nil, err
	}
	c.CustomerID = id
	return c, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}
	return c, nil
}

func (s *service) UpdateAddress(ctx context.Context, id int64, req AddressReq) error {
	if req.Address == "" || req.City == "" || req.PostCode == "" {
		return makeErr(ErrSchemaViolation)
	}
	ok, err := s.r.UpdateAddress(ctx, id, model.Address{
		AddressID: 1,
		Address:   req.Address,
		City:      req.City,
		PostCode:  req.PostCode,
	})
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Subscribe(ctx context.Context, id int64, level model.MembershipLevel) (*model.MembershipPlan, error) {
	mt, err := s.kr.MembershipTypeByLevel(ctx, level)
	if err != nil {
		return nil, err
	}
	if mt == nil {
		return nil, makeErr(ErrNotFound)
	}

	// The store allocates the plan id on the customer row; the snapshot
	// here carries the terms only.
	plan := model.MembershipPlan{
		MembershipType: mt.Type,
		StartsOn:       time.Now().UTC(),
		MonthlyCostDkk: mt.MonthlyCostDkk,
		MembershipID:   mt.MembershipID,
	}
	stored, err := s.r.SetMembership(ctx, id, plan)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, makeErr(ErrNotFound)
	}
	return stored, nil
}

func (s *service) RebuildRecentRentals(ctx context.Context, id int64) (_ []model.RentalSummary, err error) {
	recent, err := s.rr.ListRecentByCustomer(ctx, id, model.MaxRecentRentals)
	if err != nil {
		return nil, err
	}
	// The replay comes newest-first; the cache stores newest last.
	cache := make([]model.RentalSummary, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		cache = append(cache, recent[i])
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

	c, err := s.r.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}
	if err = s.r.SetRecentRentals(ctx, tx, id, cache); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return cache, nil
}
