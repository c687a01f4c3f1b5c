package reportsvc

import (
	"context"
	"errors"

	reportrepo "github.com/DBD-Movie-Rental/movie-rental-main/repository/report"
)

type ErrCode string

const ErrNotFound ErrCode = "NOT_FOUND"

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type (
	OverdueRow       = reportrepo.OverdueRow
	SummaryRow       = reportrepo.SummaryRow
	AddressRow       = reportrepo.AddressRow
	AddressRentalRow = reportrepo.AddressRentalRow
	MembershipRow    = reportrepo.MembershipRow
)

type Repo interface {
	OverdueRentals(ctx context.Context) ([]OverdueRow, error)
	CustomerSummaries(ctx context.Context, customerID *int64) ([]SummaryRow, error)
	CustomerAddresses(ctx context.Context) ([]AddressRow, error)
	CustomerAddressRentals(ctx context.Context, customerID *int64) ([]AddressRentalRow, error)
	CustomerMemberships(ctx context.Context) ([]MembershipRow, error)
}

type Service interface {
	// Overdue lists OPEN and LATE rentals past due; hours_overdue is
	// recomputed by the view on every call.
	Overdue(ctx context.Context) ([]OverdueRow, error)

	// Summaries joins rental aggregates against current customer fields,
	// so renamed customers show their current name.
	Summaries(ctx context.Context) ([]SummaryRow, error)
	SummaryForCustomer(ctx context.Context, customerID int64) (*SummaryRow, error)

	Addresses(ctx context.Context) ([]AddressRow, error)

	// AddressRentals denormalizes every rental against its customer's
	// current address; pass a customerID to scope to one customer.
	AddressRentals(ctx context.Context, customerID *int64) ([]AddressRentalRow, error)

	Memberships(ctx context.Context) ([]MembershipRow, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) Overdue(ctx context.Context) ([]OverdueRow, error) {
	return s.r.OverdueRentals(ctx)
}

func (s *service) Summaries(ctx context.Context) ([]SummaryRow, error) {
	return s.r.CustomerSummaries(ctx, nil)
}

func (s *service) SummaryForCustomer(ctx context.Context, customerID int64) (*SummaryRow, error) {
	rows, err := s.r.CustomerSummaries(ctx, &customerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, codedError{code: ErrNotFound}
	}
	return &rows[0], nil
}

func (s *service) Addresses(ctx context.Context) ([]AddressRow, error) {
	return s.r.CustomerAddresses(ctx)
}

func (s *service) AddressRentals(ctx context.Context, customerID *int64) ([]AddressRentalRow, error) {
	return s.r.CustomerAddressRentals(ctx, customerID)
}

func (s *service) Memberships(ctx context.Context) ([]MembershipRow, error) {
	return s.r.CustomerMemberships(ctx)
}
