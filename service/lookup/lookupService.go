package lookupsvc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
	"github.com/DBD-Movie-Rental/movie-rental-main/util/database"
)

type ErrCode string

const (
	ErrDuplicate       ErrCode = "DUPLICATE_CODE"
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

type PromoReq struct {
	Code         string
	Description  *string
	PercentOff   *decimal.Decimal
	AmountOffDkk *decimal.Decimal
	StartsAt     time.Time
	EndsAt       *time.Time
}

type Repo interface {
	ListMembershipTypes(ctx context.Context) ([]model.MembershipType, error)
	CreateMembershipType(ctx context.Context, level model.MembershipLevel, monthlyCost decimal.Decimal) (int64, error)
	ListFeeTypes(ctx context.Context) ([]model.FeeType, error)
	CreateFeeType(ctx context.Context, kind model.FeeKind, defaultAmount *decimal.Decimal) (int64, error)
	ListGenres(ctx context.Context) ([]model.Genre, error)
	CreateGenre(ctx context.Context, name string) (int64, error)
	ListFormats(ctx context.Context) ([]model.Format, error)
	CreateFormat(ctx context.Context, formatType string) (int64, error)
	ListPromoCodes(ctx context.Context) ([]model.PromoCode, error)
	CreatePromoCode(ctx context.Context, p *model.PromoCode) (int64, error)
}

type Service interface {
	MembershipTypes(ctx context.Context) ([]model.MembershipType, error)
	CreateMembershipType(ctx context.Context, level model.MembershipLevel, monthlyCost decimal.Decimal) (int64, error)
	FeeTypes(ctx context.Context) ([]model.FeeType, error)
	CreateFeeType(ctx context.Context, kind model.FeeKind, defaultAmount *decimal.Decimal) (int64, error)
	Genres(ctx context.Context) ([]model.Genre, error)
	CreateGenre(ctx context.Context, name string) (int64, error)
	Formats(ctx context.Context) ([]model.Format, error)
	CreateFormat(ctx context.Context, formatType string) (int64, error)
	PromoCodes(ctx context.Context) ([]model.PromoCode, error)
	CreatePromoCode(ctx context.Context, req PromoReq) (int64, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) MembershipTypes(ctx context.Context) ([]model.MembershipType, error) {
	return s.r.ListMembershipTypes(ctx)
}

func (s *service) CreateMembershipType(ctx context.Context, level model.MembershipLevel, monthlyCost decimal.Decimal) (int64, error) {
	if monthlyCost.IsNegative() {
		return 0, makeErr(ErrSchemaViolation)
	}
	id, err := s.r.CreateMembershipType(ctx, level, monthlyCost)
	return id, mapCreateErr(err)
}

func (s *service) FeeTypes(ctx context.Context) ([]model.FeeType, error) {
	return s.r.ListFeeTypes(ctx)
}

func (s *service) CreateFeeType(ctx context.Context, kind model.FeeKind, defaultAmount *decimal.Decimal) (int64, error) {
	if defaultAmount != nil && defaultAmount.IsNegative() {
		return 0, makeErr(ErrSchemaViolation)
	}
	id, err := s.r.CreateFeeType(ctx, kind, defaultAmount)
	return id, mapCreateErr(err)
}

func (s *service) Genres(ctx context.Context) ([]model.Genre, error) { return s.r.ListGenres(ctx) }

func (s *service) CreateGenre(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, makeErr(ErrSchemaViolation)
	}
	id, err := s.r.CreateGenre(ctx, name)
	return id, mapCreateErr(err)
}

func (s *service) Formats(ctx context.Context) ([]model.Format, error) { return s.r.ListFormats(ctx) }

func (s *service) CreateFormat(ctx context.Context, formatType string) (int64, error) {
	id, err := s.r.CreateFormat(ctx, formatType)
	return id, mapCreateErr(err)
}

func (s *service) PromoCodes(ctx context.Context) ([]model.PromoCode, error) {
	return s.r.ListPromoCodes(ctx)
}

func (s *service) CreatePromoCode(ctx context.Context, req PromoReq) (int64, error) {
	if req.Code == "" {
		return 0, makeErr(ErrSchemaViolation)
	}
	if req.PercentOff != nil {
		hundred := decimal.NewFromInt(100)
		if req.PercentOff.IsNegative() || req.PercentOff.GreaterThan(hundred) {
			return 0, makeErr(ErrSchemaViolation)
		}
	}
	id, err := s.r.CreatePromoCode(ctx, &model.PromoCode{
		Code:         req.Code,
		Description:  req.Description,
		PercentOff:   req.PercentOff,
		AmountOffDkk: req.AmountOffDkk,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
	})
	return id, mapCreateErr(err)
}

func mapCreateErr(err error) error {
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		return makeErr(ErrDuplicate)
	}
	if database.IsCheckViolation(err) {
		return makeErr(ErrSchemaViolation)
	}
	return err
}
