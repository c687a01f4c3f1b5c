package lookupsvc

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

type mockRepo struct {
	createMembershipFn func(ctx context.Context, level model.MembershipLevel, monthlyCost decimal.Decimal) (int64, error)
	createFeeFn        func(ctx context.Context, kind model.FeeKind, defaultAmount *decimal.Decimal) (int64, error)
	createGenreFn      func(ctx context.Context, name string) (int64, error)
	createFormatFn     func(ctx context.Context, formatType string) (int64, error)
	createPromoFn      func(ctx context.Context, p *model.PromoCode) (int64, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) ListMembershipTypes(ctx context.Context) ([]model.MembershipType, error) {
	return nil, nil
}
func (m *mockRepo) CreateMembershipType(ctx context.Context, level model.MembershipLevel, monthlyCost decimal.Decimal) (int64, error) {
	return m.createMembershipFn(ctx, level, monthlyCost)
}
func (m *mockRepo) ListFeeTypes(ctx context.Context) ([]model.FeeType, error) { return nil, nil }
func (m *mockRepo) CreateFeeType(ctx context.Context, kind model.FeeKind, defaultAmount *decimal.Decimal) (int64, error) {
	return m.createFeeFn(ctx, kind, defaultAmount)
}
func (m *mockRepo) ListGenres(ctx context.Context) ([]model.Genre, error) { return nil, nil }
func (m *mockRepo) CreateGenre(ctx context.Context, name string) (int64, error) {
	return m.createGenreFn(ctx, name)
}
func (m *mockRepo) ListFormats(ctx context.Context) ([]model.Format, error) { return nil, nil }
func (m *mockRepo) CreateFormat(ctx context.Context, formatType string) (int64, error) {
	return m.createFormatFn(ctx, formatType)
}
func (m *mockRepo) ListPromoCodes(ctx context.Context) ([]model.PromoCode, error) { return nil, nil }
func (m *mockRepo) CreatePromoCode(ctx context.Context, p *model.PromoCode) (int64, error) {
	return m.createPromoFn(ctx, p)
}

// --- tests ---

func TestCreateMembershipType_RejectsNegativeCost(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.CreateMembershipType(context.Background(), model.MembershipGold, decimal.NewFromInt(-1))
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestCreateFeeType_RejectsNegativeDefault(t *testing.T) {
	svc := New(&mockRepo{})

	bad := decimal.NewFromInt(-50)
	_, err := svc.CreateFeeType(context.Background(), model.FeeLate, &bad)
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestCreateGenre_RequiresName(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.CreateGenre(context.Background(), "")
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestCreatePromoCode_PercentBounds(t *testing.T) {
	svc := New(&mockRepo{})

	over := decimal.NewFromInt(101)
	_, err := svc.CreatePromoCode(context.Background(), PromoReq{
		Code:       "TOOHIGH",
		PercentOff: &over,
		StartsAt:   time.Now(),
	})
	require.Equal(t, ErrSchemaViolation, Code(err))

	neg := decimal.NewFromInt(-5)
	_, err = svc.CreatePromoCode(context.Background(), PromoReq{
		Code:       "NEGATIVE",
		PercentOff: &neg,
		StartsAt:   time.Now(),
	})
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestCreatePromoCode_Success(t *testing.T) {
	m := &mockRepo{
		createPromoFn: func(ctx context.Context, p *model.PromoCode) (int64, error) {
			require.Equal(t, "SUMMER25", p.Code)
			return 9, nil
		},
	}
	svc := New(m)

	pct := decimal.NewFromInt(25)
	id, err := svc.CreatePromoCode(context.Background(), PromoReq{
		Code:       "SUMMER25",
		PercentOff: &pct,
		StartsAt:   time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(9), id)
}
