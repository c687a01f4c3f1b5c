package customersvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

type mockRepo struct {
	createFn           func(ctx context.Context, c *model.Customer) (int64, error)
	getFn              func(ctx context.Context, id int64) (*model.Customer, error)
	getForUpdateFn     func(ctx context.Context, tx *sql.Tx, id int64) (*model.Customer, error)
	updateAddressFn    func(ctx context.Context, id int64, a model.Address) (bool, error)
	setMembershipFn    func(ctx context.Context, id int64, plan model.MembershipPlan) (*model.MembershipPlan, error)
	setRecentRentalsFn func(ctx context.Context, tx *sql.Tx, id int64, cache []model.RentalSummary) error
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, c *model.Customer) (int64, error) {
	return m.createFn(ctx, c)
}
func (m *mockRepo) Get(ctx context.Context, id int64) (*model.Customer, error) {
	if m.getFn == nil {
		return nil, nil
	}
	return m.getFn(ctx, id)
}
func (m *mockRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Customer, error) {
	return m.getForUpdateFn(ctx, tx, id)
}
func (m *mockRepo) UpdateAddress(ctx context.Context, id int64, a model.Address) (bool, error) {
	return m.updateAddressFn(ctx, id, a)
}
func (m *mockRepo) SetMembership(ctx context.Context, id int64, plan model.MembershipPlan) (*model.MembershipPlan, error) {
	return m.setMembershipFn(ctx, id, plan)
}
func (m *mockRepo) SetRecentRentals(ctx context.Context, tx *sql.Tx, id int64, cache []model.RentalSummary) error {
	return m.setRecentRentalsFn(ctx, tx, id, cache)
}

type mockLookupRepo struct {
	byLevelFn func(ctx context.Context, level model.MembershipLevel) (*model.MembershipType, error)
}

var _ LookupRepo = (*mockLookupRepo)(nil)

func (m *mockLookupRepo) MembershipTypeByLevel(ctx context.Context, level model.MembershipLevel) (*model.MembershipType, error) {
	return m.byLevelFn(ctx, level)
}

// --- tests ---

func TestCreate_Validation(t *testing.T) {
	svc := New(nil, &mockRepo{}, nil, &mockLookupRepo{})

	_, err := svc.Create(context.Background(), CreateReq{
		FirstName: "Ava",
		Email:     "ava@example.com",
	})
	require.Error(t, err)
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestCreate_Success(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, c *model.Customer) (int64, error) {
			require.Equal(t, "ava@example.com", c.Email)
			require.Equal(t, int64(1), c.Address.AddressID)
			require.NotNil(t, c.RecentRentals)
			require.Len(t, c.RecentRentals, 0)
			return 11, nil
		},
	}
	svc := New(nil, m, nil, &mockLookupRepo{})

	c, err := svc.Create(context.Background(), CreateReq{
		FirstName: "Ava",
		LastName:  "Jensen",
		Email:     "AVA@Example.com",
		Address:   "Nørrebrogade 12",
		City:      "Copenhagen",
		PostCode:  "2200",
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), c.CustomerID)
}

func TestUpdateAddress_NotFound(t *testing.T) {
	m := &mockRepo{
		updateAddressFn: func(ctx context.Context, id int64, a model.Address) (bool, error) {
			return false, nil
		},
	}
	svc := New(nil, m, nil, &mockLookupRepo{})

	err := svc.UpdateAddress(context.Background(), 99, AddressReq{
		Address:  "Somewhere 1",
		City:     "Aarhus",
		PostCode: "8000",
	})
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestSubscribe_SnapshotsCurrentTerms(t *testing.T) {
	cost := decimal.NewFromInt(149)
	kr := &mockLookupRepo{
		byLevelFn: func(ctx context.Context, level model.MembershipLevel) (*model.MembershipType, error) {
			require.Equal(t, model.MembershipGold, level)
			return &model.MembershipType{MembershipID: 2, Type: level, MonthlyCostDkk: cost}, nil
		},
	}
	var saved model.MembershipPlan
	m := &mockRepo{
		setMembershipFn: func(ctx context.Context, id int64, plan model.MembershipPlan) (*model.MembershipPlan, error) {
			saved = plan
			stored := plan
			stored.MembershipPlanID = 4
			return &stored, nil
		},
	}
	svc := New(nil, m, nil, kr)

	plan, err := svc.Subscribe(context.Background(), 1, model.MembershipGold)
	require.NoError(t, err)
	require.Equal(t, int64(4), plan.MembershipPlanID)
	require.Equal(t, model.MembershipGold, plan.MembershipType)
	require.True(t, plan.MonthlyCostDkk.Equal(cost))
	require.Equal(t, int64(2), plan.MembershipID)
	// The id is allocated by the store on the customer row, never
	// precomputed from a stale read.
	require.Equal(t, int64(0), saved.MembershipPlanID)
}

func TestSubscribe_UnknownCustomer(t *testing.T) {
	kr := &mockLookupRepo{
		byLevelFn: func(ctx context.Context, level model.MembershipLevel) (*model.MembershipType, error) {
			return &model.MembershipType{MembershipID: 1, Type: level}, nil
		},
	}
	m := &mockRepo{
		setMembershipFn: func(ctx context.Context, id int64, plan model.MembershipPlan) (*model.MembershipPlan, error) {
			return nil, nil
		},
	}
	svc := New(nil, m, nil, kr)

	_, err := svc.Subscribe(context.Background(), 99, model.MembershipBronze)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestSubscribe_UnknownLevel(t *testing.T) {
	kr := &mockLookupRepo{
		byLevelFn: func(ctx context.Context, level model.MembershipLevel) (*model.MembershipType, error) {
			return nil, nil
		},
	}
	svc := New(nil, &mockRepo{}, nil, kr)

	_, err := svc.Subscribe(context.Background(), 1, model.MembershipLevel("PLATINUM"))
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}
