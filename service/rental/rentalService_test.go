package rentalsvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

type mockRepo struct {
	insertFn        func(ctx context.Context, tx *sql.Tx, r *model.Rental) (int64, error)
	getFn           func(ctx context.Context, id int64) (*model.Rental, error)
	getForUpdateFn  func(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error)
	saveFn          func(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	markLateBatchFn func(ctx context.Context, tx *sql.Tx, now time.Time) ([]LateRow, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) (int64, error) {
	return m.insertFn(ctx, tx, r)
}
func (m *mockRepo) Get(ctx context.Context, id int64) (*model.Rental, error) {
	if m.getFn == nil {
		return nil, nil
	}
	return m.getFn(ctx, id)
}
func (m *mockRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error) {
	return m.getForUpdateFn(ctx, tx, id)
}
func (m *mockRepo) Save(ctx context.Context, tx *sql.Tx, r *model.Rental) error {
	return m.saveFn(ctx, tx, r)
}
func (m *mockRepo) MarkLateBatch(ctx context.Context, tx *sql.Tx, now time.Time) ([]LateRow, error) {
	return m.markLateBatchFn(ctx, tx, now)
}

type mockLocationRepo struct {
	getForUpdateFn func(ctx context.Context, tx *sql.Tx, id int64) (*model.Location, error)
	casFn          func(ctx context.Context, tx *sql.Tx, locationID, itemID int64, from, to model.ItemStatus) (bool, error)
}

var _ LocationRepo = (*mockLocationRepo)(nil)

func (m *mockLocationRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Location, error) {
	return m.getForUpdateFn(ctx, tx, id)
}
func (m *mockLocationRepo) CASItemStatus(ctx context.Context, tx *sql.Tx, locationID, itemID int64, from, to model.ItemStatus) (bool, error) {
	return m.casFn(ctx, tx, locationID, itemID, from, to)
}

type mockCustomerRepo struct {
	getFn         func(ctx context.Context, id int64) (*model.Customer, error)
	pushSummaryFn func(ctx context.Context, tx *sql.Tx, customerID int64, s model.RentalSummary) error
}

var _ CustomerRepo = (*mockCustomerRepo)(nil)

func (m *mockCustomerRepo) Get(ctx context.Context, id int64) (*model.Customer, error) {
	if m.getFn == nil {
		return nil, nil
	}
	return m.getFn(ctx, id)
}
func (m *mockCustomerRepo) PushSummary(ctx context.Context, tx *sql.Tx, customerID int64, s model.RentalSummary) error {
	if m.pushSummaryFn == nil {
		return nil
	}
	return m.pushSummaryFn(ctx, tx, customerID, s)
}

type mockLookupRepo struct {
	promoByCodeFn   func(ctx context.Context, code string) (*model.PromoCode, error)
	feeTypeByKindFn func(ctx context.Context, kind model.FeeKind) (*model.FeeType, error)
}

var _ LookupRepo = (*mockLookupRepo)(nil)

func (m *mockLookupRepo) PromoByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	if m.promoByCodeFn == nil {
		return nil, nil
	}
	return m.promoByCodeFn(ctx, code)
}
func (m *mockLookupRepo) FeeTypeByKind(ctx context.Context, kind model.FeeKind) (*model.FeeType, error) {
	if m.feeTypeByKindFn == nil {
		return nil, nil
	}
	return m.feeTypeByKindFn(ctx, kind)
}

// --- tests ---

func TestReserve_RequiresItems(t *testing.T) {
	svc := New(nil, &mockRepo{}, &mockLocationRepo{}, &mockCustomerRepo{}, &mockLookupRepo{}, 7)

	_, err := svc.Reserve(context.Background(), ReserveReq{CustomerID: 1, LocationID: 1})
	require.Error(t, err)
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestReserve_UnknownCustomer(t *testing.T) {
	cr := &mockCustomerRepo{
		getFn: func(ctx context.Context, id int64) (*model.Customer, error) { return nil, nil },
	}
	svc := New(nil, &mockRepo{}, &mockLocationRepo{}, cr, &mockLookupRepo{}, 7)

	_, err := svc.Reserve(context.Background(), ReserveReq{
		CustomerID:       99,
		LocationID:       1,
		InventoryItemIDs: []int64{1},
	})
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestReserve_UnknownPromo(t *testing.T) {
	cr := &mockCustomerRepo{
		getFn: func(ctx context.Context, id int64) (*model.Customer, error) {
			return &model.Customer{CustomerID: id}, nil
		},
	}
	kr := &mockLookupRepo{
		promoByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) { return nil, nil },
	}
	svc := New(nil, &mockRepo{}, &mockLocationRepo{}, cr, kr, 7)

	code := "NOPE"
	_, err := svc.Reserve(context.Background(), ReserveReq{
		CustomerID:       1,
		LocationID:       1,
		InventoryItemIDs: []int64{1},
		PromoCode:        &code,
	})
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestReserve_ExpiredPromo(t *testing.T) {
	cr := &mockCustomerRepo{
		getFn: func(ctx context.Context, id int64) (*model.Customer, error) {
			return &model.Customer{CustomerID: id}, nil
		},
	}
	past := time.Now().UTC().Add(-time.Hour)
	kr := &mockLookupRepo{
		promoByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return &model.PromoCode{
				PromoCodeID: 3,
				Code:        code,
				StartsAt:    past.Add(-24 * time.Hour),
				EndsAt:      &past,
			}, nil
		},
	}
	svc := New(nil, &mockRepo{}, &mockLocationRepo{}, cr, kr, 7)

	code := "EXPIRED"
	_, err := svc.Reserve(context.Background(), ReserveReq{
		CustomerID:       1,
		LocationID:       1,
		InventoryItemIDs: []int64{1},
		PromoCode:        &code,
	})
	require.Error(t, err)
	require.Equal(t, ErrStateConflict, Code(err))
}

func TestReserve_RejectsDuplicateItems(t *testing.T) {
	svc := New(nil, &mockRepo{}, &mockLocationRepo{}, &mockCustomerRepo{}, &mockLookupRepo{}, 7)

	_, err := svc.Reserve(context.Background(), ReserveReq{
		CustomerID:       1,
		LocationID:       1,
		InventoryItemIDs: []int64{5, 5},
	})
	require.Error(t, err)
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestReleaseItems_FreesAndFlags(t *testing.T) {
	swaps := map[int64]model.ItemStatus{}
	lr := &mockLocationRepo{
		casFn: func(ctx context.Context, tx *sql.Tx, locationID, itemID int64, from, to model.ItemStatus) (bool, error) {
			require.Equal(t, model.ItemRented, from)
			swaps[itemID] = to
			return true, nil
		},
	}
	s := New(nil, &mockRepo{}, lr, &mockCustomerRepo{}, &mockLookupRepo{}, 7).(*service)

	rental := &model.Rental{
		RentalID:   3,
		LocationID: 1,
		Status:     model.RentalOpen,
		Items: []model.RentalItem{
			{RentalItemID: 1, InventoryItemID: 10},
			{RentalItemID: 2, InventoryItemID: 11},
		},
	}
	require.NoError(t, s.releaseItems(context.Background(), nil, rental, map[int64]bool{11: true}))
	require.Equal(t, model.ItemAvailable, swaps[10])
	require.Equal(t, model.ItemDamaged, swaps[11])
}

func TestReleaseItems_ToleratesOperatorFlaggedCopy(t *testing.T) {
	// An operator damaged item 11 while it was out, so it is no longer
	// RENTED and its swap misses. The return must still go through.
	lr := &mockLocationRepo{
		casFn: func(ctx context.Context, tx *sql.Tx, locationID, itemID int64, from, to model.ItemStatus) (bool, error) {
			return itemID != 11, nil
		},
	}
	s := New(nil, &mockRepo{}, lr, &mockCustomerRepo{}, &mockLookupRepo{}, 7).(*service)

	rental := &model.Rental{
		RentalID:   3,
		LocationID: 1,
		Status:     model.RentalOpen,
		Items: []model.RentalItem{
			{RentalItemID: 1, InventoryItemID: 10},
			{RentalItemID: 2, InventoryItemID: 11},
		},
	}
	require.NoError(t, s.releaseItems(context.Background(), nil, rental, nil))
}

func TestRecordPayment_RejectsNonPositive(t *testing.T) {
	svc := New(nil, &mockRepo{}, &mockLocationRepo{}, &mockCustomerRepo{}, &mockLookupRepo{}, 7)

	_, err := svc.RecordPayment(context.Background(), 1, decimal.Zero)
	require.Error(t, err)
	require.Equal(t, ErrSchemaViolation, Code(err))

	_, err = svc.RecordPayment(context.Background(), 1, decimal.NewFromInt(-50))
	require.Error(t, err)
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestAppendFee_DefaultAmountAndSnapshot(t *testing.T) {
	dflt := decimal.NewFromInt(50)
	kr := &mockLookupRepo{
		feeTypeByKindFn: func(ctx context.Context, kind model.FeeKind) (*model.FeeType, error) {
			require.Equal(t, model.FeeLate, kind)
			return &model.FeeType{FeeID: 1, FeeType: model.FeeLate, DefaultAmountDkk: &dflt}, nil
		},
	}
	s := New(nil, &mockRepo{}, &mockLocationRepo{}, &mockCustomerRepo{}, kr, 7).(*service)

	rental := &model.Rental{RentalID: 3, Status: model.RentalReturned}
	require.NoError(t, s.appendFee(context.Background(), rental, model.FeeLate, nil))

	require.Len(t, rental.Fees, 1)
	fee := rental.Fees[0]
	require.Equal(t, int64(1), fee.RentalFeeID)
	require.True(t, fee.AmountDkk.Equal(dflt))
	require.NotNil(t, fee.Snapshot)
	require.Equal(t, model.FeeLate, fee.Snapshot.FeeType)
	require.True(t, fee.Snapshot.DefaultAmountDkk.Equal(dflt))
}

func TestAppendFee_ExplicitAmountOverridesDefault(t *testing.T) {
	dflt := decimal.NewFromInt(50)
	kr := &mockLookupRepo{
		feeTypeByKindFn: func(ctx context.Context, kind model.FeeKind) (*model.FeeType, error) {
			return &model.FeeType{FeeID: 2, FeeType: model.FeeDamaged, DefaultAmountDkk: &dflt}, nil
		},
	}
	s := New(nil, &mockRepo{}, &mockLocationRepo{}, &mockCustomerRepo{}, kr, 7).(*service)

	rental := &model.Rental{RentalID: 3, Fees: []model.Fee{{RentalFeeID: 1}}}
	amount := decimal.NewFromInt(120)
	require.NoError(t, s.appendFee(context.Background(), rental, model.FeeDamaged, &amount))

	require.Len(t, rental.Fees, 2)
	require.Equal(t, int64(2), rental.Fees[1].RentalFeeID)
	require.True(t, rental.Fees[1].AmountDkk.Equal(amount))
}

func TestAppendFee_NoDefaultNoAmount(t *testing.T) {
	kr := &mockLookupRepo{
		feeTypeByKindFn: func(ctx context.Context, kind model.FeeKind) (*model.FeeType, error) {
			return &model.FeeType{FeeID: 3, FeeType: model.FeeOther}, nil
		},
	}
	s := New(nil, &mockRepo{}, &mockLocationRepo{}, &mockCustomerRepo{}, kr, 7).(*service)

	rental := &model.Rental{RentalID: 3}
	err := s.appendFee(context.Background(), rental, model.FeeOther, nil)
	require.Error(t, err)
	require.Equal(t, ErrSchemaViolation, Code(err))
	require.Empty(t, rental.Fees)
}

func TestGet(t *testing.T) {
	r := &mockRepo{
		getFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			if id == 7 {
				return &model.Rental{RentalID: 7, Status: model.RentalOpen}, nil
			}
			return nil, nil
		},
	}
	svc := New(nil, r, &mockLocationRepo{}, &mockCustomerRepo{}, &mockLookupRepo{}, 7)

	got, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), got.RentalID)

	_, err = svc.Get(context.Background(), 8)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}
