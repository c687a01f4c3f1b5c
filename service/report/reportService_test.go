package reportsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	overdueFn        func(ctx context.Context) ([]OverdueRow, error)
	summariesFn      func(ctx context.Context, customerID *int64) ([]SummaryRow, error)
	addressesFn      func(ctx context.Context) ([]AddressRow, error)
	addressRentalsFn func(ctx context.Context, customerID *int64) ([]AddressRentalRow, error)
	membershipsFn    func(ctx context.Context) ([]MembershipRow, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) OverdueRentals(ctx context.Context) ([]OverdueRow, error) {
	return m.overdueFn(ctx)
}
func (m *mockRepo) CustomerSummaries(ctx context.Context, customerID *int64) ([]SummaryRow, error) {
	return m.summariesFn(ctx, customerID)
}
func (m *mockRepo) CustomerAddresses(ctx context.Context) ([]AddressRow, error) {
	return m.addressesFn(ctx)
}
func (m *mockRepo) CustomerAddressRentals(ctx context.Context, customerID *int64) ([]AddressRentalRow, error) {
	return m.addressRentalsFn(ctx, customerID)
}
func (m *mockRepo) CustomerMemberships(ctx context.Context) ([]MembershipRow, error) {
	return m.membershipsFn(ctx)
}

func TestSummaryForCustomer_NotFound(t *testing.T) {
	m := &mockRepo{
		summariesFn: func(ctx context.Context, customerID *int64) ([]SummaryRow, error) {
			require.NotNil(t, customerID)
			require.Equal(t, int64(99), *customerID)
			return nil, nil
		},
	}
	svc := New(m)

	_, err := svc.SummaryForCustomer(context.Background(), 99)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestAddressRentals_AllCustomers(t *testing.T) {
	m := &mockRepo{
		addressRentalsFn: func(ctx context.Context, customerID *int64) ([]AddressRentalRow, error) {
			require.Nil(t, customerID)
			return []AddressRentalRow{
				{CustomerID: 1, RentalID: 10, RentalStatus: "OPEN"},
				{CustomerID: 2, RentalID: 11, RentalStatus: "RETURNED"},
			}, nil
		},
	}
	svc := New(m)

	rows, err := svc.AddressRentals(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, int64(10), rows[0].RentalID)
}

func TestAddressRentals_ScopedToCustomer(t *testing.T) {
	m := &mockRepo{
		addressRentalsFn: func(ctx context.Context, customerID *int64) ([]AddressRentalRow, error) {
			require.NotNil(t, customerID)
			require.Equal(t, int64(7), *customerID)
			return []AddressRentalRow{{CustomerID: 7, RentalID: 42, RentalStatus: "LATE"}}, nil
		},
	}
	svc := New(m)

	id := int64(7)
	rows, err := svc.AddressRentals(context.Background(), &id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(7), rows[0].CustomerID)
}
