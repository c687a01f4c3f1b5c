package facilitysvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

type mockRepo struct {
	createFn       func(ctx context.Context, l *model.Location) (int64, error)
	getFn          func(ctx context.Context, id int64) (*model.Location, error)
	listFn         func(ctx context.Context) ([]model.Location, error)
	availabilityFn func(ctx context.Context, movieID int64, formatID, locationID *int64) ([]AvailableItem, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, l *model.Location) (int64, error) {
	return m.createFn(ctx, l)
}
func (m *mockRepo) Get(ctx context.Context, id int64) (*model.Location, error) {
	return m.getFn(ctx, id)
}
func (m *mockRepo) List(ctx context.Context) ([]model.Location, error) { return m.listFn(ctx) }
func (m *mockRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Location, error) {
	return nil, nil
}
func (m *mockRepo) SaveEmployees(ctx context.Context, tx *sql.Tx, locationID int64, employees []model.Employee) error {
	return nil
}
func (m *mockRepo) SaveInventory(ctx context.Context, tx *sql.Tx, locationID int64, inventory []model.InventoryItem) error {
	return nil
}
func (m *mockRepo) Availability(ctx context.Context, movieID int64, formatID, locationID *int64) ([]AvailableItem, error) {
	return m.availabilityFn(ctx, movieID, formatID, locationID)
}

type mockMovieRepo struct {
	getFn func(ctx context.Context, id int64) (*model.Movie, error)
}

var _ MovieRepo = (*mockMovieRepo)(nil)

func (m *mockMovieRepo) Get(ctx context.Context, id int64) (*model.Movie, error) {
	return m.getFn(ctx, id)
}

type mockFormatRepo struct {
	byIDFn func(ctx context.Context, id int64) (*model.Format, error)
}

var _ FormatRepo = (*mockFormatRepo)(nil)

func (m *mockFormatRepo) FormatByID(ctx context.Context, id int64) (*model.Format, error) {
	return m.byIDFn(ctx, id)
}

// --- tests ---

func TestCreateLocation_Validation(t *testing.T) {
	svc := New(nil, &mockRepo{}, &mockMovieRepo{}, &mockFormatRepo{})

	_, err := svc.CreateLocation(context.Background(), "", "Copenhagen")
	require.Equal(t, ErrSchemaViolation, Code(err))

	_, err = svc.CreateLocation(context.Background(), "Vesterbrogade 3", "")
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestCreateLocation_Success(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, l *model.Location) (int64, error) {
			require.Equal(t, "Vesterbrogade 3", l.Address)
			require.Equal(t, "Copenhagen", l.City)
			return 5, nil
		},
	}
	svc := New(nil, m, &mockMovieRepo{}, &mockFormatRepo{})

	id, err := svc.CreateLocation(context.Background(), "Vesterbrogade 3", "Copenhagen")
	require.NoError(t, err)
	require.Equal(t, int64(5), id)
}

func TestGet_NotFound(t *testing.T) {
	m := &mockRepo{
		getFn: func(ctx context.Context, id int64) (*model.Location, error) { return nil, nil },
	}
	svc := New(nil, m, &mockMovieRepo{}, &mockFormatRepo{})

	_, err := svc.Get(context.Background(), 404)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestAddEmployee_Validation(t *testing.T) {
	svc := New(nil, &mockRepo{}, &mockMovieRepo{}, &mockFormatRepo{})

	_, err := svc.AddEmployee(context.Background(), 1, EmployeeReq{FirstName: "Ava"})
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestAddInventory_UnknownMovie(t *testing.T) {
	mr := &mockMovieRepo{
		getFn: func(ctx context.Context, id int64) (*model.Movie, error) { return nil, nil },
	}
	svc := New(nil, &mockRepo{}, mr, &mockFormatRepo{})

	_, err := svc.AddInventory(context.Background(), 1, 99, 1, 3)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestAddInventory_UnknownFormat(t *testing.T) {
	mr := &mockMovieRepo{
		getFn: func(ctx context.Context, id int64) (*model.Movie, error) {
			return &model.Movie{MovieID: id, Title: "Heat"}, nil
		},
	}
	fr := &mockFormatRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Format, error) { return nil, nil },
	}
	svc := New(nil, &mockRepo{}, mr, fr)

	_, err := svc.AddInventory(context.Background(), 1, 1, 99, 3)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestAddInventory_RejectsZeroCount(t *testing.T) {
	svc := New(nil, &mockRepo{}, &mockMovieRepo{}, &mockFormatRepo{})

	_, err := svc.AddInventory(context.Background(), 1, 1, 1, 0)
	require.Equal(t, ErrSchemaViolation, Code(err))
}

func TestAvailability_Passthrough(t *testing.T) {
	m := &mockRepo{
		availabilityFn: func(ctx context.Context, movieID int64, formatID, locationID *int64) ([]AvailableItem, error) {
			require.Equal(t, int64(7), movieID)
			require.Nil(t, formatID)
			return []AvailableItem{{MovieID: 7}}, nil
		},
	}
	svc := New(nil, m, &mockMovieRepo{}, &mockFormatRepo{})

	rows, err := svc.Availability(context.Background(), 7, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
