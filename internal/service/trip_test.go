package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/repo"
	"github.com/nvalette/tripdeck/backend/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	update     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete     func(ctx context.Context, userID, tripID uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, tripID)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		UserID:             uuid.New(),
		Title:              "Cherry Blossom Week",
		DestinationCity:    "Tokyo",
		DestinationCountry: "Japan",
		StartDate:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
		Timezone:           "Asia/Tokyo",
		Status:             domain.TripStatusPlanning,
	}
}

func echoTripRepo() *mockTripRepo {
	// A repo that echoes whatever it receives back — useful for Create/Update
	// tests that only care about validation logic, not what the DB returns.
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, "Cherry Blossom Week", got.Title)
}

func TestTripService_Create_DefaultsStatusToPlanning(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Status = ""

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusPlanning, got.Status)
}

func TestTripService_Create_MissingTitle(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Title = "   " // whitespace-only should be treated as empty

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_EndDateBeforeStartDate(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.EndDate = trip.StartDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_SameDayTrip(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.EndDate = trip.StartDate // a one-day trip is valid

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_UnknownStatus(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Status = "daydreaming"

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_UnknownTimezone(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Timezone = "Mars/Olympus_Mons"

	_, err := svc.Create(context.Background(), trip)

	// Writes reject bad zones outright; only legacy rows fall back to UTC
	// at aggregation time.
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_EmptyTimezoneAllowed(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Timezone = ""

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.Create(context.Background(), validTrip())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID tests ---------------------------------------------------------

func TestTripService_GetByID_Found(t *testing.T) {
	want := validTrip()
	want.ID = uuid.New()

	r := &mockTripRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) {
			return want, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.GetByID(context.Background(), want.UserID, want.ID)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.GetByID(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List tests ------------------------------------------------------------

func TestTripService_List_NilBecomesEmptySlice(t *testing.T) {
	r := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) {
			return nil, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.List(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_List_ScopedToUser(t *testing.T) {
	userID := uuid.New()
	var askedFor uuid.UUID
	r := &mockTripRepo{
		listByUser: func(_ context.Context, id uuid.UUID) ([]domain.Trip, error) {
			askedFor = id
			return []domain.Trip{validTrip()}, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.List(context.Background(), userID)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, userID, askedFor)
}

// ---- Update tests ----------------------------------------------------------

func TestTripService_Update_Valid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.ID = uuid.New()
	trip.Title = "Renamed"

	got, err := svc.Update(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestTripService_Update_Invalid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Title = ""

	_, err := svc.Update(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete(t *testing.T) {
	var gotUser, gotTrip uuid.UUID
	r := &mockTripRepo{
		delete: func(_ context.Context, userID, tripID uuid.UUID) error {
			gotUser, gotTrip = userID, tripID
			return nil
		},
	}
	svc := service.NewTripService(r)

	userID, tripID := uuid.New(), uuid.New()
	err := svc.Delete(context.Background(), userID, tripID)

	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, tripID, gotTrip)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
