package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/repo/memory"
)

func newTrip(userID uuid.UUID, title string, start time.Time) domain.Trip {
	return domain.Trip{
		UserID:             userID,
		Title:              title,
		DestinationCity:    "Tokyo",
		DestinationCountry: "Japan",
		StartDate:          start,
		EndDate:            start.AddDate(0, 0, 6),
		Timezone:           "Asia/Tokyo",
		Status:             domain.TripStatusPlanning,
	}
}

func newItem(tripID uuid.UUID, title string) domain.TripItem {
	return domain.TripItem{
		TripID:    tripID,
		Category:  "activity",
		Title:     title,
		StartTime: "2024-07-11T10:00",
	}
}

// ---- trips -----------------------------------------------------------------

func TestStore_TripLifecycle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	trips := memory.NewStore().Trips()

	created, err := trips.Create(ctx, newTrip(userID, "Tokyo", time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := trips.GetByID(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", got.Title)

	created.Title = "Tokyo Summer"
	updated, err := trips.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo Summer", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, trips.Delete(ctx, userID, created.ID))

	_, err = trips.GetByID(ctx, userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_TripScopedToOwner(t *testing.T) {
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()
	trips := memory.NewStore().Trips()

	created, err := trips.Create(ctx, newTrip(owner, "Private", time.Now()))
	require.NoError(t, err)

	// Another user's lookups, updates, and deletes all miss.
	_, err = trips.GetByID(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created.UserID = stranger
	_, err = trips.Update(ctx, created)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, trips.Delete(ctx, stranger, created.ID), domain.ErrNotFound)
}

func TestStore_ListByUser_OrderedByStartDateDesc(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	trips := memory.NewStore().Trips()

	_, err := trips.Create(ctx, newTrip(userID, "older", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = trips.Create(ctx, newTrip(userID, "newest", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = trips.Create(ctx, newTrip(uuid.New(), "someone else's", time.Now()))
	require.NoError(t, err)

	got, err := trips.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "older", got[1].Title)
}

// ---- items -----------------------------------------------------------------

func TestStore_ItemLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	userID := uuid.New()

	trip, err := store.Trips().Create(ctx, newTrip(userID, "Tokyo", time.Now()))
	require.NoError(t, err)

	items := store.Items()
	created, err := items.Create(ctx, newItem(trip.ID, "temple"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := items.GetByID(ctx, trip.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "temple", got.Title)

	created.Title = "Senso-ji"
	updated, err := items.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Senso-ji", updated.Title)

	require.NoError(t, items.Delete(ctx, trip.ID, created.ID))
	_, err = items.GetByID(ctx, trip.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ItemScopedToTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	items := store.Items()

	item, err := items.Create(ctx, newItem(uuid.New(), "temple"))
	require.NoError(t, err)

	otherTrip := uuid.New()
	_, err = items.GetByID(ctx, otherTrip, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, items.Delete(ctx, otherTrip, item.ID), domain.ErrNotFound)
}

func TestStore_ListByTripID_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	items := memory.NewStore().Items()
	tripID := uuid.New()

	for _, title := range []string{"first", "second", "third"} {
		_, err := items.Create(ctx, newItem(tripID, title))
		require.NoError(t, err)
	}

	got, err := items.ListByTripID(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "third", got[2].Title)
}

func TestStore_ListByTripIDPaged(t *testing.T) {
	ctx := context.Background()
	items := memory.NewStore().Items()
	tripID := uuid.New()

	for _, title := range []string{"a", "b", "c", "d", "e"} {
		_, err := items.Create(ctx, newItem(tripID, title))
		require.NoError(t, err)
	}

	page, total, err := items.ListByTripIDPaged(ctx, tripID, domain.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Title)
	assert.Equal(t, "d", page[1].Title)

	// Past the end: empty page, same total.
	page, total, err = items.ListByTripIDPaged(ctx, tripID, domain.PaginationParams{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, page)
}

func TestStore_DeleteTripCascadesToItems(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	userID := uuid.New()

	trip, err := store.Trips().Create(ctx, newTrip(userID, "Tokyo", time.Now()))
	require.NoError(t, err)
	item, err := store.Items().Create(ctx, newItem(trip.ID, "temple"))
	require.NoError(t, err)

	require.NoError(t, store.Trips().Delete(ctx, userID, trip.ID))

	_, err = store.Items().GetByID(ctx, trip.ID, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := store.Items().ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_ReturnedMetadataIsACopy(t *testing.T) {
	ctx := context.Background()
	items := memory.NewStore().Items()
	tripID := uuid.New()

	item := newItem(tripID, "flight")
	item.Metadata = map[string]any{"airline": "JAL"}
	created, err := items.Create(ctx, item)
	require.NoError(t, err)

	// Mutating the returned map must not leak into stored state.
	created.Metadata["airline"] = "tampered"

	got, err := items.GetByID(ctx, tripID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "JAL", got.Metadata["airline"])
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	userID := uuid.New()

	trip, err := store.Trips().Create(ctx, newTrip(userID, "Tokyo", time.Now()))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Items().Create(ctx, newItem(trip.ID, "item"))
			assert.NoError(t, err)
			_, err = store.Items().ListByTripID(ctx, trip.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Items().ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

// ---- seed ------------------------------------------------------------------

func TestSeed_LoadsDemoFixtures(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	userID := uuid.New()

	require.NoError(t, store.Seed(userID))

	trips, err := store.Trips().ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, trips, 2)

	// Most recent start date first: Tokyo (2024) before NYC (2023).
	assert.Equal(t, "Summer in Tokyo", trips[0].Title)
	assert.Equal(t, "Asia/Tokyo", trips[0].Timezone)
	assert.Equal(t, domain.TripStatusCompleted, trips[1].Status)

	// The Tokyo trip carries a usable demo itinerary.
	items, err := store.Items().ListByTripID(ctx, trips[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, items)

	var hasFlight bool
	for _, it := range items {
		if it.Category == "flight" {
			hasFlight = true
			assert.Equal(t, "JL408", it.Metadata["flightNumber"])
		}
	}
	assert.True(t, hasFlight, "seed should include a flight with metadata")
}
