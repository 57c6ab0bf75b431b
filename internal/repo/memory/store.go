// Package memory is the fixture-backed in-memory retrieval gateway.
// It implements the same repo interfaces as the Postgres gateway and is
// selected by main when no DATABASE_URL is configured, so the app runs as a
// self-contained demo. Tests also use it as a lightweight real store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/repo"
)

// Store holds trips and items in process memory.
// All methods are safe for concurrent use; returned items carry copied
// metadata maps, so callers can never mutate stored state.
//
// Access it through Trips() and Items(), which present the two repo
// interfaces over the same shared data.
type Store struct {
	mu    sync.RWMutex
	trips map[uuid.UUID]domain.Trip
	items map[uuid.UUID]domain.TripItem

	// itemOrder preserves insertion order per trip, matching the
	// created_at ordering of the Postgres gateway.
	itemOrder []uuid.UUID
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		trips: make(map[uuid.UUID]domain.Trip),
		items: make(map[uuid.UUID]domain.TripItem),
	}
}

// Trips returns the repo.TripRepo view of the store.
func (s *Store) Trips() repo.TripRepo { return &tripStore{s: s} }

// Items returns the repo.ItemRepo view of the store.
func (s *Store) Items() repo.ItemRepo { return &itemStore{s: s} }

// ---- TripRepo --------------------------------------------------------------

type tripStore struct {
	s *Store
}

var _ repo.TripRepo = (*tripStore)(nil)

// Create inserts a trip, generating id and timestamps.
func (r *tripStore) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	trip.ID = uuid.New()
	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now
	r.s.trips[trip.ID] = trip
	return trip, nil
}

// GetByID retrieves a trip owned by userID.
func (r *tripStore) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	trip, ok := r.s.trips[tripID]
	if !ok || trip.UserID != userID {
		return domain.Trip{}, domain.ErrNotFound
	}
	return trip, nil
}

// ListByUser returns the user's trips ordered by start date descending.
func (r *tripStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var trips []domain.Trip
	for _, t := range r.s.trips {
		if t.UserID == userID {
			trips = append(trips, t)
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].StartDate.Equal(trips[j].StartDate) {
			return trips[i].StartDate.After(trips[j].StartDate)
		}
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	return trips, nil
}

// Update overwrites the mutable fields of an existing trip.
func (r *tripStore) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.trips[trip.ID]
	if !ok || stored.UserID != trip.UserID {
		return domain.Trip{}, domain.ErrNotFound
	}
	trip.CreatedAt = stored.CreatedAt
	trip.UpdatedAt = time.Now().UTC()
	r.s.trips[trip.ID] = trip
	return trip, nil
}

// Delete removes a trip and all its items.
func (r *tripStore) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	trip, ok := r.s.trips[tripID]
	if !ok || trip.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.trips, tripID)
	for id, it := range r.s.items {
		if it.TripID == tripID {
			delete(r.s.items, id)
		}
	}
	r.s.itemOrder = deleteWhere(r.s.itemOrder, func(id uuid.UUID) bool {
		_, kept := r.s.items[id]
		return !kept
	})
	return nil
}

// ---- ItemRepo --------------------------------------------------------------

type itemStore struct {
	s *Store
}

var _ repo.ItemRepo = (*itemStore)(nil)

// Create inserts an item, generating its id.
func (r *itemStore) Create(ctx context.Context, item domain.TripItem) (domain.TripItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.ID = uuid.New()
	item.Metadata = copyMeta(item.Metadata)
	r.s.items[item.ID] = item
	r.s.itemOrder = append(r.s.itemOrder, item.ID)
	return copyItem(item), nil
}

// GetByID retrieves an item scoped to its trip.
func (r *itemStore) GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.TripItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.items[itemID]
	if !ok || item.TripID != tripID {
		return domain.TripItem{}, domain.ErrNotFound
	}
	return copyItem(item), nil
}

// ListByTripID returns a trip's items in insertion order.
func (r *itemStore) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []domain.TripItem
	for _, id := range r.s.itemOrder {
		if it, ok := r.s.items[id]; ok && it.TripID == tripID {
			items = append(items, copyItem(it))
		}
	}
	return items, nil
}

// ListByTripIDPaged returns one page of a trip's items plus the total count.
func (r *itemStore) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.TripItem, int64, error) {
	all, err := r.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(all))
	lo := p.Offset()
	if lo >= len(all) {
		return nil, total, nil
	}
	hi := lo + p.Limit
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi], total, nil
}

// Update overwrites the mutable fields of an existing item.
func (r *itemStore) Update(ctx context.Context, item domain.TripItem) (domain.TripItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.items[item.ID]
	if !ok || stored.TripID != item.TripID {
		return domain.TripItem{}, domain.ErrNotFound
	}
	item.Metadata = copyMeta(item.Metadata)
	r.s.items[item.ID] = item
	return copyItem(item), nil
}

// Delete removes an item scoped to its trip.
func (r *itemStore) Delete(ctx context.Context, tripID, itemID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.items[itemID]
	if !ok || item.TripID != tripID {
		return domain.ErrNotFound
	}
	delete(r.s.items, itemID)
	r.s.itemOrder = deleteWhere(r.s.itemOrder, func(id uuid.UUID) bool { return id == itemID })
	return nil
}

// ---- helpers ---------------------------------------------------------------

// copyItem returns item with its metadata map copied, so callers never share
// a map with stored state.
func copyItem(item domain.TripItem) domain.TripItem {
	item.Metadata = copyMeta(item.Metadata)
	return item
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

func deleteWhere(ids []uuid.UUID, drop func(uuid.UUID) bool) []uuid.UUID {
	out := ids[:0]
	for _, id := range ids {
		if !drop(id) {
			out = append(out, id)
		}
	}
	return out
}
