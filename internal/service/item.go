package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/repo"
)

// ItemService implements business logic for TripItem operations.
// It holds both repos because creating an item requires verifying the parent
// trip exists and belongs to the caller.
//
// Writes deliberately accept category and time strings as-is: items arrive
// from document extraction with imperfect values, and the itinerary
// aggregation surfaces data-quality findings as warnings rather than
// blocking the write.
type ItemService struct {
	trips repo.TripRepo
	items repo.ItemRepo
}

// NewItemService constructs an ItemService backed by the provided repos.
func NewItemService(trips repo.TripRepo, items repo.ItemRepo) *ItemService {
	return &ItemService{trips: trips, items: items}
}

// Create verifies the parent trip, validates the item, then persists.
// Returns domain.ErrNotFound if the parent trip does not exist for the user.
func (s *ItemService) Create(ctx context.Context, userID uuid.UUID, item domain.TripItem) (domain.TripItem, error) {
	if _, err := s.trips.GetByID(ctx, userID, item.TripID); err != nil {
		return domain.TripItem{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	if err := validateItem(item); err != nil {
		return domain.TripItem{}, err
	}
	result, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.TripItem{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single item scoped to a trip the user owns.
func (s *ItemService) GetByID(ctx context.Context, userID, tripID, itemID uuid.UUID) (domain.TripItem, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return domain.TripItem{}, fmt.Errorf("service.ItemService.GetByID: %w", err)
	}
	result, err := s.items.GetByID(ctx, tripID, itemID)
	if err != nil {
		return domain.TripItem{}, fmt.Errorf("service.ItemService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns one page of a trip's items plus the total count.
// The order is storage insertion order — chronological ordering is the
// itinerary sequencer's job, not the repo's.
func (s *ItemService) ListByTripID(ctx context.Context, userID, tripID uuid.UUID, p domain.PaginationParams) ([]domain.TripItem, int64, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, 0, fmt.Errorf("service.ItemService.ListByTripID: %w", err)
	}
	items, total, err := s.items.ListByTripIDPaged(ctx, tripID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItemService.ListByTripID: %w", err)
	}
	if items == nil {
		items = []domain.TripItem{}
	}
	return items, total, nil
}

// Update validates and persists changes to an existing item.
func (s *ItemService) Update(ctx context.Context, userID uuid.UUID, item domain.TripItem) (domain.TripItem, error) {
	if _, err := s.trips.GetByID(ctx, userID, item.TripID); err != nil {
		return domain.TripItem{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}
	if err := validateItem(item); err != nil {
		return domain.TripItem{}, err
	}
	result, err := s.items.Update(ctx, item)
	if err != nil {
		return domain.TripItem{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an item scoped to a trip the user owns.
func (s *ItemService) Delete(ctx context.Context, userID, tripID, itemID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.ItemService.Delete: %w", err)
	}
	if err := s.items.Delete(ctx, tripID, itemID); err != nil {
		return fmt.Errorf("service.ItemService.Delete: %w", err)
	}
	return nil
}

// validateItem enforces the only hard write-time rules.
//   - Title must be non-empty.
//   - StartTime must be present (any string; parsing happens at read time).
func validateItem(item domain.TripItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(item.StartTime) == "" {
		return fmt.Errorf("%w: start_time is required", domain.ErrValidation)
	}
	return nil
}
