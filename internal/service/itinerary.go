package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/itinerary"
	"github.com/nvalette/tripdeck/backend/internal/repo"
)

// ItineraryService joins a trip with its items and runs the itinerary
// aggregation. It is the boundary between the retrieval gateway and the pure
// core: the core is invoked only after both fetches have resolved.
type ItineraryService struct {
	trips repo.TripRepo
	items repo.ItemRepo
	opts  itinerary.Options
}

// NewItineraryService constructs an ItineraryService with the given
// aggregation options (zero value: exclude unparsable items).
func NewItineraryService(trips repo.TripRepo, items repo.ItemRepo, opts itinerary.Options) *ItineraryService {
	return &ItineraryService{trips: trips, items: items, opts: opts}
}

// View builds the ItineraryView for one trip.
//
// A missing trip is a call-level failure: it returns domain.ErrMissingTrip
// before any item is fetched or processed. Item-level data-quality issues
// never fail the call — they surface as warnings on the returned view.
func (s *ItineraryService) View(ctx context.Context, userID, tripID uuid.UUID) (domain.ItineraryView, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ItineraryView{}, fmt.Errorf("service.ItineraryService.View: %w", domain.ErrMissingTrip)
		}
		return domain.ItineraryView{}, fmt.Errorf("service.ItineraryService.View: %w", err)
	}

	items, err := s.items.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.ItineraryView{}, fmt.Errorf("service.ItineraryService.View: %w", err)
	}

	view, err := itinerary.Aggregate(trip, items, s.opts)
	if err != nil {
		return domain.ItineraryView{}, fmt.Errorf("service.ItineraryService.View: %w", err)
	}
	return view, nil
}
