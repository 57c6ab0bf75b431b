package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/repo"
	"github.com/nvalette/tripdeck/backend/internal/stats"
)

// StatsService assembles the travel analytics view for one user.
type StatsService struct {
	trips repo.TripRepo
	items repo.ItemRepo
}

// NewStatsService constructs a StatsService backed by the provided repos.
func NewStatsService(trips repo.TripRepo, items repo.ItemRepo) *StatsService {
	return &StatsService{trips: trips, items: items}
}

// ForUser fetches all of the user's trips and items and computes the stats.
func (s *StatsService) ForUser(ctx context.Context, userID uuid.UUID) (domain.TravelStats, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return domain.TravelStats{}, fmt.Errorf("service.StatsService.ForUser: %w", err)
	}

	itemsByTrip := make(map[string][]domain.TripItem, len(trips))
	for _, trip := range trips {
		items, err := s.items.ListByTripID(ctx, trip.ID)
		if err != nil {
			return domain.TravelStats{}, fmt.Errorf("service.StatsService.ForUser: %w", err)
		}
		itemsByTrip[trip.ID.String()] = items
	}

	return stats.Compute(trips, itemsByTrip), nil
}
