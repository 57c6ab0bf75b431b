package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/repo"
)

// ExportService assembles a full flat export of a user's trips and items.
type ExportService struct {
	trips repo.TripRepo
	items repo.ItemRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, items repo.ItemRepo) *ExportService {
	return &ExportService{trips: trips, items: items}
}

// Export returns one ExportRow per item across all of the user's trips.
// Trips with no items contribute one row with empty item fields.
// Item categories are exported in canonical form (unknown values as note),
// so the export matches what the itinerary view renders.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, trip := range trips {
		items, err := s.items.ListByTripID(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}

		if len(items) == 0 {
			rows = append(rows, tripRow(trip))
			continue
		}
		for _, item := range items {
			row := tripRow(trip)
			category, _ := domain.ParseCategory(item.Category)
			row.ItemTitle = item.Title
			row.ItemCategory = string(category)
			row.ItemStart = item.StartTime
			row.ItemEnd = item.EndTime
			row.ItemLocation = item.Location
			row.ItemStatus = string(domain.ParseConfirmationStatus(item.ConfirmationStatus))
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// tripRow builds a row carrying only the trip-level fields.
func tripRow(trip domain.Trip) domain.ExportRow {
	return domain.ExportRow{
		TripID:        trip.ID.String(),
		TripTitle:     trip.Title,
		Destination:   trip.DestinationCity + ", " + trip.DestinationCountry,
		TripStartDate: trip.StartDate.Format("2006-01-02"),
		TripEndDate:   trip.EndDate.Format("2006-01-02"),
		TripStatus:    string(trip.Status),
	}
}
