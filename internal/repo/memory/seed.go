package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/domain"
)

// Seed loads the demo fixtures for the given user: a planned Tokyo summer
// trip with a small itinerary and a completed New York business trip.
// It exists so the demo-mode server starts with something to show.
func (s *Store) Seed(userID uuid.UUID) error {
	ctx := context.Background()
	trips := s.Trips()
	items := s.Items()

	tokyo, err := trips.Create(ctx, domain.Trip{
		UserID:             userID,
		Title:              "Summer in Tokyo",
		DestinationCity:    "Tokyo",
		DestinationCountry: "Japan",
		StartDate:          time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2024, 7, 24, 0, 0, 0, 0, time.UTC),
		Timezone:           "Asia/Tokyo",
		CoverImageURL:      "https://images.unsplash.com/photo-1503899036084-c55cdd92da26",
		Status:             domain.TripStatusPlanning,
	})
	if err != nil {
		return err
	}

	_, err = trips.Create(ctx, domain.Trip{
		UserID:             userID,
		Title:              "Business in NYC",
		DestinationCity:    "New York",
		DestinationCountry: "USA",
		StartDate:          time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC),
		Timezone:           "America/New_York",
		CoverImageURL:      "https://images.unsplash.com/photo-1496442226666-8d4a0e62e6e9",
		Status:             domain.TripStatusCompleted,
	})
	if err != nil {
		return err
	}

	fixtures := []domain.TripItem{
		{
			TripID:             tokyo.ID,
			Category:           "flight",
			Title:              "Flight to Narita (JL 408)",
			StartTime:          "2024-07-10T13:00:00",
			EndTime:            "2024-07-11T16:00:00",
			Location:           "FRA -> NRT",
			ConfirmationStatus: "confirmed",
			Metadata: map[string]any{
				"airline":      "JAL",
				"flightNumber": "JL408",
				"departureLat": 50.0379, "departureLng": 8.5622,
				"arrivalLat": 35.7720, "arrivalLng": 140.3929,
			},
		},
		{
			TripID:             tokyo.ID,
			Category:           "hotel",
			Title:              "Shinjuku Prince Hotel",
			StartTime:          "2024-07-11T17:00:00",
			EndTime:            "2024-07-15T11:00:00",
			Location:           "Shinjuku, Tokyo",
			ConfirmationStatus: "confirmed",
		},
		{
			TripID:             tokyo.ID,
			Category:           "activity",
			Title:              "TeamLabs Borderless",
			StartTime:          "2024-07-12T10:00:00",
			EndTime:            "2024-07-12T13:00:00",
			Location:           "Azabudai Hills",
			ConfirmationStatus: "confirmed",
		},
	}

	for _, it := range fixtures {
		if _, err := items.Create(ctx, it); err != nil {
			return err
		}
	}
	return nil
}
