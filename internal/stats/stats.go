// Package stats computes the aggregate travel-history figures for the
// analytics page. Like the itinerary package it is pure: a function of
// already-fetched trips and items, no I/O.
package stats

import (
	"github.com/golang/geo/s2"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/itinerary"
)

// earthRadiusKm is Earth's mean radius.
const earthRadiusKm = 6371.0

// Compute derives TravelStats from a user's trips and their items.
// itemsByTrip maps trip ID (string form) to that trip's raw items; trips
// without an entry simply contribute no item-derived figures.
//
// Cancelled trips are excluded from destination counts but their items are
// still ignored entirely — a cancelled trip never happened.
func Compute(trips []domain.Trip, itemsByTrip map[string][]domain.TripItem) domain.TravelStats {
	stats := domain.TravelStats{
		FlightsPerYear: map[int]int{},
		TripsByStatus:  zeroStatusCounts(),
	}

	countries := map[string]struct{}{}
	cities := map[string]struct{}{}

	for _, trip := range trips {
		stats.TripsByStatus[trip.Status]++
		if trip.Status == domain.TripStatusCancelled {
			continue
		}

		if trip.DestinationCountry != "" {
			countries[trip.DestinationCountry] = struct{}{}
		}
		if trip.DestinationCity != "" {
			cities[trip.DestinationCity] = struct{}{}
		}

		loc, _ := trip.Location()
		for _, item := range itemsByTrip[trip.ID.String()] {
			entry := itinerary.Classify(item)

			start, err := itinerary.ParseInstant(item.StartTime, loc)
			if err != nil {
				continue
			}

			switch entry.Category {
			case domain.CategoryFlight:
				stats.FlightsPerYear[start.Year()]++
				if f, ok := entry.Details.(domain.FlightDetails); ok {
					stats.TotalKm += flightKm(f)
				}
			case domain.CategoryTransport:
				// counted below for transit hours only
			default:
				continue
			}

			if item.EndTime != "" {
				if end, err := itinerary.ParseInstant(item.EndTime, loc); err == nil && end.After(start) {
					stats.HoursInTransport += end.Sub(start).Hours()
				}
			}
		}
	}

	stats.CountriesVisited = len(countries)
	stats.CitiesVisited = len(cities)
	return stats
}

// flightKm returns the great-circle distance of a flight whose metadata
// carries both endpoint coordinates, or 0 when either endpoint is missing.
// A (0,0) coordinate pair is treated as missing — it is the open ocean off
// West Africa, not an airport.
func flightKm(f domain.FlightDetails) float64 {
	if (f.DepartureLat == 0 && f.DepartureLng == 0) || (f.ArrivalLat == 0 && f.ArrivalLng == 0) {
		return 0
	}
	dep := s2.LatLngFromDegrees(f.DepartureLat, f.DepartureLng)
	arr := s2.LatLngFromDegrees(f.ArrivalLat, f.ArrivalLng)
	return dep.Distance(arr).Radians() * earthRadiusKm
}

// zeroStatusCounts returns a per-status count map with all five statuses present.
func zeroStatusCounts() map[domain.TripStatus]int {
	return map[domain.TripStatus]int{
		domain.TripStatusPlanning:  0,
		domain.TripStatusBooked:    0,
		domain.TripStatusActive:    0,
		domain.TripStatusCompleted: 0,
		domain.TripStatusCancelled: 0,
	}
}
