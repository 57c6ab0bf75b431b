// Package domain contains the core data types for the Tripdeck application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, itinerary, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip. Closed enumeration.
type TripStatus string

const (
	TripStatusPlanning  TripStatus = "planning"
	TripStatusBooked    TripStatus = "booked"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// ValidTripStatus reports whether s is one of the five known statuses.
func ValidTripStatus(s TripStatus) bool {
	switch s {
	case TripStatusPlanning, TripStatusBooked, TripStatusActive,
		TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// Trip represents a single planned or completed journey.
// A trip is the top-level aggregate; items belong to a trip and are fetched
// separately, never held on the Trip itself.
type Trip struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Title              string    `json:"title"`
	DestinationCity    string    `json:"destination_city"`
	DestinationCountry string    `json:"destination_country"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	// Timezone is the IANA zone name of the destination (e.g. "Asia/Tokyo").
	// Itinerary day grouping and zone-less timestamps are interpreted here.
	// Empty or unloadable zones fall back to UTC at aggregation time.
	Timezone      string     `json:"timezone,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Status        TripStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Location resolves the trip's destination timezone.
// Returns UTC and ok=false when the zone is empty or unknown, so callers can
// surface a warning instead of failing the whole aggregation.
func (t Trip) Location() (loc *time.Location, ok bool) {
	if t.Timezone == "" {
		return time.UTC, false
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}
