package domain

import (
	"github.com/google/uuid"
)

// Category is the semantic kind of a trip item. Closed six-value enumeration;
// unknown raw values are mapped to CategoryNote by ParseCategory, never dropped.
type Category string

const (
	CategoryFlight    Category = "flight"
	CategoryHotel     Category = "hotel"
	CategoryActivity  Category = "activity"
	CategoryTransport Category = "transport"
	CategoryMeal      Category = "meal"
	CategoryNote      Category = "note"
)

// Categories lists all six categories in their canonical order.
// Aggregation counts are zero-filled over this slice so every view always
// carries all six keys.
var Categories = []Category{
	CategoryFlight,
	CategoryHotel,
	CategoryActivity,
	CategoryTransport,
	CategoryMeal,
	CategoryNote,
}

// ParseCategory maps a raw category string to a canonical Category.
// Unrecognized values classify as note; the second return value carries the
// original raw string for diagnostics and is empty on an exact match.
func ParseCategory(raw string) (Category, string) {
	switch Category(raw) {
	case CategoryFlight, CategoryHotel, CategoryActivity,
		CategoryTransport, CategoryMeal, CategoryNote:
		return Category(raw), ""
	}
	return CategoryNote, raw
}

// ConfirmationStatus is the booking state of an item.
type ConfirmationStatus string

const (
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationCancelled ConfirmationStatus = "cancelled"
)

// ParseConfirmationStatus normalizes a raw status string.
// Unknown or empty values get the pending treatment.
func ParseConfirmationStatus(raw string) ConfirmationStatus {
	switch ConfirmationStatus(raw) {
	case ConfirmationConfirmed, ConfirmationCancelled:
		return ConfirmationStatus(raw)
	}
	return ConfirmationPending
}

// TripItem is one scheduled or logged unit within a trip, exactly as stored.
//
// Category, StartTime, and EndTime are raw strings: items originate from
// AI document extraction and row storage, so these fields are untrusted
// boundary data. The itinerary package classifies and parses them; nothing
// in this struct is guaranteed beyond ID, TripID, and Title.
type TripItem struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"trip_id"`

	// Category is the raw stored kind; may be any string.
	Category string `json:"category"`

	// Title is the human label. Required, non-empty.
	Title string `json:"title"`

	// StartTime is the raw stored start instant. Accepted forms are RFC3339,
	// RFC3339 without zone offset, and date-only ("2006-01-02").
	StartTime string `json:"start_time"`

	// EndTime is optional; empty string when absent.
	EndTime string `json:"end_time,omitempty"`

	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`

	// Metadata is an open bag of category-specific keys (airline, flight
	// number, booking refs). Shape is never validated; consumers must check
	// for expected keys defensively.
	Metadata map[string]any `json:"metadata,omitempty"`

	// CostAmount and CostCurrency travel as a pair; a half-set pair is a
	// data-quality warning, not a fatal error.
	CostAmount   *float64 `json:"cost_amount,omitempty"`
	CostCurrency string   `json:"cost_currency,omitempty"`

	// ConfirmationStatus is the raw stored booking state; empty means pending.
	ConfirmationStatus string `json:"confirmation_status,omitempty"`
}
