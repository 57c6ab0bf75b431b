package domain

import (
	"time"

	"github.com/google/uuid"
)

// WarningCode identifies a class of non-fatal data-quality issue found while
// aggregating an itinerary.
type WarningCode string

const (
	// WarnUnknownCategory: item category was not one of the six canonical
	// values and was defaulted to note.
	WarnUnknownCategory WarningCode = "unknown_category"
	// WarnEndBeforeStart: item end time precedes its start time.
	WarnEndBeforeStart WarningCode = "end_before_start"
	// WarnOutsideTripRange: item starts before the trip start date or after
	// the trip end date.
	WarnOutsideTripRange WarningCode = "outside_trip_range"
	// WarnIncompleteCost: only one of cost amount / cost currency is set.
	WarnIncompleteCost WarningCode = "incomplete_cost"
	// WarnUnparsableEnd: item end time was present but could not be parsed;
	// the item is treated as having no end time.
	WarnUnparsableEnd WarningCode = "unparsable_end"
	// WarnUnknownTimezone: the trip's timezone was empty or unloadable and
	// UTC was used for day grouping instead.
	WarnUnknownTimezone WarningCode = "unknown_timezone"
)

// IntegrityWarning is a single non-fatal data-quality finding.
// ItemID is the nil UUID for trip-level warnings (e.g. unknown timezone).
type IntegrityWarning struct {
	Code    WarningCode `json:"code"`
	ItemID  uuid.UUID   `json:"item_id"`
	Message string      `json:"message"`
}

// ItemDetails is the category-tagged structured view of an item's metadata.
// Exactly one concrete type exists per category; values are built defensively
// from the open metadata bag, so any field may be zero.
type ItemDetails interface {
	itemDetails()
}

// FlightDetails carries flight-specific metadata.
// Lat/Lng pairs, when present, allow great-circle distance stats.
type FlightDetails struct {
	Airline          string  `json:"airline,omitempty"`
	FlightNumber     string  `json:"flight_number,omitempty"`
	DepartureAirport string  `json:"departure_airport,omitempty"`
	ArrivalAirport   string  `json:"arrival_airport,omitempty"`
	DepartureLat     float64 `json:"departure_lat,omitempty"`
	DepartureLng     float64 `json:"departure_lng,omitempty"`
	ArrivalLat       float64 `json:"arrival_lat,omitempty"`
	ArrivalLng       float64 `json:"arrival_lng,omitempty"`
}

// HotelDetails carries hotel-stay metadata.
type HotelDetails struct {
	ConfirmationCode string `json:"confirmation_code,omitempty"`
	CheckInTime      string `json:"check_in_time,omitempty"`
}

// ActivityDetails carries activity metadata.
type ActivityDetails struct {
	BookingRef string `json:"booking_ref,omitempty"`
}

// TransportDetails carries ground-transport metadata.
type TransportDetails struct {
	Mode      string `json:"mode,omitempty"`
	Operator  string `json:"operator,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// MealDetails carries restaurant/meal metadata.
type MealDetails struct {
	Cuisine     string `json:"cuisine,omitempty"`
	Reservation string `json:"reservation,omitempty"`
}

// NoteDetails is the generic fallback for notes and unclassified items.
// Raw preserves the original metadata bag untouched.
type NoteDetails struct {
	Raw map[string]any `json:"raw,omitempty"`
}

func (FlightDetails) itemDetails()    {}
func (HotelDetails) itemDetails()     {}
func (ActivityDetails) itemDetails()  {}
func (TransportDetails) itemDetails() {}
func (MealDetails) itemDetails()      {}
func (NoteDetails) itemDetails()      {}

// ItineraryEntry is one classified, parsed item in sequence order.
// Start and End are absolute instants; the raw stored strings remain
// available on Item.
type ItineraryEntry struct {
	Item     TripItem `json:"item"`
	Category Category `json:"category"`

	// OriginalCategoryHint preserves the raw category string when it did not
	// match any canonical category and the entry was defaulted to note.
	// Empty on an exact match.
	OriginalCategoryHint string `json:"original_category_hint,omitempty"`

	Confirmation ConfirmationStatus `json:"confirmation"`

	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`

	Details ItemDetails `json:"details,omitempty"`
}

// ItineraryDay groups the entries starting on one calendar day in the trip's
// destination timezone. Date is midnight of that day in the same zone.
type ItineraryDay struct {
	Date    time.Time        `json:"date"`
	Entries []ItineraryEntry `json:"entries"`
}

// ItineraryView is the ordered, classified, best-effort view of one trip's
// items. It is a pure value: aggregation never mutates its inputs, and the
// same inputs always produce an identical view.
type ItineraryView struct {
	Trip Trip `json:"trip"`

	// Entries are ordered by start instant ascending, input order on ties.
	Entries []ItineraryEntry `json:"entries"`

	// Days is the calendar-day grouping of Entries, derived in the trip's
	// destination timezone (UTC fallback, flagged by WarnUnknownTimezone).
	Days []ItineraryDay `json:"days"`

	// Counts always contains all six categories, zero-filled.
	Counts map[Category]int `json:"counts"`

	// EarliestStart and LatestEnd span the valid entries. Nil when the
	// sequence is empty. LatestEnd considers end times where present,
	// otherwise start times.
	EarliestStart *time.Time `json:"earliest_start,omitempty"`
	LatestEnd     *time.Time `json:"latest_end,omitempty"`

	// Warnings are the non-fatal data-quality findings, in discovery order.
	Warnings []IntegrityWarning `json:"warnings"`

	// InvalidItems counts items excluded for unparsable start times under
	// the exclude policy.
	InvalidItems int `json:"invalid_items"`
}
