// Package itinerary turns a trip's raw, heterogeneous item records into an
// ordered, classified, renderable view. It is pure and stateless: no I/O,
// no shared state, and inputs are never mutated. All storage access lives in
// repo; this package only transforms already-fetched values.
package itinerary

import (
	"github.com/nvalette/tripdeck/backend/internal/domain"
)

// Classify maps one raw trip item to a classified itinerary entry.
//
// The raw category string is untrusted boundary data (row storage or AI
// extraction): exact matches of the six canonical categories are kept, and
// anything else defaults to note with the original value preserved in
// OriginalCategoryHint. Classify never fails; malformed metadata is treated
// as absent. Start and End are left zero — parsing belongs to Sequence.
func Classify(item domain.TripItem) domain.ItineraryEntry {
	category, hint := domain.ParseCategory(item.Category)
	return domain.ItineraryEntry{
		Item:                 item,
		Category:             category,
		OriginalCategoryHint: hint,
		Confirmation:         domain.ParseConfirmationStatus(item.ConfirmationStatus),
		Details:              detailsFor(category, item.Metadata),
	}
}

// detailsFor builds the category-tagged structured view of the open metadata
// bag. Every key is optional; absent or wrongly-typed values yield zero
// fields rather than errors.
func detailsFor(category domain.Category, meta map[string]any) domain.ItemDetails {
	switch category {
	case domain.CategoryFlight:
		return domain.FlightDetails{
			Airline:          metaString(meta, "airline"),
			FlightNumber:     metaString(meta, "flightNumber", "flight_number"),
			DepartureAirport: metaString(meta, "departureAirport", "departure_airport"),
			ArrivalAirport:   metaString(meta, "arrivalAirport", "arrival_airport"),
			DepartureLat:     metaFloat(meta, "departureLat", "departure_lat"),
			DepartureLng:     metaFloat(meta, "departureLng", "departure_lng"),
			ArrivalLat:       metaFloat(meta, "arrivalLat", "arrival_lat"),
			ArrivalLng:       metaFloat(meta, "arrivalLng", "arrival_lng"),
		}
	case domain.CategoryHotel:
		return domain.HotelDetails{
			ConfirmationCode: metaString(meta, "confirmationCode", "confirmation_code"),
			CheckInTime:      metaString(meta, "checkInTime", "check_in_time"),
		}
	case domain.CategoryActivity:
		return domain.ActivityDetails{
			BookingRef: metaString(meta, "bookingRef", "booking_ref"),
		}
	case domain.CategoryTransport:
		return domain.TransportDetails{
			Mode:      metaString(meta, "mode"),
			Operator:  metaString(meta, "operator"),
			Reference: metaString(meta, "reference"),
		}
	case domain.CategoryMeal:
		return domain.MealDetails{
			Cuisine:     metaString(meta, "cuisine"),
			Reservation: metaString(meta, "reservation"),
		}
	default:
		return domain.NoteDetails{Raw: meta}
	}
}

// metaString returns the first of keys present in meta as a string, or "".
func metaString(meta map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := meta[k]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// metaFloat returns the first of keys present in meta as a float64, or 0.
// JSON numbers decode as float64; integer values are accepted as well.
func metaFloat(meta map[string]any, keys ...string) float64 {
	for _, k := range keys {
		switch v := meta[k].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}
