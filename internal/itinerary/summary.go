package itinerary

import (
	"fmt"
	"strings"

	"github.com/nvalette/tripdeck/backend/internal/domain"
)

// Summary serializes an itinerary view into the plain-text context string
// consumed by the assistant port. One line per entry, in sequence order, so
// the model sees the schedule the same way the timeline renders it.
func Summary(view domain.ItineraryView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Trip to %s, %s from %s to %s.\n",
		view.Trip.DestinationCity,
		view.Trip.DestinationCountry,
		view.Trip.StartDate.Format("2006-01-02"),
		view.Trip.EndDate.Format("2006-01-02"),
	)
	fmt.Fprintf(&b, "Status: %s. Itinerary (%d items):\n", view.Trip.Status, len(view.Entries))

	loc, _ := view.Trip.Location()
	for _, e := range view.Entries {
		fmt.Fprintf(&b, "- %s: %s (%s)",
			e.Start.In(loc).Format("2006-01-02 15:04"),
			e.Item.Title,
			e.Category,
		)
		if e.Item.Location != "" {
			fmt.Fprintf(&b, " at %s", e.Item.Location)
		}
		if e.End != nil {
			fmt.Fprintf(&b, ", until %s", e.End.In(loc).Format("2006-01-02 15:04"))
		}
		b.WriteByte('\n')
	}

	if view.InvalidItems > 0 {
		fmt.Fprintf(&b, "(%d items had unreadable dates and are not listed.)\n", view.InvalidItems)
	}

	return b.String()
}
