package itinerary

import (
	"fmt"
	"sort"
	"time"

	"github.com/nvalette/tripdeck/backend/internal/domain"
)

// InvalidStartPolicy controls what Sequence does with an item whose start
// time cannot be parsed.
type InvalidStartPolicy string

const (
	// ExcludeInvalid drops the offending item and reports it in the invalid
	// count. This is the default: one bad record never blocks viewing the
	// rest of the itinerary.
	ExcludeInvalid InvalidStartPolicy = "exclude"

	// FailFast aborts the whole sequencing call on the first unparsable
	// start time.
	FailFast InvalidStartPolicy = "fail_fast"
)

// timeLayouts are the accepted stored time forms, tried in order.
// Zone-less forms are interpreted in the trip's destination zone; date-only
// values become midnight in that zone. Anything else is unparsable.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseInstant parses a raw stored time string into an absolute instant,
// interpreting zone-less forms in loc.
func ParseInstant(raw string, loc *time.Location) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidStartTime, raw)
}

// Sequence orders classified entries by start instant ascending.
//
// Start and end strings are parsed against loc. The sort is stable: entries
// with identical start instants keep their relative input order, so repeated
// calls over re-fetched but logically identical data render identically.
// An unparsable end time leaves End nil; an unparsable start time is handled
// per policy. The input slice is never modified.
//
// Returns the ordered sequence and the number of excluded invalid entries.
// The error is non-nil only under FailFast.
func Sequence(entries []domain.ItineraryEntry, loc *time.Location, policy InvalidStartPolicy) ([]domain.ItineraryEntry, int, error) {
	ordered := make([]domain.ItineraryEntry, 0, len(entries))
	invalid := 0

	for _, e := range entries {
		start, err := ParseInstant(e.Item.StartTime, loc)
		if err != nil {
			if policy == FailFast {
				return nil, 0, fmt.Errorf("itinerary.Sequence: item %s: %w", e.Item.ID, err)
			}
			invalid++
			continue
		}
		e.Start = start

		if e.Item.EndTime != "" {
			if end, err := ParseInstant(e.Item.EndTime, loc); err == nil {
				e.End = &end
			}
		}

		ordered = append(ordered, e)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	return ordered, invalid, nil
}
