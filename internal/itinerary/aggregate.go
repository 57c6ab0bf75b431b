package itinerary

import (
	"fmt"
	"time"

	"github.com/nvalette/tripdeck/backend/internal/domain"
)

// Options configures one aggregation pass.
type Options struct {
	// InvalidStart is the sequencer policy for unparsable start times.
	// Zero value means ExcludeInvalid.
	InvalidStart InvalidStartPolicy
}

// Aggregate combines a trip with its raw items into an ItineraryView.
//
// Data-quality issues never fail the call: they accumulate as warnings on a
// best-effort view. The only error path is FailFast sequencing. The caller
// is responsible for resolving the trip first; a missing trip is a
// call-level failure that belongs to the service layer, not here.
//
// Output is deterministic: identical inputs produce an identical view,
// including warning order.
func Aggregate(trip domain.Trip, items []domain.TripItem, opts Options) (domain.ItineraryView, error) {
	policy := opts.InvalidStart
	if policy == "" {
		policy = ExcludeInvalid
	}

	view := domain.ItineraryView{
		Trip:     trip,
		Counts:   zeroCounts(),
		Entries:  []domain.ItineraryEntry{},
		Days:     []domain.ItineraryDay{},
		Warnings: []domain.IntegrityWarning{},
	}

	loc, known := trip.Location()
	if !known {
		view.Warnings = append(view.Warnings, domain.IntegrityWarning{
			Code:    domain.WarnUnknownTimezone,
			Message: fmt.Sprintf("trip timezone %q unknown, grouping days in UTC", trip.Timezone),
		})
	}

	classified := make([]domain.ItineraryEntry, 0, len(items))
	for _, item := range items {
		classified = append(classified, Classify(item))
	}

	ordered, invalid, err := Sequence(classified, loc, policy)
	if err != nil {
		return domain.ItineraryView{}, fmt.Errorf("itinerary.Aggregate: %w", err)
	}
	view.Entries = ordered
	view.InvalidItems = invalid

	tripStart := dateInZone(trip.StartDate, loc)
	tripEnd := dateInZone(trip.EndDate, loc).AddDate(0, 0, 1)

	for _, e := range view.Entries {
		view.Counts[e.Category]++
		view.Warnings = append(view.Warnings, entryWarnings(e, tripStart, tripEnd)...)

		if view.EarliestStart == nil || e.Start.Before(*view.EarliestStart) {
			s := e.Start
			view.EarliestStart = &s
		}
		latest := e.Start
		if e.End != nil && e.End.After(latest) {
			latest = *e.End
		}
		if view.LatestEnd == nil || latest.After(*view.LatestEnd) {
			l := latest
			view.LatestEnd = &l
		}
	}

	view.Days = groupByDay(view.Entries, loc)
	return view, nil
}

// entryWarnings collects the per-item data-quality findings for one entry.
func entryWarnings(e domain.ItineraryEntry, tripStart, tripEnd time.Time) []domain.IntegrityWarning {
	var warns []domain.IntegrityWarning

	if e.OriginalCategoryHint != "" {
		warns = append(warns, domain.IntegrityWarning{
			Code:    domain.WarnUnknownCategory,
			ItemID:  e.Item.ID,
			Message: fmt.Sprintf("category %q unknown, defaulted to note", e.OriginalCategoryHint),
		})
	}
	if e.End != nil && e.End.Before(e.Start) {
		warns = append(warns, domain.IntegrityWarning{
			Code:    domain.WarnEndBeforeStart,
			ItemID:  e.Item.ID,
			Message: "end time precedes start time",
		})
	}
	if e.Item.EndTime != "" && e.End == nil {
		warns = append(warns, domain.IntegrityWarning{
			Code:    domain.WarnUnparsableEnd,
			ItemID:  e.Item.ID,
			Message: fmt.Sprintf("end time %q unparsable, treated as absent", e.Item.EndTime),
		})
	}
	if e.Start.Before(tripStart) || !e.Start.Before(tripEnd) {
		warns = append(warns, domain.IntegrityWarning{
			Code:    domain.WarnOutsideTripRange,
			ItemID:  e.Item.ID,
			Message: "item starts outside the trip date range",
		})
	}
	if (e.Item.CostAmount != nil) != (e.Item.CostCurrency != "") {
		warns = append(warns, domain.IntegrityWarning{
			Code:    domain.WarnIncompleteCost,
			ItemID:  e.Item.ID,
			Message: "cost amount and currency should be set together",
		})
	}

	return warns
}

// groupByDay splits ordered entries into calendar-day buckets in loc.
// Entries are already sorted, so days come out in chronological order.
func groupByDay(entries []domain.ItineraryEntry, loc *time.Location) []domain.ItineraryDay {
	days := []domain.ItineraryDay{}
	for _, e := range entries {
		day := startOfDay(e.Start, loc)
		if n := len(days); n > 0 && days[n-1].Date.Equal(day) {
			days[n-1].Entries = append(days[n-1].Entries, e)
			continue
		}
		days = append(days, domain.ItineraryDay{
			Date:    day,
			Entries: []domain.ItineraryEntry{e},
		})
	}
	return days
}

// startOfDay returns midnight of t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dateInZone re-anchors a date-valued time (stored at UTC midnight) to
// midnight of the same calendar day in loc. Going through In(loc) first
// would shift the day in zones west of UTC.
func dateInZone(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// zeroCounts returns a per-category count map with all six categories present.
func zeroCounts() map[domain.Category]int {
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = 0
	}
	return counts
}
