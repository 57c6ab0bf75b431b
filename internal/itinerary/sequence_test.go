package itinerary_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/itinerary"
)

// ---- helpers ---------------------------------------------------------------

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err, "load zone %q", name)
	return loc
}

func entry(title, category, start, end string) domain.ItineraryEntry {
	return itinerary.Classify(domain.TripItem{
		ID:        uuid.New(),
		Category:  category,
		Title:     title,
		StartTime: start,
		EndTime:   end,
	})
}

func titles(entries []domain.ItineraryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Item.Title
	}
	return out
}

// ---- ParseInstant ----------------------------------------------------------

func TestParseInstant_AcceptedForms(t *testing.T) {
	tokyo := mustZone(t, "Asia/Tokyo")

	cases := []struct {
		raw  string
		want time.Time
	}{
		// Full RFC3339 carries its own offset; the trip zone is irrelevant.
		{"2025-04-01T09:00:00+02:00", time.Date(2025, 4, 1, 9, 0, 0, 0, time.FixedZone("", 2*3600))},
		// Zone-less forms are pinned to the trip's destination zone.
		{"2025-04-01T09:00:00", time.Date(2025, 4, 1, 9, 0, 0, 0, tokyo)},
		{"2025-04-01T09:00", time.Date(2025, 4, 1, 9, 0, 0, 0, tokyo)},
		// Date-only is midnight in the destination zone.
		{"2025-04-01", time.Date(2025, 4, 1, 0, 0, 0, 0, tokyo)},
	}

	for _, tc := range cases {
		got, err := itinerary.ParseInstant(tc.raw, tokyo)
		require.NoError(t, err, "parse %q", tc.raw)
		assert.True(t, got.Equal(tc.want), "parse %q: got %v, want %v", tc.raw, got, tc.want)
	}
}

func TestParseInstant_Unparsable(t *testing.T) {
	for _, raw := range []string{"", "soon", "01/04/2025", "2025-13-40"} {
		_, err := itinerary.ParseInstant(raw, time.UTC)
		assert.ErrorIs(t, err, domain.ErrInvalidStartTime, "raw %q", raw)
	}
}

// ---- Sequence --------------------------------------------------------------

func TestSequence_OrdersByStartInstant(t *testing.T) {
	tokyo := mustZone(t, "Asia/Tokyo")
	entries := []domain.ItineraryEntry{
		entry("lunch", "meal", "2025-04-01T13:00", ""),
		entry("museum", "activity", "2025-04-02T08:00", ""),
		entry("temple", "activity", "2025-04-01T09:00", ""),
	}

	ordered, invalid, err := itinerary.Sequence(entries, tokyo, itinerary.ExcludeInvalid)

	require.NoError(t, err)
	assert.Zero(t, invalid)
	assert.Equal(t, []string{"temple", "lunch", "museum"}, titles(ordered))
}

func TestSequence_OrderIndependentOfInput(t *testing.T) {
	// Any permutation of the same items must sequence identically.
	tokyo := mustZone(t, "Asia/Tokyo")
	a := entry("a", "activity", "2025-04-01T09:00", "")
	b := entry("b", "meal", "2025-04-01T13:00", "")
	c := entry("c", "activity", "2025-04-02T08:00", "")

	for _, perm := range [][]domain.ItineraryEntry{
		{a, b, c}, {c, b, a}, {b, c, a}, {b, a, c}, {c, a, b}, {a, c, b},
	} {
		ordered, _, err := itinerary.Sequence(perm, tokyo, itinerary.ExcludeInvalid)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, titles(ordered))
	}
}

func TestSequence_TiesKeepInputOrder(t *testing.T) {
	// Identical start instants must not jitter between calls: the stable
	// sort keeps the fetch order, so the same rows always render the same.
	first := entry("first", "activity", "2025-04-01T09:00", "")
	second := entry("second", "meal", "2025-04-01T09:00", "")
	third := entry("third", "note", "2025-04-01T09:00", "")

	ordered, _, err := itinerary.Sequence(
		[]domain.ItineraryEntry{first, second, third}, time.UTC, itinerary.ExcludeInvalid)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, titles(ordered))
}

func TestSequence_MixedOffsetAndLocalForms(t *testing.T) {
	// A zone-less 09:00 Tokyo start sorts against an explicit-offset
	// timestamp by absolute instant, not by wall clock.
	tokyo := mustZone(t, "Asia/Tokyo")
	local := entry("local", "activity", "2025-04-01T09:00", "")       // 00:00 UTC
	offset := entry("offset", "flight", "2025-03-31T22:00:00Z", "")   // earlier instant
	evening := entry("evening", "meal", "2025-04-01T02:00:00Z", "")   // 11:00 Tokyo

	ordered, _, err := itinerary.Sequence(
		[]domain.ItineraryEntry{local, evening, offset}, tokyo, itinerary.ExcludeInvalid)

	require.NoError(t, err)
	assert.Equal(t, []string{"offset", "local", "evening"}, titles(ordered))
}

func TestSequence_ExcludeInvalidDropsAndCounts(t *testing.T) {
	entries := []domain.ItineraryEntry{
		entry("good", "activity", "2025-04-01T09:00", ""),
		entry("bad", "activity", "whenever", ""),
		entry("also good", "meal", "2025-04-01T13:00", ""),
	}

	ordered, invalid, err := itinerary.Sequence(entries, time.UTC, itinerary.ExcludeInvalid)

	require.NoError(t, err)
	assert.Equal(t, 1, invalid)
	assert.Equal(t, []string{"good", "also good"}, titles(ordered))
}

func TestSequence_FailFastAbortsOnFirstInvalid(t *testing.T) {
	entries := []domain.ItineraryEntry{
		entry("good", "activity", "2025-04-01T09:00", ""),
		entry("bad", "activity", "whenever", ""),
	}

	_, _, err := itinerary.Sequence(entries, time.UTC, itinerary.FailFast)

	assert.ErrorIs(t, err, domain.ErrInvalidStartTime)
}

func TestSequence_UnparsableEndLeavesEndNil(t *testing.T) {
	entries := []domain.ItineraryEntry{
		entry("open-ended", "hotel", "2025-04-01T15:00", "late-ish"),
	}

	ordered, invalid, err := itinerary.Sequence(entries, time.UTC, itinerary.ExcludeInvalid)

	require.NoError(t, err)
	assert.Zero(t, invalid)
	require.Len(t, ordered, 1)
	// A broken end never excludes the item — only starts gate inclusion.
	assert.Nil(t, ordered[0].End)
}

func TestSequence_InputNotMutated(t *testing.T) {
	entries := []domain.ItineraryEntry{
		entry("b", "meal", "2025-04-01T13:00", ""),
		entry("a", "activity", "2025-04-01T09:00", ""),
	}

	_, _, err := itinerary.Sequence(entries, time.UTC, itinerary.ExcludeInvalid)

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, titles(entries))
	assert.True(t, entries[0].Start.IsZero(), "input entries must stay untouched")
}

func TestSequence_Empty(t *testing.T) {
	ordered, invalid, err := itinerary.Sequence(nil, time.UTC, itinerary.ExcludeInvalid)

	require.NoError(t, err)
	assert.Zero(t, invalid)
	assert.Empty(t, ordered)
}
