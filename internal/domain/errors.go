package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMissingTrip is returned by itinerary aggregation when the anchor trip
// does not exist. Unlike item-level data-quality issues, which become
// warnings on a best-effort view, a missing trip fails the whole operation.
var ErrMissingTrip = errors.New("trip not found")

// ErrInvalidStartTime is returned by the sequencer under the fail-fast policy
// when an item's start time cannot be parsed.
var ErrInvalidStartTime = errors.New("unparsable start time")

// ErrAssistantUnavailable is returned when the assistant feature is called
// but no model API key is configured, or the upstream model call failed.
// Handlers should map this to HTTP 503.
var ErrAssistantUnavailable = errors.New("assistant unavailable")
