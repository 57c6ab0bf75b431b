package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/middleware"
)

// tripRequest is the JSON body for creating or updating a trip.
// Dates are "2006-01-02" strings; optional fields are pointers so absent
// keys are distinguishable from empty strings.
type tripRequest struct {
	Title              string  `json:"title"`
	DestinationCity    string  `json:"destination_city"`
	DestinationCountry string  `json:"destination_country"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	Timezone           *string `json:"timezone"`
	CoverImageURL      *string `json:"cover_image_url"`
	Status             *string `json:"status"`
}

// toDomain converts the request body to a domain.Trip owned by userID.
// Malformed dates are reported as a 400-worthy error string.
func (req tripRequest) toDomain(userID uuid.UUID) (domain.Trip, string) {
	trip := domain.Trip{
		UserID:             userID,
		Title:              req.Title,
		DestinationCity:    req.DestinationCity,
		DestinationCountry: req.DestinationCountry,
		Timezone:           derefString(req.Timezone),
		CoverImageURL:      derefString(req.CoverImageURL),
		Status:             domain.TripStatus(derefString(req.Status)),
	}

	var err error
	if req.StartDate != "" {
		if trip.StartDate, err = time.Parse("2006-01-02", req.StartDate); err != nil {
			return domain.Trip{}, "start_date must be formatted as 2006-01-02"
		}
	}
	if req.EndDate != "" {
		if trip.EndDate, err = time.Parse("2006-01-02", req.EndDate); err != nil {
			return domain.Trip{}, "end_date must be formatted as 2006-01-02"
		}
	}
	return trip, ""
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondBadRequest(w, "missing authenticated user")
		return
	}

	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	trip, msg := req.toDomain(userID)
	if msg != "" {
		respondBadRequest(w, msg)
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondBadRequest(w, "missing authenticated user")
		return
	}

	trips, err := s.trips.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := tripScope(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), userID, tripID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := tripScope(w, r)
	if !ok {
		return
	}

	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	trip, msg := req.toDomain(userID)
	if msg != "" {
		respondBadRequest(w, msg)
		return
	}
	trip.ID = tripID

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := tripScope(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), userID, tripID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// tripScope extracts the authenticated user and the tripID path parameter,
// writing the appropriate 4xx itself when either is missing.
func tripScope(w http.ResponseWriter, r *http.Request) (userID, tripID uuid.UUID, ok bool) {
	userID, ok = middleware.UserID(r.Context())
	if !ok {
		respondBadRequest(w, "missing authenticated user")
		return uuid.Nil, uuid.Nil, false
	}
	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		respondBadRequest(w, "tripID must be a UUID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, tripID, true
}

// derefString safely dereferences a *string, returning "" when nil.
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
