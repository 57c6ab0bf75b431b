package handler

import (
	"net/http"
)

// GetItinerary handles GET /trips/{tripID}/itinerary.
// It returns the ordered, classified, best-effort view of the trip's items.
// Data-quality issues ride along as warnings; only a missing trip is a 404.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := tripScope(w, r)
	if !ok {
		return
	}

	view, err := s.itineraries.View(r.Context(), userID, tripID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
