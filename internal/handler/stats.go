package handler

import (
	"net/http"

	"github.com/nvalette/tripdeck/backend/internal/middleware"
)

// GetStats handles GET /stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondBadRequest(w, "missing authenticated user")
		return
	}

	stats, err := s.stats.ForUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
