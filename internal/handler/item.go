package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/domain"
)

// itemRequest is the JSON body for creating or updating a trip item.
// Category and time fields are accepted verbatim: they are boundary data and
// the itinerary core decides what they mean at read time.
type itemRequest struct {
	Category           string         `json:"category"`
	Title              string         `json:"title"`
	StartTime          string         `json:"start_time"`
	EndTime            *string        `json:"end_time"`
	Location           *string        `json:"location"`
	Description        *string        `json:"description"`
	Metadata           map[string]any `json:"metadata"`
	CostAmount         *float64       `json:"cost_amount"`
	CostCurrency       *string        `json:"cost_currency"`
	ConfirmationStatus *string        `json:"confirmation_status"`
}

// toDomain converts the request body to a domain.TripItem under tripID.
func (req itemRequest) toDomain(tripID uuid.UUID) domain.TripItem {
	return domain.TripItem{
		TripID:             tripID,
		Category:           req.Category,
		Title:              req.Title,
		StartTime:          req.StartTime,
		EndTime:            derefString(req.EndTime),
		Location:           derefString(req.Location),
		Description:        derefString(req.Description),
		Metadata:           req.Metadata,
		CostAmount:         req.CostAmount,
		CostCurrency:       derefString(req.CostCurrency),
		ConfirmationStatus: derefString(req.ConfirmationStatus),
	}
}

// paginatedItems is the JSON body of a paged item list.
type paginatedItems struct {
	Data       []domain.TripItem `json:"data"`
	Pagination pagination        `json:"pagination"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// CreateItem handles POST /trips/{tripID}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := tripScope(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	created, err := s.items.Create(r.Context(), userID, req.toDomain(tripID))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListItems handles GET /trips/{tripID}/items.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20,
// max=100). The order is storage order; clients wanting the timeline use the
// itinerary endpoint instead.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := tripScope(w, r)
	if !ok {
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	items, total, err := s.items.ListByTripID(r.Context(), userID, tripID, params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, paginatedItems{
		Data: items,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetItem handles GET /trips/{tripID}/items/{itemID}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	userID, tripID, itemID, ok := itemScope(w, r)
	if !ok {
		return
	}

	item, err := s.items.GetByID(r.Context(), userID, tripID, itemID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// UpdateItem handles PUT /trips/{tripID}/items/{itemID}.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, tripID, itemID, ok := itemScope(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	item := req.toDomain(tripID)
	item.ID = itemID

	updated, err := s.items.Update(r.Context(), userID, item)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteItem handles DELETE /trips/{tripID}/items/{itemID}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, tripID, itemID, ok := itemScope(w, r)
	if !ok {
		return
	}

	if err := s.items.Delete(r.Context(), userID, tripID, itemID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// itemScope extends tripScope with the itemID path parameter.
func itemScope(w http.ResponseWriter, r *http.Request) (userID, tripID, itemID uuid.UUID, ok bool) {
	userID, tripID, ok = tripScope(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		respondBadRequest(w, "itemID must be a UUID")
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return userID, tripID, itemID, true
}

// queryInt parses an optional positive integer query parameter.
// Returns nil when absent or malformed, letting defaults apply.
func queryInt(r *http.Request, key string) *int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
