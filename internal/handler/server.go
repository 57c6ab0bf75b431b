// Package handler implements the HTTP handlers for the Tripdeck API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (trip.go, item.go, itinerary.go, ...) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// ItemServicer defines the business operations the item handlers depend on.
type ItemServicer interface {
	Create(ctx context.Context, userID uuid.UUID, item domain.TripItem) (domain.TripItem, error)
	GetByID(ctx context.Context, userID, tripID, itemID uuid.UUID) (domain.TripItem, error)
	ListByTripID(ctx context.Context, userID, tripID uuid.UUID, p domain.PaginationParams) ([]domain.TripItem, int64, error)
	Update(ctx context.Context, userID uuid.UUID, item domain.TripItem) (domain.TripItem, error)
	Delete(ctx context.Context, userID, tripID, itemID uuid.UUID) error
}

// ItineraryViewer builds the itinerary view for one trip.
type ItineraryViewer interface {
	View(ctx context.Context, userID, tripID uuid.UUID) (domain.ItineraryView, error)
}

// AssistantServicer answers trip questions and extracts items from documents.
type AssistantServicer interface {
	Ask(ctx context.Context, userID, tripID uuid.UUID, question string) (string, error)
	ExtractItem(ctx context.Context, userID, tripID uuid.UUID, mimeType, base64Data string) (domain.TripItem, error)
}

// StatsServicer computes the travel analytics view.
type StatsServicer interface {
	ForUser(ctx context.Context, userID uuid.UUID) (domain.TravelStats, error)
}

// ExportServicer assembles the flat data export.
type ExportServicer interface {
	Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error)
}

// Server implements all API endpoints.
// Wire it in main.go via Routes. Methods are in resource-specific files but
// all operate on this struct.
type Server struct {
	trips       TripServicer
	items       ItemServicer
	itineraries ItineraryViewer
	assistant   AssistantServicer
	stats       StatsServicer
	export      ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, items ItemServicer, itineraries ItineraryViewer,
	assistant AssistantServicer, stats StatsServicer, export ExportServicer) *Server {
	return &Server{
		trips:       trips,
		items:       items,
		itineraries: itineraries,
		assistant:   assistant,
		stats:       stats,
		export:      export,
	}
}

// Routes registers every endpoint on a new chi router.
// The caller applies global middleware (logging, CORS, auth) around it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Get("/itinerary", s.GetItinerary)
			r.Post("/assistant", s.AskAssistant)
			r.Post("/documents", s.ExtractDocument)

			r.Route("/items", func(r chi.Router) {
				r.Get("/", s.ListItems)
				r.Post("/", s.CreateItem)
				r.Get("/{itemID}", s.GetItem)
				r.Put("/{itemID}", s.UpdateItem)
				r.Delete("/{itemID}", s.DeleteItem)
			})
		})
	})

	r.Get("/stats", s.GetStats)
	r.Get("/export", s.GetExport)

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
