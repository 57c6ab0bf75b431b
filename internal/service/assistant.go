package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nvalette/tripdeck/backend/internal/assistant"
	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/itinerary"
)

// AdvicePort is the one-shot model interface the assistant service depends
// on. Defined here, in the consumer package, so tests can inject a fake
// without any HTTP.
type AdvicePort interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	ExtractDocument(ctx context.Context, mimeType, base64Data string) (assistant.Extraction, error)
}

// ItineraryViewer is the slice of ItineraryService the assistant needs.
type ItineraryViewer interface {
	View(ctx context.Context, userID, tripID uuid.UUID) (domain.ItineraryView, error)
}

// ItemCreator is the slice of ItemService document extraction needs.
type ItemCreator interface {
	Create(ctx context.Context, userID uuid.UUID, item domain.TripItem) (domain.TripItem, error)
}

// AssistantService answers natural-language questions about a trip and
// turns uploaded travel documents into trip items.
//
// port may be nil when no model API key is configured; every call then
// returns domain.ErrAssistantUnavailable.
type AssistantService struct {
	views ItineraryViewer
	items ItemCreator
	port  AdvicePort
}

// NewAssistantService constructs an AssistantService.
func NewAssistantService(views ItineraryViewer, items ItemCreator, port AdvicePort) *AssistantService {
	return &AssistantService{views: views, items: items, port: port}
}

// Ask builds the itinerary context string for the trip, appends the user's
// question, and returns the model's free-text answer. The answer's content
// is never interpreted here.
func (s *AssistantService) Ask(ctx context.Context, userID, tripID uuid.UUID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is required", domain.ErrValidation)
	}
	if s.port == nil {
		return "", fmt.Errorf("service.AssistantService.Ask: %w", domain.ErrAssistantUnavailable)
	}

	view, err := s.views.View(ctx, userID, tripID)
	if err != nil {
		return "", fmt.Errorf("service.AssistantService.Ask: %w", err)
	}

	prompt := itinerary.Summary(view) +
		"\nUser question: " + question +
		"\n\nProvide a helpful, concise response."

	answer, err := s.port.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("service.AssistantService.Ask: %w: %w", domain.ErrAssistantUnavailable, err)
	}
	return answer, nil
}

// ExtractItem runs the document through the model and persists the extracted
// record as a new item on the trip. The model's type and time strings are
// stored verbatim — classification and parsing happen at itinerary read
// time, where bad values become warnings instead of failures.
func (s *AssistantService) ExtractItem(ctx context.Context, userID, tripID uuid.UUID, mimeType, base64Data string) (domain.TripItem, error) {
	if mimeType == "" || base64Data == "" {
		return domain.TripItem{}, fmt.Errorf("%w: mime_type and data are required", domain.ErrValidation)
	}
	if s.port == nil {
		return domain.TripItem{}, fmt.Errorf("service.AssistantService.ExtractItem: %w", domain.ErrAssistantUnavailable)
	}

	ex, err := s.port.ExtractDocument(ctx, mimeType, base64Data)
	if err != nil {
		return domain.TripItem{}, fmt.Errorf("service.AssistantService.ExtractItem: %w: %w", domain.ErrAssistantUnavailable, err)
	}

	item := domain.TripItem{
		TripID:      tripID,
		Category:    ex.Type,
		Title:       ex.Title,
		StartTime:   ex.StartTime,
		EndTime:     ex.EndTime,
		Location:    ex.Location,
		Description: ex.Details,
	}

	created, err := s.items.Create(ctx, userID, item)
	if err != nil {
		return domain.TripItem{}, fmt.Errorf("service.AssistantService.ExtractItem: %w", err)
	}
	return created, nil
}
