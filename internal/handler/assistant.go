package handler

import (
	"net/http"
)

// askRequest is the JSON body for POST /trips/{tripID}/assistant.
type askRequest struct {
	Question string `json:"question"`
}

// askResponse carries the model's free-text answer.
type askResponse struct {
	Answer string `json:"answer"`
}

// AskAssistant handles POST /trips/{tripID}/assistant.
func (s *Server) AskAssistant(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := tripScope(w, r)
	if !ok {
		return
	}

	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	answer, err := s.assistant.Ask(r.Context(), userID, tripID, req.Question)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, askResponse{Answer: answer})
}

// documentRequest is the JSON body for POST /trips/{tripID}/documents.
// Data is the base64-encoded document; MimeType tells the model what it is.
type documentRequest struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// ExtractDocument handles POST /trips/{tripID}/documents.
// The extracted record is stored as a new item and returned with 201.
func (s *Server) ExtractDocument(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := tripScope(w, r)
	if !ok {
		return
	}

	var req documentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	item, err := s.assistant.ExtractItem(r.Context(), userID, tripID, req.MimeType, req.Data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}
