// Package handler — export.go implements GET /export.
// Returns all of the user's trips and items as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"encoding/csv"
	"net/http"

	"github.com/nvalette/tripdeck/backend/internal/domain"
	"github.com/nvalette/tripdeck/backend/internal/middleware"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "destination", "trip_start_date", "trip_end_date",
	"trip_status", "item_title", "item_category", "item_start", "item_end",
	"item_location", "item_status",
}

// GetExport handles GET /export.
// It returns a flat table of every trip and item combination.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondBadRequest(w, "missing authenticated user")
		return
	}

	rows, err := s.export.Export(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	respondJSON(w, http.StatusOK, exportToJSON(rows))
}

// exportRow is the JSON shape of one export row. Empty item fields are
// omitted so rows for item-less trips stay compact.
type exportRow struct {
	TripID        string `json:"trip_id"`
	TripTitle     string `json:"trip_title"`
	Destination   string `json:"destination"`
	TripStartDate string `json:"trip_start_date"`
	TripEndDate   string `json:"trip_end_date"`
	TripStatus    string `json:"trip_status"`
	ItemTitle     string `json:"item_title,omitempty"`
	ItemCategory  string `json:"item_category,omitempty"`
	ItemStart     string `json:"item_start,omitempty"`
	ItemEnd       string `json:"item_end,omitempty"`
	ItemLocation  string `json:"item_location,omitempty"`
	ItemStatus    string `json:"item_status,omitempty"`
}

// exportToJSON converts domain rows to the typed JSON response.
func exportToJSON(rows []domain.ExportRow) []exportRow {
	out := make([]exportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRow(r))
	}
	return out
}

// writeCSV streams the rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="tripdeck-export.csv"`)

	cw := csv.NewWriter(w)
	//nolint:errcheck — a failed write means the client is gone.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{
			r.TripID, r.TripTitle, r.Destination, r.TripStartDate, r.TripEndDate,
			r.TripStatus, r.ItemTitle, r.ItemCategory, r.ItemStart, r.ItemEnd,
			r.ItemLocation, r.ItemStatus,
		})
	}
	cw.Flush()
}
