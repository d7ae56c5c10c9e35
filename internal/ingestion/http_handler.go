package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Handler exposes ingestion as an HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with a POST upload endpoint.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

type uploadResponse struct {
	Message string `json:"message"`
	Report
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	kind := strings.TrimSpace(r.FormValue("entityType"))
	if kind == "" {
		http.Error(w, "entityType is required", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusBadRequest)
		return
	}

	report, err := h.service.Ingest(r.Context(), Request{
		EntityKind: EntityKind(kind),
		FileName:   header.Filename,
		Data:       bytes.NewReader(data),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrUnknownEntityKind) || errors.Is(err, ErrParse) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		Message: fmt.Sprintf("Processed %d records: %d created, %d already existed",
			report.TotalRecords, report.CreatedCount, report.ExistingCount),
		Report: report,
	})
}

// NewClearHandler exposes the administrative clear as a POST endpoint.
// The clear either fully succeeds or fully fails.
func NewClearHandler(service *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := service.ClearAll(r.Context()); err != nil {
			http.Error(w, fmt.Sprintf("failed to clear database: %v", err), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Database cleared successfully"})
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
