// Package export exposes the invoice preview and export use cases over HTTP.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	appexport "arthakarya/ms_coretax_exporter/internal/application/export"
	coreexport "arthakarya/ms_coretax_exporter/internal/core/export"
	httperrors "arthakarya/ms_coretax_exporter/internal/infrastructure/http"
)

// Handler bridges HTTP traffic with the export application service.
type Handler struct {
	service *appexport.Service
	// companyName is the configured display name shown on the dashboard.
	companyName string
	log         *slog.Logger
}

// NewHandler creates a new export HTTP handler.
func NewHandler(service *appexport.Service, companyName string, log *slog.Logger) *Handler {
	return &Handler{service: service, companyName: companyName, log: log}
}

// ExportRequest represents the request body for exporting invoices.
type ExportRequest struct {
	IDs []string `json:"ids"`
}

// ListResponse represents the preview listing response.
type ListResponse struct {
	Company string              `json:"company"`
	Total   int                 `json:"total"`
	Data    []appexport.Preview `json:"data"`
}

// List handles GET /api/v1/invoices requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	previews, err := h.service.Preview(r.Context())
	if err != nil {
		h.log.Error("failed to load invoice previews", "error", err)
		httperrors.WriteError(w, http.StatusInternalServerError, "Internal server error", []string{"Could not load invoices from the invoicing provider"}, h.log)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, ListResponse{
		Company: h.companyName,
		Total:   len(previews),
		Data:    previews,
	}, h.log)
}

// Export handles POST /api/v1/invoices/export requests. On success the
// response body is the rendered XML document served as a file download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var reqBody ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Validation error", []string{"Request body is not valid JSON"}, h.log)
		return
	}

	result, err := h.service.Export(r.Context(), reqBody.IDs)
	if err != nil {
		h.writeExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(result.XML)); err != nil {
		h.log.Error("failed to write export document", "lot", result.Lot, "error", err)
	}
}

func (h *Handler) writeExportError(w http.ResponseWriter, err error) {
	var verr *coreexport.ValidationError
	switch {
	case errors.As(err, &verr):
		httperrors.WriteError(w, http.StatusUnprocessableEntity, "Validation error", []string{verr.Error()}, h.log)
	case errors.Is(err, coreexport.ErrEmptySelection):
		httperrors.WriteError(w, http.StatusBadRequest, "Validation error", []string{"No invoices selected for export"}, h.log)
	default:
		h.log.Error("export failed", "error", err)
		httperrors.WriteError(w, http.StatusInternalServerError, "Internal server error", []string{"Could not generate the export document"}, h.log)
	}
}
