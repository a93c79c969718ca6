package handler

import (
	"context"
	"net/http"

	"github.com/iho/networth/internal/report"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Collect(ctx context.Context) (*report.Data, error)
}

// ReportHandler serves the rendered report.
type ReportHandler struct {
	reports ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// HTML renders the report as an HTML page. ?format=md returns the markdown.
func (h *ReportHandler) HTML(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.Collect(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build report", err.Error())
		return
	}

	md := report.Markdown(data)
	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(md))
		return
	}

	page, err := report.HTML("Net worth report", md)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
