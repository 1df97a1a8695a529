// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blocboard/blocboard/internal/adapters/facts"
	"github.com/blocboard/blocboard/internal/domain/standings"
)

// ReportHandler handles competition report requests.
type ReportHandler struct {
	deps          Dependencies
	maxPodiumSize int
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps Dependencies, maxPodiumSize int) *ReportHandler {
	return &ReportHandler{
		deps:          deps,
		maxPodiumSize: maxPodiumSize,
	}
}

// HandleGetReport handles
// GET /competitions/{competitionID}/report?division_id=X&podium_size=N.
//
// podium_size is optional; 0 lets the engine apply its default. A division
// filter that does not belong to the competition yields a report with an
// empty division list and status 200.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "competitionID")
	if competitionID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	divisionID := r.URL.Query().Get("division_id")

	podiumSize := 0
	if raw := r.URL.Query().Get("podium_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request",
				fmt.Errorf("%w: podium_size must be a positive integer", ErrBadRequest))
			return
		}
		if n > h.maxPodiumSize {
			writeError(w, http.StatusBadRequest, "podium_size_exceeded",
				fmt.Errorf("%w: podium_size above %d", ErrBadRequest, h.maxPodiumSize))
			return
		}
		podiumSize = n
	}

	report, err := h.deps.ComputeCompetitionReport(r.Context(), competitionID, divisionID, podiumSize)
	if err != nil {
		switch {
		case errors.Is(err, standings.ErrCompetitionNotFound):
			writeError(w, http.StatusNotFound, "not_found", err)
		case errors.Is(err, facts.ErrUnavailable):
			writeError(w, http.StatusServiceUnavailable, "fact_source_unavailable", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}
