package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/finbook/ledger-service/internal/models"
	"github.com/finbook/ledger-service/internal/service"
)

// RecurringRunner executes one scheduler run against a reference date
type RecurringRunner interface {
	RunRecurring(ctx context.Context, referenceDate time.Time) (*models.RunResult, error)
}

type Handler struct {
	svc RecurringRunner
}

func NewHandler(svc RecurringRunner) *Handler {
	return &Handler{svc: svc}
}

// RunRecurring handles the "run now" trigger. The optional date query
// parameter (YYYY-MM-DD) overrides the reference date for backfill and
// testing; otherwise the run uses today in UTC.
func (h *Handler) RunRecurring(w http.ResponseWriter, r *http.Request) {
	referenceDate := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid date %q, want YYYY-MM-DD", raw), http.StatusBadRequest)
			return
		}
		referenceDate = parsed
	}

	result, err := h.svc.RunRecurring(r.Context(), referenceDate)
	if err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			http.Error(w, "A recurring run is already in progress", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Recurring run failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
