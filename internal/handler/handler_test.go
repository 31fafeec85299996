package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbook/ledger-service/internal/models"
	"github.com/finbook/ledger-service/internal/service"
)

type stubRunner struct {
	got    time.Time
	result *models.RunResult
	err    error
}

func (s *stubRunner) RunRecurring(_ context.Context, referenceDate time.Time) (*models.RunResult, error) {
	s.got = referenceDate
	return s.result, s.err
}

func TestRunRecurringHonorsDateOverride(t *testing.T) {
	stub := &stubRunner{result: &models.RunResult{ReferenceDate: "2025-11-05", RulesConsidered: 2, TransactionsCreated: 2, RulesAdvanced: 2}}
	h := NewHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/recurring/run?date=2025-11-05", nil)
	rec := httptest.NewRecorder()
	h.RunRecurring(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	if !stub.got.Equal(want) {
		t.Errorf("runner received %s, want the override %s", stub.got, want)
	}

	var body models.RunResult
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if body != *stub.result {
		t.Errorf("summary = %+v, want %+v", body, *stub.result)
	}
}

func TestRunRecurringDefaultsToToday(t *testing.T) {
	stub := &stubRunner{result: &models.RunResult{}}
	h := NewHandler(stub)

	before := time.Now().UTC()
	req := httptest.NewRequest(http.MethodPost, "/recurring/run", nil)
	rec := httptest.NewRecorder()
	h.RunRecurring(rec, req)
	after := time.Now().UTC()

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.got.Before(before) || stub.got.After(after) {
		t.Errorf("runner received %s, want a current UTC time", stub.got)
	}
}

func TestRunRecurringRejectsMalformedDate(t *testing.T) {
	stub := &stubRunner{result: &models.RunResult{}}
	h := NewHandler(stub)

	for _, raw := range []string{"05-11-2025", "2025-13-01", "yesterday"} {
		req := httptest.NewRequest(http.MethodPost, "/recurring/run?date="+raw, nil)
		rec := httptest.NewRecorder()
		h.RunRecurring(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("date %q: status = %d, want 400", raw, rec.Code)
		}
		if !stub.got.IsZero() {
			t.Errorf("date %q: runner invoked with %s despite malformed date", raw, stub.got)
		}
	}
}

func TestRunRecurringReportsContention(t *testing.T) {
	h := NewHandler(&stubRunner{err: service.ErrRunInProgress})

	req := httptest.NewRequest(http.MethodPost, "/recurring/run", nil)
	rec := httptest.NewRecorder()
	h.RunRecurring(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 for an in-progress run", rec.Code)
	}
}

func TestRunRecurringReportsRunFailure(t *testing.T) {
	h := NewHandler(&stubRunner{err: errors.New("failed to list due rules")})

	req := httptest.NewRequest(http.MethodPost, "/recurring/run", nil)
	rec := httptest.NewRecorder()
	h.RunRecurring(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for a failed run", rec.Code)
	}
}
