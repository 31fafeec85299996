package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finbook/ledger-service/internal/config"
)

func gateStatus(t *testing.T, secret, presented string, setHeader bool) (int, bool) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	gate := SchedulerAuth(&config.Config{SchedulerSecret: secret})(next)

	req := httptest.NewRequest(http.MethodPost, "/recurring/run", nil)
	if setHeader {
		req.Header.Set(SecretHeader, presented)
	}
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)
	return rec.Code, reached
}

func TestSchedulerAuthAcceptsMatchingSecret(t *testing.T) {
	code, reached := gateStatus(t, "s3cret", "s3cret", true)
	if code != http.StatusOK || !reached {
		t.Errorf("status = %d, reached = %v; want the trigger invoked", code, reached)
	}
}

func TestSchedulerAuthRejectsWrongSecret(t *testing.T) {
	for _, presented := range []string{"wrong", "s3cre", "s3cret2", ""} {
		code, reached := gateStatus(t, "s3cret", presented, true)
		if code != http.StatusUnauthorized || reached {
			t.Errorf("secret %q: status = %d, reached = %v; want rejection before the trigger", presented, code, reached)
		}
	}
}

func TestSchedulerAuthRejectsMissingHeader(t *testing.T) {
	code, reached := gateStatus(t, "s3cret", "", false)
	if code != http.StatusUnauthorized || reached {
		t.Errorf("status = %d, reached = %v; want rejection when the header is absent", code, reached)
	}
}
