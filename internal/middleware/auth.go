package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/finbook/ledger-service/internal/config"
	"github.com/gorilla/mux"
)

// SecretHeader carries the pre-shared scheduler secret
const SecretHeader = "X-Scheduler-Secret"

// SchedulerAuth gates the scheduler trigger behind a pre-shared secret.
// Both sides are compared as sha256 digests in constant time, so neither
// the secret length nor a prefix match leaks through response timing. An
// absent header compares as the empty string and is rejected.
func SchedulerAuth(cfg *config.Config) mux.MiddlewareFunc {
	want := sha256.Sum256([]byte(cfg.SchedulerSecret))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := sha256.Sum256([]byte(r.Header.Get(SecretHeader)))
			if subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
