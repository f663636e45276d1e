package api

import (
	"crypto/subtle"
	"net/http"
)

const secretHeader = "X-VAPI-SECRET"

// SecretMiddleware rejects requests whose shared-secret header doesn't match
// the configured value. Nothing downstream runs on a mismatch.
func (api *API) SecretMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(secretHeader)

		if api.cfg.Secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(api.cfg.Secret)) != 1 {
			writeError(w, http.StatusUnauthorized, reasonUnauthorized)

			return
		}

		next.ServeHTTP(w, r)
	})
}
