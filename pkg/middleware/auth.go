package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/configuration"
	"github.com/esalabs/controltower/pkg/httpapi"
)

// Authenticate gates /api routes behind the shared admin secret. The token is
// accepted as a bearer Authorization header or an X-Admin-Token header. The
// reviewer identity comes from the configured actor header and lands in the
// request context for decision attribution.
func Authenticate(conf *configuration.Configuration) mux.MiddlewareFunc {
	if conf == nil {
		conf = configuration.Use()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			if conf.AdminToken != "" && !tokenMatches(r, conf.AdminToken) {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing admin token", nil)
				return
			}

			actor := strings.TrimSpace(r.Header.Get(conf.ActorHeader))
			if actor == "" {
				actor = composables.DefaultActor
			}
			next.ServeHTTP(w, r.WithContext(composables.WithActor(r.Context(), actor)))
		})
	}
}

func tokenMatches(r *http.Request, want string) bool {
	got := strings.TrimSpace(r.Header.Get("X-Admin-Token"))
	if got == "" {
		auth := r.Header.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			got = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
	}
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
