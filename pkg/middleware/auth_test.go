package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/configuration"
)

func newAuthConf(token string) *configuration.Configuration {
	return &configuration.Configuration{
		AdminToken:  token,
		ActorHeader: "X-Actor",
	}
}

func authHandler(t *testing.T, gotActor *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotActor = composables.UseActor(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_RejectsMissingToken(t *testing.T) {
	var actor string
	handler := Authenticate(newAuthConf("s3cret"))(authHandler(t, &actor))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/change-requests", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuthenticate_RejectsWrongToken(t *testing.T) {
	var actor string
	handler := Authenticate(newAuthConf("s3cret"))(authHandler(t, &actor))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/kpi", nil)
	req.Header.Set("X-Admin-Token", "nope")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_AcceptsBearerToken(t *testing.T) {
	var actor string
	handler := Authenticate(newAuthConf("s3cret"))(authHandler(t, &actor))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/kpi", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	req.Header.Set("X-Actor", "reviewer-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "reviewer-1", actor)
}

func TestAuthenticate_DefaultsActor(t *testing.T) {
	var actor string
	handler := Authenticate(newAuthConf("s3cret"))(authHandler(t, &actor))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/kpi", nil)
	req.Header.Set("X-Admin-Token", "s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, composables.DefaultActor, actor)
}

func TestAuthenticate_SkipsNonAPIRoutes(t *testing.T) {
	var actor string
	handler := Authenticate(newAuthConf("s3cret"))(authHandler(t, &actor))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
