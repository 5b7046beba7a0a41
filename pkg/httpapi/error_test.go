package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esalabs/controltower/pkg/httpapi"
	"github.com/esalabs/controltower/pkg/serrors"
)

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusNotFound, httpapi.StatusFor(serrors.CodeNotFound))
	require.Equal(t, http.StatusConflict, httpapi.StatusFor(serrors.CodeAlreadyDecided))
	require.Equal(t, http.StatusBadRequest, httpapi.StatusFor(serrors.CodeFieldRequired))
	require.Equal(t, http.StatusBadRequest, httpapi.StatusFor(serrors.CodeUnrecognized))
	require.Equal(t, http.StatusServiceUnavailable, httpapi.StatusFor(serrors.CodeStoreUnavailable))
	require.Equal(t, http.StatusInternalServerError, httpapi.StatusFor("SOMETHING_ELSE"))
}

func TestWriteServiceError(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, httpapi.WriteServiceError(rec, serrors.NewAlreadyDecidedError("change request")))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, serrors.CodeAlreadyDecided, envelope.Code)
	require.Contains(t, envelope.Message, "already decided")
}

func TestWriteServiceError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, httpapi.WriteServiceError(rec, assertErr{}))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal server error")
	require.NotContains(t, rec.Body.String(), "secret")
}

type assertErr struct{}

func (assertErr) Error() string { return "secret database dsn" }
