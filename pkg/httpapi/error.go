package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/esalabs/controltower/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// StatusFor maps stable error codes onto HTTP statuses. Unknown codes are
// treated as internal failures.
func StatusFor(code string) int {
	switch code {
	case serrors.CodeNotFound:
		return http.StatusNotFound
	case serrors.CodeAlreadyDecided:
		return http.StatusConflict
	case serrors.CodeFieldRequired, serrors.CodeUnrecognized:
		return http.StatusBadRequest
	case serrors.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError renders a typed service failure as its JSON envelope.
func WriteServiceError(w http.ResponseWriter, err error) error {
	code := serrors.Code(err)
	message := "internal server error"
	if code != serrors.CodeInternal {
		message = err.Error()
	}
	return WriteError(w, StatusFor(code), code, message, nil)
}
