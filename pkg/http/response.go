package http

import (
	"encoding/json"
	"net/http"

	apperrors "slotbook/pkg/errors"
)

// ErrorResponse is the wire shape order clients rely on: a plain message,
// optionally accompanied by field details.
type ErrorResponse struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	status := appErr.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}

	resp := ErrorResponse{
		Message: appErr.Message,
		Details: appErr.Details,
	}
	if appErr.Code == apperrors.CodeInternal {
		// Never leak wrapped internals to callers.
		resp = ErrorResponse{Message: "Internal server error"}
	}

	return WriteJSON(w, status, resp)
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
