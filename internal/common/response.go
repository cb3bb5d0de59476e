package common

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"` // field-level validation messages
	Ref    string            `json:"ref,omitempty"`    // server-side log correlation ID
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithServiceError maps a domain error to its status. Internal
// errors get an opaque body with a reference ID while the cause is only
// logged server-side.
func RespondWithServiceError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)
	if code == http.StatusInternalServerError {
		ref := uuid.NewString()
		slog.Error("internal error", "ref", ref, "error", err)
		RespondWithJSON(w, code, ErrorResponse{Error: "internal server error", Ref: ref})
		return
	}
	RespondWithError(w, code, err.Error())
}

func RespondWithValidationErrors(w http.ResponseWriter, fields map[string]string) {
	RespondWithJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:  ErrValidation.Error(),
		Fields: fields,
	})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func RespondWithText(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(message))
}
