package httpx

import (
	"encoding/json"
	"net/http"
)

type apiError struct {
	Error            string   `json:"error"`
	ErrorDescription string   `json:"error_description,omitempty"`
	Violations       []string `json:"violations,omitempty"`
	RequestID        string   `json:"request_id,omitempty"`
}

// WriteError responde el envelope JSON estándar de error.
func WriteError(w http.ResponseWriter, status int, code, desc string) {
	WriteErrorViolations(w, status, code, desc, nil)
}

// WriteErrorViolations además adjunta la lista de violaciones de policy
// (orden irrelevante, cualquier subset puede co-ocurrir).
func WriteErrorViolations(w http.ResponseWriter, status int, code, desc string, violations []string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rid := w.Header().Get("X-Request-ID")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiError{
		Error:            code,
		ErrorDescription: desc,
		Violations:       violations,
		RequestID:        rid,
	})
}

// WriteJSON: respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
