package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dropDatabas3/dotcart/internal/httpx"
)

const maxBodyBytes = 1 << 20

// readJSON decodea el body en dst con campos desconocidos prohibidos.
// Escribe el 400 y devuelve false si el body no sirve.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return false
	}
	return true
}
