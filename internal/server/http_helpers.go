package server

import (
	"encoding/json"
	"io"
	"net/http"

	"puzzle-week/internal/event"

	"github.com/rs/zerolog/log"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeDomainError maps the error taxonomy to status codes. Conflict
// carries the stored attempt state in the body so the client can lock
// with the authoritative score.
func writeDomainError(w http.ResponseWriter, err error, conflictBody any) {
	switch {
	case event.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case event.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case event.IsConflict(err):
		if conflictBody != nil {
			writeJSON(w, http.StatusConflict, conflictBody)
			return
		}
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
