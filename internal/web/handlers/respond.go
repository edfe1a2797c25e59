package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jusunglee/hangulnum/internal/numeral"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// statusForError maps numeral errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, numeral.ErrRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, numeral.ErrType),
		errors.Is(err, numeral.ErrFormat),
		errors.Is(err, numeral.ErrParse),
		errors.Is(err, numeral.ErrConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}
