package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"calPalAPI/internal/record"
	"calPalAPI/internal/validation"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps service failures onto status codes: validation
// rejections are 400, stable-ID misses are 404, everything else is the
// caller-supplied 500 message.
func respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		respondWithJSON(w, http.StatusBadRequest, map[string]string{
			"error": ve.Message,
			"field": ve.Field,
		})
	case errors.Is(err, record.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	default:
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
