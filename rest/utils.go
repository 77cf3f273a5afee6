package rest

import (
	"encoding/json"
	"net/http"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithValidationError(fields map[string]string, w http.ResponseWriter) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "Validation failed",
		"fields": fields,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// storageError logs the full failure server-side and keeps the client
// response generic.
func (a *App) storageError(w http.ResponseWriter, op string, err error) {
	a.Log.Error("storage failure", "op", op, "error", err)
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}
