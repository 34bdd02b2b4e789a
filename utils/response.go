package utils

import (
	"encoding/json"
	"net/http"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// RespondWithFieldError reports a validation failure scoped to the request
// field it originated from, matching the {"field": "message"} body shape.
func RespondWithFieldError(w http.ResponseWriter, code int, field, msg string) {
	if field == "" {
		RespondWithError(w, code, msg)
		return
	}
	RespondWithJSON(w, code, map[string]string{field: msg})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

type M map[string]interface{}
