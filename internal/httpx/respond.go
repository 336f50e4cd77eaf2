package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Message writes a JSON body with a single human-readable message field.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error writes the failure response for err: a {message} body at the status
// StatusOf reports, with the raw error string attached on 500s.
func Error(w http.ResponseWriter, err error, msg string) {
	status := StatusOf(err)
	body := map[string]any{"message": msg}
	if status == http.StatusInternalServerError {
		body["error"] = err.Error()
	}
	JSON(w, status, body)
}
