package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes {"error": msg} with status. Used where the request never
// reaches a handler.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
