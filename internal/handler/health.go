package handler

import "net/http"

// Health reports process liveness. Unauthenticated.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
