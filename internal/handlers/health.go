package handlers

import "net/http"

// HealthHandler reports service liveness at the root path.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}
