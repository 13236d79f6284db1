package handlers

import "net/http"

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, "Blog API", http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
