package server

import (
	"encoding/json"
	"net/http"
)

// healthResponse is the JSON shape returned by the health endpoint.
type healthResponse struct {
	Status     string `json:"status"`
	DB         string `json:"db"`
	Backend    string `json:"backend"`
	Migrations int    `json:"migrations_applied"`
}

// handleHealth reports whether the dashboard and its activity database are
// operational. The backend API is reported as configured, not probed: this
// endpoint must stay cheap.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		DB:      "connected",
		Backend: s.cfg.BackendURL,
	}

	if err := s.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "error: " + err.Error()
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	count, err := s.db.MigrationCount()
	if err == nil {
		resp.Migrations = count
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
