package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Transport string `json:"transport"`
}

// HealthHandler responds with a simple status check.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(healthResponse{
		Status:    "ok",
		Service:   s.Config.ServiceName,
		Transport: s.Config.Transport,
	}); err != nil {
		s.Logger.Warn("failed to write health response", zap.Error(err))
	}
}
