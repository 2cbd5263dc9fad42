package server

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status           string `json:"status"`
	LastRefreshEpoch int64  `json:"last_refresh_epoch"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var epoch int64
	if t := s.lastRefresh(); !t.IsZero() {
		epoch = t.Unix()
	}
	resp := healthResponse{
		Status:           "ok",
		LastRefreshEpoch: epoch,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
