package server

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/civicdataworks/lane-swim-tracker/snapshot"
)

type errorPayload struct {
	Error string `json:"error"`
}

// handlePools answers the time-window query. Both bounds are optional,
// naive local timestamps at second precision; simple switches to the
// reduced projection.
func (s *Server) handlePools(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query()
	lower, err := parseBound(q.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date: expected "+snapshot.TimeLayout)
		return
	}
	upper, err := parseBound(q.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date: expected "+snapshot.TimeLayout)
		return
	}
	simple := parseFlag(q.Get("simple"))

	facilities, err := s.store.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// No refresh has completed yet; an empty result, not a failure.
			facilities = nil
		} else {
			s.logger.Error().Err(err).Msg("snapshot load failed")
			writeError(w, http.StatusInternalServerError, "snapshot unavailable")
			return
		}
	}

	matched := snapshot.Query(facilities, lower, upper)
	if simple {
		writeJSON(w, snapshot.Simplify(matched, lower, upper))
		return
	}
	writeJSON(w, matched)
}

func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := snapshot.ParseTimestamp(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseFlag(s string) bool {
	if s == "" {
		return false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return v
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorPayload{Error: msg})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	_ = json.NewEncoder(w).Encode(v)
}
