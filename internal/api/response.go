package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gyaneshwarpardhi/circuitflow/internal/engine"
)

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "err", err)
	}
}

// errorResponse is the standard error envelope. Status repeats the HTTP
// code inside the body so batch tooling that only captures bodies keeps
// the outcome.
type errorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Status: status, Error: msg})
}

// evalStatus maps evaluation submission errors to HTTP codes: a full queue
// is backpressure (429), a timed-out evaluation is a gateway timeout (504).
func evalStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrQueueFull):
		return http.StatusTooManyRequests
	case errors.Is(err, engine.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
