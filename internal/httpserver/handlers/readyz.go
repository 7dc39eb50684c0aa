package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/acronyms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
)

const readyzPingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports whether the storage backend answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyzPingTimeout)
			defer cancel()
			if err := d.Pinger.Ping(ctx); err != nil {
				d.Logger.Warn("storage not ready",
					logger.String("storage", d.Storage),
					logger.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Error: "storage unreachable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
