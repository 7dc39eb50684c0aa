package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/acronyms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
)

type backupResponse struct {
	Status string `json:"status"`
}

// Backup asks the backup exporter for an immediate run.
func Backup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.BackupTrigger == nil {
			writeError(w, http.StatusNotFound, "backups are disabled")
			return
		}

		select {
		case d.BackupTrigger <- struct{}{}:
			d.Logger.Info("manual backup triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, backupResponse{Status: "triggered"})
		default:
			d.Logger.Warn("backup already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, backupResponse{Status: "already pending"})
		}
	}
}
