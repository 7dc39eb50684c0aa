package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/acronyms/internal/logger"
	"github.com/MrSnakeDoc/acronyms/internal/store"
	"github.com/MrSnakeDoc/acronyms/internal/transfer"
	"github.com/MrSnakeDoc/acronyms/internal/view"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	AllowedCIDRS   []string           // IPs allowed to call mutating endpoints and readyz
	TrustProxy     bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Store          *store.Store       // authoritative acronym collection
	Projector      *view.Projector    // filter + locale-aware ordering for list responses
	Importer       *transfer.Importer // decodes and validates uploaded files
	Storage        string             // backend name, reported by healthz
	Pinger         Pinger             // storage backend health check
	MaxImportBytes int64              // request body cap for /api/import, 0 = no cap
	BackupTrigger  chan struct{}      // channel to trigger a manual backup (nil if backups disabled)
}
