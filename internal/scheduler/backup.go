package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
	"github.com/MrSnakeDoc/acronyms/internal/transfer"
)

// Source supplies the records to back up.
type Source interface {
	All() []domain.Acronym
}

// BackupExporter periodically writes the collection to
// <dir>/MasterAcronym.txt, and on demand through its trigger channel.
type BackupExporter struct {
	source        Source
	dir           string
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
	done          chan struct{}
	started       atomic.Bool

	mu       sync.Mutex
	lastRun  time.Time
	lastPath string
}

// NewBackupExporter creates a backup exporter. manualTrigger may be nil.
func NewBackupExporter(
	source Source,
	dir string,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *BackupExporter {
	return &BackupExporter{
		source:        source,
		dir:           dir,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		done:          make(chan struct{}),
	}
}

// Start writes a first backup immediately, then keeps exporting every
// interval until Stop or ctx is done.
func (b *BackupExporter) Start(ctx context.Context) error {
	if b.interval <= 0 {
		return fmt.Errorf("backup interval must be > 0, got %v", b.interval)
	}
	if err := b.Run(); err != nil {
		return fmt.Errorf("initial backup failed: %w", err)
	}

	ticker := time.NewTicker(b.interval)
	b.started.Store(true)
	go func() {
		defer close(b.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.runLogged()
			case <-b.manualTrigger:
				b.logger.Info("manual backup triggered")
				b.runLogged()
			case <-b.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop ends the loop and waits for it to exit. Safe to call more than once.
func (b *BackupExporter) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
	if b.started.Load() {
		<-b.done
	}
}

// Run exports once.
func (b *BackupExporter) Run() error {
	records := b.source.All()
	path, err := transfer.Export(records, b.dir)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.lastRun = time.Now()
	b.lastPath = path
	b.mu.Unlock()

	b.logger.Info("backup written",
		logger.String("path", path),
		logger.Int("count", len(records)))
	return nil
}

// LastRun returns when the last successful backup finished and where it went.
func (b *BackupExporter) LastRun() (time.Time, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRun, b.lastPath
}

func (b *BackupExporter) runLogged() {
	if err := b.Run(); err != nil {
		b.logger.Error("failed to write backup",
			logger.String("dir", b.dir),
			logger.Error(err))
	}
}
