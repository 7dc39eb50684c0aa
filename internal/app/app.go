package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/acronyms/internal/config"
	"github.com/MrSnakeDoc/acronyms/internal/httpserver"
	"github.com/MrSnakeDoc/acronyms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
	"github.com/MrSnakeDoc/acronyms/internal/scheduler"
	"github.com/MrSnakeDoc/acronyms/internal/store"
	"github.com/MrSnakeDoc/acronyms/internal/transfer"
	"github.com/MrSnakeDoc/acronyms/internal/utils"
	"github.com/MrSnakeDoc/acronyms/internal/version"
	"github.com/MrSnakeDoc/acronyms/internal/view"
)

// App holds the components every surface shares: the store recovered from
// the configured backend, the view projector and the importer.
type App struct {
	cfg       *config.Config
	logger    logger.Logger
	backend   Backend
	store     *store.Store
	projector *view.Projector
	importer  *transfer.Importer
}

// New opens the backend and recovers the persisted collection. A corrupt
// persisted value is logged and the app starts with an empty collection.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	backend, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	st := store.New(backend, log.Named("store"))
	if err := st.Load(ctx); err != nil && !errors.Is(err, store.ErrCorruptState) {
		utils.CloseLogged(backend, log, "storage")
		return nil, fmt.Errorf("failed to load acronyms: %w", err)
	}

	return &App{
		cfg:       cfg,
		logger:    log,
		backend:   backend,
		store:     st,
		projector: view.NewProjector(parseLocale(cfg.Locale, log)),
		importer: transfer.NewImporter(transfer.ImportOptions{
			Strict:   cfg.ImportStrict,
			Timeout:  cfg.ImportTimeout,
			MaxBytes: cfg.ImportMaxSize,
		}, log.Named("import")),
	}, nil
}

func (a *App) Store() *store.Store          { return a.store }
func (a *App) Projector() *view.Projector   { return a.projector }
func (a *App) Importer() *transfer.Importer { return a.importer }
func (a *App) Config() *config.Config       { return a.cfg }

// Close releases the storage backend.
func (a *App) Close() error {
	return a.backend.Close()
}

// Serve runs the HTTP API (and the backup exporter when configured) until
// SIGINT/SIGTERM or ctx is done, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	a.logger.Infof("🚀 Starting %s on %s", version.String(), a.cfg.ListenAddr)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var backup *scheduler.BackupExporter
	var backupTrigger chan struct{}
	if a.cfg.BackupDir != "" {
		backupTrigger = make(chan struct{}, 1)
		backup = scheduler.NewBackupExporter(
			a.store,
			a.cfg.BackupDir,
			a.logger.Named("backup"),
			a.cfg.BackupInterval,
			backupTrigger,
		)
		if err := backup.Start(ctx); err != nil {
			return fmt.Errorf("failed to start backup exporter: %w", err)
		}
		a.logger.Info("backup exporter started",
			logger.String("dir", a.cfg.BackupDir),
			logger.Duration("interval", a.cfg.BackupInterval))
		defer backup.Stop()
	} else {
		a.logger.Info("backup dir not configured, periodic backups disabled")
	}

	d := deps.Deps{
		Logger:         a.logger,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		AllowedCIDRS:   a.cfg.AllowedCIDRS,
		TrustProxy:     a.cfg.TrustProxy,
		Store:          a.store,
		Projector:      a.projector,
		Importer:       a.importer,
		Storage:        a.cfg.Storage,
		Pinger:         a.backend,
		MaxImportBytes: a.cfg.ImportMaxSize,
		BackupTrigger:  backupTrigger,
	}
	server := httpserver.New(a.cfg.ListenAddr, d)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info("✅ acronyms stopped cleanly")
	return nil
}

func parseLocale(tag string, log logger.Logger) language.Tag {
	t, err := language.Parse(tag)
	if err != nil {
		log.Warn("invalid locale, using root collation",
			logger.String("locale", tag),
			logger.Error(err))
		return language.Und
	}
	return t
}
