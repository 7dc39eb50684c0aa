package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/acronyms/internal/config"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
	"github.com/MrSnakeDoc/acronyms/internal/store"
	"github.com/MrSnakeDoc/acronyms/internal/store/sqlite"
	"github.com/MrSnakeDoc/acronyms/internal/transfer"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "acronyms.db")
	cfg.ListenAddr = "127.0.0.1:0"
	return cfg
}

func TestNewRecoversPersistedState(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	a, err := New(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	rec, err := a.Store().Add(ctx, "API", "Application Programming Interface")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	a, err = New(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	defer a.Close()

	got, ok := a.Store().Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, "API", got.Acronym)
}

func TestNewToleratesCorruptState(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	kv, err := sqlite.Open(cfg.SQLitePath)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, store.Key, []byte("{not json")))
	require.NoError(t, kv.Close())

	a, err := New(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	defer a.Close()
	assert.Zero(t, a.Store().Len())
}

func TestOpenBackendMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Storage = config.StorageMemory

	b, err := OpenBackend(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, b.Ping(context.Background()))
	require.NoError(t, b.Close())
}

func TestOpenBackendErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Storage = "mongodb"
	_, err := OpenBackend(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Storage = config.StorageRedis
	_, err = OpenBackend(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err, "redis without an address must fail")
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, "sv", parseLocale("sv", logger.NewNop()).String())
	assert.Equal(t, language.Und, parseLocale("not a locale!", logger.NewNop()))
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.BackupDir = t.TempDir()
	cfg.BackupInterval = time.Hour

	a, err := New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	// The backup exporter writes its first file before the server starts.
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(cfg.BackupDir, transfer.FileName))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
