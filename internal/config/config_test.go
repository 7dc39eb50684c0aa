package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACRONYMS_CONFIG_FILE", "")
	t.Setenv("ACRONYMS_STORAGE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("Storage = %q, want sqlite", cfg.Storage)
	}
	if !cfg.ImportStrict {
		t.Error("ImportStrict should default to true")
	}
	if cfg.BackupDir != "" {
		t.Errorf("BackupDir = %q, backups should be disabled by default", cfg.BackupDir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ACRONYMS_LISTEN_ADDR", ":9090")
	t.Setenv("ACRONYMS_STORAGE", "REDIS")
	t.Setenv("ACRONYMS_REDIS_ADDR", "localhost:6379")
	t.Setenv("ACRONYMS_REDIS_DB", "3")
	t.Setenv("ACRONYMS_IMPORT_STRICT", "false")
	t.Setenv("ACRONYMS_IMPORT_TIMEOUT", "30s")
	t.Setenv("ACRONYMS_ALLOWED_CIDRS", `"10.0.0.0/8", 127.0.0.1`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090", cfg.ListenAddr)
	}
	if cfg.Storage != StorageRedis {
		t.Errorf("Storage = %q, want redis", cfg.Storage)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.RedisDB)
	}
	if cfg.ImportStrict {
		t.Error("ImportStrict should be false")
	}
	if cfg.ImportTimeout != 30*time.Second {
		t.Errorf("ImportTimeout = %v, want 30s", cfg.ImportTimeout)
	}
	want := []string{"10.0.0.0/8", "127.0.0.1"}
	if !reflect.DeepEqual(cfg.AllowedCIDRS, want) {
		t.Errorf("AllowedCIDRS = %v, want %v", cfg.AllowedCIDRS, want)
	}
}

func TestRedisTimeoutsUseProjectPrefix(t *testing.T) {
	t.Setenv("ACRONYMS_CONFIG_FILE", "")
	t.Setenv("ACRONYMS_STORAGE", "")
	t.Setenv("ACRONYMS_REDIS_DIAL_TIMEOUT", "7s")
	t.Setenv("ACRONYMS_REDIS_PING_TIMEOUT", "9s")
	t.Setenv("ACRONYMS_REDIS_MAX_WAIT", "11s")
	t.Setenv("REDIS_READ_TIMEOUT", "42s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RedisDialTimeout != 7*time.Second || cfg.RedisPingTimeout != 9*time.Second || cfg.RedisMaxWait != 11*time.Second {
		t.Errorf("redis timeouts = %v/%v/%v, want 7s/9s/11s",
			cfg.RedisDialTimeout, cfg.RedisPingTimeout, cfg.RedisMaxWait)
	}
	if cfg.RedisReadTimeout != Default().RedisReadTimeout {
		t.Errorf("RedisReadTimeout = %v, unprefixed REDIS_READ_TIMEOUT must be ignored", cfg.RedisReadTimeout)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acronyms.yaml")
	content := `
listen_addr: ":7000"
storage: memory
locale: fr
backup_dir: /tmp/backups
backup_interval: 15m
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("ACRONYMS_CONFIG_FILE", path)
	t.Setenv("ACRONYMS_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ListenAddr != ":7000" || cfg.Storage != StorageMemory || cfg.Locale != "fr" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.BackupInterval != 15*time.Minute {
		t.Errorf("BackupInterval = %v, want 15m", cfg.BackupInterval)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, env should override file", cfg.LogLevel)
	}
	// Untouched keys keep their defaults.
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default 5s", cfg.ShutdownTimeout)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Setenv("ACRONYMS_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("Load() with missing file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("listen_addr: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("ACRONYMS_CONFIG_FILE", bad)
	if _, err := Load(); err == nil {
		t.Error("Load() with invalid yaml should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"memory", func(c *Config) { c.Storage = StorageMemory }, false},
		{"unknown backend", func(c *Config) { c.Storage = "mongodb" }, true},
		{"postgres without dsn", func(c *Config) { c.Storage = StoragePostgres }, true},
		{"postgres", func(c *Config) { c.Storage = StoragePostgres; c.PostgresDSN = "postgres://localhost/acronyms" }, false},
		{"redis without addr", func(c *Config) { c.Storage = StorageRedis }, true},
		{"sqlite without path", func(c *Config) { c.SQLitePath = "" }, true},
		{"backup without interval", func(c *Config) { c.BackupDir = "/tmp"; c.BackupInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("TEST_BAD_DURATION", "soon")
	t.Setenv("TEST_BAD_BOOL", "maybe")
	t.Setenv("TEST_BAD_INT", "many")

	if got := mustDuration("TEST_BAD_DURATION", time.Second); got != time.Second {
		t.Errorf("mustDuration() = %v, want default", got)
	}
	if got := mustBool("TEST_BAD_BOOL", true); !got {
		t.Errorf("mustBool() = %v, want default", got)
	}
	if got := getenvInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("getenvInt() = %v, want default", got)
	}
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.RedisPassword = "hunter2"
	cfg.PostgresDSN = "postgres://u:hunter2@db/acronyms"
	if got := cfg.Redacted().RedisPassword; got == "hunter2" {
		t.Error("Redacted() leaked the password")
	}
	if got := cfg.Redacted().PostgresDSN; got == cfg.PostgresDSN {
		t.Error("Redacted() leaked the postgres DSN")
	}
	if cfg.RedisPassword != "hunter2" {
		t.Error("Redacted() modified the original")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadDotEnv() on a missing file = %v, want nil", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "ACRONYMS_TEST_DOTENV=from-file\nACRONYMS_TEST_DOTENV_KEEP=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("ACRONYMS_TEST_DOTENV", "")
	os.Unsetenv("ACRONYMS_TEST_DOTENV")
	t.Setenv("ACRONYMS_TEST_DOTENV_KEEP", "from-env")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	defer os.Unsetenv("ACRONYMS_TEST_DOTENV")

	if got := os.Getenv("ACRONYMS_TEST_DOTENV"); got != "from-file" {
		t.Errorf("ACRONYMS_TEST_DOTENV = %q, want from-file", got)
	}
	if got := os.Getenv("ACRONYMS_TEST_DOTENV_KEEP"); got != "from-env" {
		t.Errorf("ACRONYMS_TEST_DOTENV_KEEP = %q, existing env must win", got)
	}
}
