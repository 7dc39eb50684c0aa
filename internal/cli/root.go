// Package cli is the acronyms command line: one cobra command per store,
// view and transfer operation, plus serve.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/acronyms/internal/app"
	"github.com/MrSnakeDoc/acronyms/internal/config"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
)

// skipAppAnnotation marks commands that run without opening storage.
const skipAppAnnotation = "acronyms/skip-app"

// options carries global flags and the state PersistentPreRunE sets up.
type options struct {
	configFile string
	envFile    string
	storage    string
	sqlitePath string
	logLevel   string
	locale     string
	noColor    bool

	cfg    *config.Config
	logger logger.Logger
	app    *app.App
}

// Execute runs the command line with os.Args and releases storage
// afterwards, whether or not the command failed.
func Execute(ctx context.Context) error {
	o := &options{}
	err := newRootCmd(o).ExecuteContext(ctx)
	return errors.Join(err, o.close())
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "acronyms",
		Short: "Keep a personal list of acronyms",
		Long: `acronyms keeps a personal list of acronyms and what they stand for.

Entries can be searched, sorted, exported to MasterAcronym.txt and
imported back, from the command line or through the HTTP API (serve).`,
		PersistentPreRunE: o.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	f := root.PersistentFlags()
	f.StringVar(&o.configFile, "config", "", "YAML config file (default $ACRONYMS_CONFIG_FILE)")
	f.StringVar(&o.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	f.StringVar(&o.storage, "storage", "", "storage backend: sqlite, redis, postgres or memory")
	f.StringVar(&o.sqlitePath, "sqlite-path", "", "sqlite database file")
	f.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&o.locale, "locale", "", "BCP 47 locale used to sort acronyms")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newServeCmd(o),
		newAddCmd(o),
		newEditCmd(o),
		newDeleteCmd(o),
		newListCmd(o),
		newExportCmd(o),
		newImportCmd(o),
		newVersionCmd(),
	)
	return root
}

func (o *options) setup(cmd *cobra.Command, _ []string) error {
	if o.noColor {
		color.NoColor = true
	}
	if cmd.Annotations[skipAppAnnotation] == "true" || cmd.Name() == "help" {
		return nil
	}

	if o.envFile != "" {
		if err := config.LoadDotEnv(o.envFile); err != nil {
			return err
		}
	}

	path := o.configFile
	if path == "" {
		path = os.Getenv("ACRONYMS_CONFIG_FILE")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := o.applyFlags(cfg); err != nil {
		return err
	}
	o.cfg = cfg

	// Only serve is chatty by default; other commands keep stderr quiet.
	level := o.logLevel
	if level == "" {
		level = "warn"
		if cmd.Name() == "serve" {
			level = cfg.LogLevel
		}
	}
	o.logger, err = logger.New(level, cfg.PrettyLog)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	o.logger.Debugf("config loaded: %+v", cfg.Redacted())

	o.app, err = app.New(cmd.Context(), cfg, o.logger)
	if err != nil {
		return err
	}
	return nil
}

func (o *options) applyFlags(cfg *config.Config) error {
	if o.storage != "" {
		cfg.Storage = o.storage
	}
	if o.sqlitePath != "" {
		cfg.SQLitePath = o.sqlitePath
	}
	if o.locale != "" {
		cfg.Locale = o.locale
	}
	return cfg.Validate()
}

func (o *options) close() error {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
	if o.app == nil {
		return nil
	}
	err := o.app.Close()
	o.app = nil
	if err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
