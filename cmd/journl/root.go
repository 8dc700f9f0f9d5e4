// ABOUTME: Root command wiring config, logging and the media store.
// ABOUTME: Subcommands share the store opened in PersistentPreRunE.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/harper/journl/internal/config"
	"github.com/harper/journl/internal/ingest"
	"github.com/harper/journl/internal/logging"
	"github.com/harper/journl/internal/mirror"
	"github.com/harper/journl/internal/store"
	"github.com/harper/journl/internal/ui"
	"github.com/spf13/cobra"
)

// skipStore marks commands that run without opening storage.
const skipStore = "journl/skip-store"

var (
	cfg          *config.Config
	logger       *slog.Logger
	mediaStore   *store.Store
	ingestor     *ingest.Ingestor
	mirrorCloser io.Closer

	// configErr holds a config load failure tolerated by skipStore
	// commands, so config init can repair a broken file.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "journl",
	Short: "A journal with image, document and link attachments",
	Long: `journl is a local journal: write an entry in the terminal editor and
attach images, PDF/Word documents and links. Attachments persist to a
single storage key shared by the CLI, the editor and the MCP server.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if mirrorCloser == nil {
			return nil
		}
		err := mirrorCloser.Close()
		mirrorCloser = nil
		if err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)

	rootCmd.PersistentFlags().String("backend", "", "storage backend: file, sqlite or charm")
	rootCmd.PersistentFlags().String("data", "", "data directory (file) or database path (sqlite)")
	rootCmd.PersistentFlags().String("key", "", "storage key holding the attachment list")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		logging.Default().Debug("command failed", logging.ErrAttr(err))
		return err
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		if cmd.Annotations[skipStore] != "true" {
			return fmt.Errorf("failed to load config: %w", err)
		}
		configErr = err
		loaded = config.Default()
	}
	cfg = loaded
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err = logging.Configure(os.Stderr, cfg.LogLevel, !color.NoColor)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	cmd.SetContext(logging.With(cmd.Context(), logger))

	if cmd.Annotations[skipStore] == "true" {
		return nil
	}

	m, closer, err := mirror.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	mirrorCloser = closer
	mediaStore = store.New(cmd.Context(), m)
	ingestor = ingest.New(ingest.WithMaxSize(cfg.MaxAttachmentBytes))

	logger.Debug("storage opened",
		slog.String("backend", cfg.Backend),
		slog.String("path", cfg.ResolvedDataPath()),
		slog.String("key", cfg.StorageKey),
		slog.Int("items", mediaStore.Len()),
	)
	return nil
}

func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	overrides := []struct {
		name string
		dst  *string
	}{
		{"backend", &c.Backend},
		{"data", &c.DataPath},
		{"key", &c.StorageKey},
		{"log-level", &c.LogLevel},
	}
	for _, o := range overrides {
		if !flags.Changed(o.name) {
			continue
		}
		v, err := flags.GetString(o.name)
		if err != nil {
			return err
		}
		*o.dst = v
	}
	return nil
}
