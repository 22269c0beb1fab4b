// cmd/meme/root.go
package main

import (
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"go-meme-generator/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	settings config.Settings
	logger   *zap.Logger
)

// rootCmd без подкоманды запускает редактор
var rootCmd = &cobra.Command{
	Use:   "meme",
	Short: "Meme compositor: text layers over a template, exported as PNG",
	Long: `Meme compositor with a desktop editor and a headless exporter.

Run without arguments to open the editor window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.LoadSettings(configPath)
		if err != nil {
			return err
		}

		logger, err = newLogger(settings.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if settings.PprofAddr != "" {
			go func() {
				err := http.ListenAndServe(settings.PprofAddr, nil)
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Warn("pprof server stopped", zap.Error(err))
				}
			}()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runEdit,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "meme.yaml", "path to the YAML settings file (missing file is fine)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(editCmd, exportCmd)
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
