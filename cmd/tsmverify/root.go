package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	tsm "github.com/tphakala/go-audio-tsm"
	"github.com/tphakala/go-audio-tsm/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "tsmverify",
		Short: "Verify a streaming time-scale modification engine",
		Long: `Verify a streaming time-scale modification engine.

Scenarios compress synthetic tones, noise and reference recordings through
the streaming engine and check output length, spectral content and
mono/stereo equivalence against configured tolerances.

Example configuration (verify.yaml):
  log_level: debug
  scratch_dir: out
  speech:
    path: testdata/speech_mono_16k.wav`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newStretchCmd(flags))
	root.AddCommand(newFixturesCmd())
	return root
}

// loadConfig loads the configuration file, or defaults when none is given,
// and applies the log level override.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.logLevel != "" {
		level := config.LogLevel(f.logLevel)
		if !level.IsValid() {
			return nil, fmt.Errorf("invalid --log-level %q", f.logLevel)
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

func newLogger(w io.Writer, level config.LogLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.Level()}))
}

func newEngine(cfg *config.Config) tsm.Engine {
	return tsm.NewEngine(cfg.Engine.MinPitchHz, cfg.Engine.MaxPitchHz)
}
