package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tphakala/go-audio-tsm/internal/diag"
	"github.com/tphakala/go-audio-tsm/internal/scenario"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	var scratchDir string

	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run acceptance scenarios",
		Long: `Run acceptance scenarios.

With no arguments every scenario runs. A failing scenario never stops the
others; the command exits non-zero when any of them failed.

Scenarios:
  ` + strings.Join(scenarioNames(), "\n  ") + `

Examples:
  tsmverify run
  tsmverify run --scratch-dir out chirp steady_tone`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if scratchDir != "" {
				cfg.ScratchDir = scratchDir
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			opts := []scenario.Option{scenario.WithLogger(logger)}
			if cfg.ScratchDir != "" {
				sink, err := diag.NewDir(cfg.ScratchDir)
				if err != nil {
					return err
				}
				opts = append(opts, scenario.WithSink(sink))
			}

			s := scenario.New(newEngine(cfg), cfg, opts...)
			var results []scenario.Result
			if len(args) == 0 {
				results = s.RunAll()
			} else if results, err = s.Run(args...); err != nil {
				return err
			}
			return report(cmd, results)
		},
	}

	cmd.Flags().StringVar(&scratchDir, "scratch-dir", "", "write diagnostic traces and waves to this directory")
	return cmd
}

// report prints one line per result and fails when any scenario failed.
func report(cmd *cobra.Command, results []scenario.Result) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(out, "PASS  %-24s %v\n", r.Name, r.Duration.Round(time.Millisecond))
			continue
		}
		failed++
		fmt.Fprintf(out, "FAIL  %-24s %v\n      %v\n", r.Name, r.Duration.Round(time.Millisecond), r.Err)
	}
	fmt.Fprintf(out, "%d passed, %d failed\n", len(results)-failed, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}

func scenarioNames() []string {
	list := scenario.New(nil, nil).Scenarios()
	names := make([]string, len(list))
	for i, sc := range list {
		names[i] = sc.Name
	}
	return names
}
