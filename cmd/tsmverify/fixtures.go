package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/go-audio-tsm/internal/scenario"
)

func newFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures [dir]",
		Short: "Write the synthetic reference recordings",
		Long: `Write the synthetic reference recordings used by the speech scenarios.

The files are deterministic, so regenerating them never changes results.
The directory defaults to testdata.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "testdata"
			if len(args) == 1 {
				dir = args[0]
			}
			mono, stereo, err := scenario.WriteFixtures(dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mono)
			fmt.Fprintln(cmd.OutOrStdout(), stereo)
			return nil
		},
	}
}
