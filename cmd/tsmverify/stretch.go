package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	tsm "github.com/tphakala/go-audio-tsm"
	"github.com/tphakala/go-audio-tsm/internal/wavio"
)

const stretchArgs = 2

var errInvalidScheduleFlag = errors.New("invalid --schedule")

func newStretchCmd(flags *globalFlags) *cobra.Command {
	var (
		speed    float64
		schedule string
	)

	cmd := &cobra.Command{
		Use:   "stretch input.wav output.wav",
		Short: "Time-scale a 16-bit WAV file",
		Long: `Time-scale a 16-bit WAV file without changing its pitch.

Speeds above 1 shorten the audio and speeds below 1 lengthen it. A schedule
is a comma-separated list of frames:speed segments; the last segment may
omit its frame count to cover the rest of the input.

Examples:
  tsmverify stretch --speed 1.5 speech.wav fast.wav
  tsmverify stretch --schedule 16000:2,16000:0.5,3 speech.wav mixed.wav`,
		Args: cobra.ExactArgs(stretchArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			inputPath, outputPath := args[0], args[1]

			in, err := wavio.Read(inputPath)
			if err != nil {
				return err
			}

			var sched tsm.Schedule
			if cmd.Flags().Changed("schedule") {
				if sched, err = parseSchedule(schedule, in.Frames()); err != nil {
					return err
				}
			} else {
				sched = tsm.ConstantSchedule(in.Frames(), speed)
			}

			start := time.Now()
			h := tsm.NewHarness(newEngine(cfg),
				tsm.WithChunkFrames(cfg.ChunkFrames),
				tsm.WithLogger(logger))
			out, err := h.Compress(in, sched)
			if err != nil {
				return err
			}
			if err := wavio.Write(outputPath, out); err != nil {
				return err
			}
			elapsed := time.Since(start)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Stretched %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
			fmt.Fprintf(w, "  %d Hz, %d channels\n", in.SampleRate, in.Channels)
			fmt.Fprintf(w, "  %d frames -> %d frames (expected %.1f)\n",
				in.Frames(), out.Frames(), sched.ExpectedFrames())
			fmt.Fprintf(w, "  %v -> %v in %v\n", in.Duration(), out.Duration(), elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().Float64Var(&speed, "speed", 1, "constant speed factor")
	cmd.Flags().StringVar(&schedule, "schedule", "", "speed schedule, e.g. 16000:2,0.5")
	cmd.MarkFlagsMutuallyExclusive("speed", "schedule")
	return cmd
}

// parseSchedule parses "frames:speed,...,[frames:]speed" for an input of
// total frames. A trailing segment without a frame count takes the rest.
func parseSchedule(text string, total int) (tsm.Schedule, error) {
	parts := strings.Split(text, ",")
	sched := make(tsm.Schedule, 0, len(parts))
	used := 0

	for i, part := range parts {
		part = strings.TrimSpace(part)
		framesText, speedText, hasFrames := strings.Cut(part, ":")
		if !hasFrames {
			speedText = framesText
		}

		speed, err := strconv.ParseFloat(speedText, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d %q: bad speed", errInvalidScheduleFlag, i, part)
		}

		var frames int
		switch {
		case hasFrames && framesText != "":
			if frames, err = strconv.Atoi(framesText); err != nil || frames < 0 {
				return nil, fmt.Errorf("%w: segment %d %q: bad frame count", errInvalidScheduleFlag, i, part)
			}
		case i == len(parts)-1:
			frames = total - used
		default:
			return nil, fmt.Errorf("%w: segment %d %q: only the last segment may omit its frame count",
				errInvalidScheduleFlag, i, part)
		}

		used += frames
		sched = append(sched, tsm.Segment{Frames: frames, Speed: speed})
	}

	if err := sched.Validate(total); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidScheduleFlag, err)
	}
	return sched, nil
}
