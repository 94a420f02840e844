// Package scenario holds the end-to-end acceptance checks for a time-scale
// modification engine. Each scenario generates or loads input, runs it
// through the streaming harness, analyzes the output and returns nil or the
// first failed comparison.
package scenario

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tsm "github.com/tphakala/go-audio-tsm"
	"github.com/tphakala/go-audio-tsm/internal/config"
	"github.com/tphakala/go-audio-tsm/internal/diag"
)

// Scenario names.
const (
	NameSteadyTone          = "steady_tone"
	NameChirp               = "chirp"
	NameNoiseRange          = "noise_range"
	NameSpeechRange         = "speech_range"
	NameLongStereoRange     = "long_stereo_range"
	NameSinusoidStereoMatch = "sinusoid_stereo_match"
	NameSpeechStereoMatch   = "speech_stereo_match"
	NameIdentity            = "identity"
)

// Suite runs scenarios against one engine.
type Suite struct {
	engine tsm.Engine
	cfg    *config.Config
	sink   diag.Sink
	logger *slog.Logger
}

// Option configures a Suite.
type Option func(*Suite)

// WithSink sets the diagnostic sink. The default discards everything.
func WithSink(sink diag.Sink) Option {
	return func(s *Suite) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Suite) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a suite. A nil cfg selects config.Default().
func New(engine tsm.Engine, cfg *config.Config, opts ...Option) *Suite {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Suite{
		engine: engine,
		cfg:    cfg,
		sink:   diag.Nop{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scenario is a named, parameterless check.
type Scenario struct {
	Name string
	Run  func() error
}

// Scenarios returns every scenario in a fixed order.
func (s *Suite) Scenarios() []Scenario {
	return []Scenario{
		{NameSteadyTone, s.SteadyTone},
		{NameChirp, s.Chirp},
		{NameNoiseRange, s.NoiseRange},
		{NameSpeechRange, s.SpeechRange},
		{NameLongStereoRange, s.LongStereoRange},
		{NameSinusoidStereoMatch, s.SinusoidStereoMatch},
		{NameSpeechStereoMatch, s.SpeechStereoMatch},
		{NameIdentity, s.Identity},
	}
}

// Result is the outcome of one scenario.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the scenario succeeded.
func (r Result) Passed() bool { return r.Err == nil }

// RunAll runs every scenario. A failure never stops the others.
func (s *Suite) RunAll() []Result {
	scenarios := s.Scenarios()
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		results = append(results, s.run(sc))
	}
	return results
}

// Run runs the named scenarios in the given order.
func (s *Suite) Run(names ...string) ([]Result, error) {
	byName := make(map[string]Scenario)
	for _, sc := range s.Scenarios() {
		byName[sc.Name] = sc
	}

	selected := make([]Scenario, 0, len(names))
	var errs []error
	for _, name := range names {
		sc, ok := byName[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownScenario, name))
			continue
		}
		selected = append(selected, sc)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(selected))
	for _, sc := range selected {
		results = append(results, s.run(sc))
	}
	return results, nil
}

func (s *Suite) run(sc Scenario) Result {
	start := time.Now()
	err := sc.Run()
	r := Result{Name: sc.Name, Err: err, Duration: time.Since(start)}
	if err != nil {
		s.logger.Error("scenario failed", "scenario", sc.Name, "duration", r.Duration, "err", err)
	} else {
		s.logger.Info("scenario passed", "scenario", sc.Name, "duration", r.Duration)
	}
	return r
}

// compress runs in through the engine under schedule.
func (s *Suite) compress(in tsm.Waveform, schedule tsm.Schedule) (tsm.Waveform, error) {
	h := tsm.NewHarness(s.engine,
		tsm.WithChunkFrames(s.cfg.ChunkFrames),
		tsm.WithLogger(s.logger))
	return h.Compress(in, schedule)
}

// traceOut and waveOut write diagnostics, logging instead of failing.
func (s *Suite) traceOut(name string, values []float64) {
	if err := s.sink.WriteTrace(name, values); err != nil {
		s.logger.Warn("diagnostic trace not written", "name", name, "err", err)
	}
}

func (s *Suite) waveOut(name string, w tsm.Waveform) {
	if err := s.sink.WriteWave(name, w); err != nil {
		s.logger.Warn("diagnostic wave not written", "name", name, "err", err)
	}
}
