package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path on top of [Default] and
// returns a validated [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over the defaults and validates the
// result. Keys that are absent keep their default values.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	sweep := func(name string, s Sweep) {
		positive(name+".start", s.Start)
		positive(name+".step", s.Step)
		if s.Stop <= s.Start {
			errs = append(errs, fmt.Errorf("%s.stop %v must exceed start %v", name, s.Stop, s.Start))
		}
	}

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	positive("chunk_frames", float64(cfg.ChunkFrames))
	if cfg.Engine.MinPitchHz < 0 || cfg.Engine.MaxPitchHz < 0 {
		errs = append(errs, errors.New("engine pitch bounds must not be negative"))
	}
	if cfg.Engine.MinPitchHz > 0 && cfg.Engine.MaxPitchHz > 0 && cfg.Engine.MaxPitchHz <= cfg.Engine.MinPitchHz {
		errs = append(errs, fmt.Errorf("engine.max_pitch_hz %v must exceed min_pitch_hz %v",
			cfg.Engine.MaxPitchHz, cfg.Engine.MinPitchHz))
	}

	st := cfg.SteadyTone
	positive("steady_tone.sample_rate", float64(st.SampleRate))
	positive("steady_tone.pitch_hz", float64(st.PitchHz))
	positive("steady_tone.amplitude", st.Amplitude)
	positive("steady_tone.periods", float64(st.Periods))
	positive("steady_tone.speed", st.Speed)
	positive("steady_tone.length_tolerance", st.LengthTolerance)
	positive("steady_tone.mean_tolerance", st.MeanTolerance)
	positive("steady_tone.variance_tolerance", st.VarianceTolerance)
	positive("steady_tone.frequency_tolerance_hz", st.FrequencyToleranceHz)
	if st.TrimFrames < 0 {
		errs = append(errs, errors.New("steady_tone.trim_frames must not be negative"))
	}
	if st.PitchHz > 0 && st.SampleRate/st.PitchHz < 3 {
		errs = append(errs, fmt.Errorf("steady_tone.pitch_hz %d leaves fewer than 3 samples per period", st.PitchHz))
	}

	ch := cfg.Chirp
	positive("chirp.sample_rate", float64(ch.SampleRate))
	positive("chirp.start_hz", ch.StartHz)
	positive("chirp.end_hz", ch.EndHz)
	positive("chirp.duration_seconds", ch.DurationSeconds)
	positive("chirp.amplitude", ch.Amplitude)
	positive("chirp.slope_tolerance", ch.SlopeTolerance)
	if len(ch.Speeds) == 0 {
		errs = append(errs, errors.New("chirp.speeds must list at least one speed"))
	}
	for i, v := range ch.Speeds {
		positive(fmt.Sprintf("chirp.speeds[%d]", i), v)
	}

	n := cfg.Noise
	positive("noise.sample_rate", float64(n.SampleRate))
	positive("noise.frames", float64(n.Frames))
	positive("noise.std_dev", n.StdDev)
	positive("noise.clip", n.Clip)
	positive("noise.tolerance_seconds", n.ToleranceSeconds)
	sweep("noise.sweep", n.Sweep)

	sp := cfg.Speech
	if sp.Path == "" {
		errs = append(errs, errors.New("speech.path is required"))
	}
	positive("speech.tolerance_seconds_per_speed", sp.ToleranceSecondsPerSpeed)
	sweep("speech.sweep", sp.Sweep)

	ls := cfg.LongStereo
	if ls.Path == "" {
		errs = append(errs, errors.New("long_stereo.path is required"))
	}
	positive("long_stereo.tolerance_seconds", ls.ToleranceSeconds)
	sweep("long_stereo.sweep", ls.Sweep)

	sm := cfg.StereoMatch
	positive("stereo_match.sample_rate", float64(sm.SampleRate))
	positive("stereo_match.frequency_hz", sm.FrequencyHz)
	positive("stereo_match.amplitude", sm.Amplitude)
	positive("stereo_match.frames", float64(sm.Frames))
	positive("stereo_match.speed", sm.Speed)
	positive("stereo_match.glitch_window", float64(sm.GlitchWindow))
	positive("stereo_match.glitch_threshold", sm.GlitchThreshold)

	if cfg.Identity.ToleranceFrames < 0 {
		errs = append(errs, errors.New("identity.tolerance_frames must not be negative"))
	}

	return errors.Join(errs...)
}
