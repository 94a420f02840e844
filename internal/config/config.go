// Package config holds the acceptance scenario configuration: signal
// parameters, speed sweeps, reference recordings and every tolerance.
package config

import "log/slog"

// LogLevel controls log verbosity.
type LogLevel string

// Recognised log levels.
const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level converts l to a slog level. Unknown values map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the root configuration.
type Config struct {
	LogLevel LogLevel `yaml:"log_level"`

	// ScratchDir receives diagnostic traces and waves. Empty disables them.
	ScratchDir string `yaml:"scratch_dir"`

	// ChunkFrames is the harness write and read size.
	ChunkFrames int `yaml:"chunk_frames"`

	Engine      EngineConfig      `yaml:"engine"`
	SteadyTone  SteadyToneConfig  `yaml:"steady_tone"`
	Chirp       ChirpConfig       `yaml:"chirp"`
	Noise       NoiseConfig       `yaml:"noise"`
	Speech      SpeechConfig      `yaml:"speech"`
	LongStereo  LongStereoConfig  `yaml:"long_stereo"`
	StereoMatch StereoMatchConfig `yaml:"stereo_match"`
	Identity    IdentityConfig    `yaml:"identity"`
}

// EngineConfig bounds the bundled engine's pitch search. Zero selects defaults.
type EngineConfig struct {
	MinPitchHz float64 `yaml:"min_pitch_hz"`
	MaxPitchHz float64 `yaml:"max_pitch_hz"`
}

// Sweep is the speed range start, start+step, ... while below stop.
type Sweep struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

// Speeds expands the sweep. Each value is computed from its index so no
// rounding error accumulates.
func (s Sweep) Speeds() []float64 {
	if s.Step <= 0 {
		return nil
	}
	var speeds []float64
	for i := 0; ; i++ {
		v := s.Start + float64(i)*s.Step
		if v >= s.Stop {
			return speeds
		}
		speeds = append(speeds, v)
	}
}

// SteadyToneConfig describes the pure sinusoid scenario.
type SteadyToneConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	PitchHz    int     `yaml:"pitch_hz"`
	Amplitude  float64 `yaml:"amplitude"`
	Periods    int     `yaml:"periods"`
	Speed      float64 `yaml:"speed"`

	// LengthTolerance is relative to the expected output length.
	LengthTolerance float64 `yaml:"length_tolerance"`
	// MeanTolerance and VarianceTolerance are relative to the Teager
	// statistics of one uncompressed period.
	MeanTolerance     float64 `yaml:"mean_tolerance"`
	VarianceTolerance float64 `yaml:"variance_tolerance"`
	// TrimFrames excludes the flushed tail from the Teager statistics.
	TrimFrames int `yaml:"trim_frames"`
	// FrequencyToleranceHz bounds the output's dominant frequency error.
	FrequencyToleranceHz float64 `yaml:"frequency_tolerance_hz"`
}

// ChirpConfig describes the linear chirp scenario.
type ChirpConfig struct {
	SampleRate      int       `yaml:"sample_rate"`
	StartHz         float64   `yaml:"start_hz"`
	EndHz           float64   `yaml:"end_hz"`
	DurationSeconds float64   `yaml:"duration_seconds"`
	Amplitude       float64   `yaml:"amplitude"`
	Speeds          []float64 `yaml:"speeds"`

	// SlopeTolerance is relative to the first-quarter slope.
	SlopeTolerance float64 `yaml:"slope_tolerance"`
}

// NoiseConfig describes the clipped Gaussian noise scenario.
type NoiseConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	Frames     int     `yaml:"frames"`
	StdDev     float64 `yaml:"std_dev"`
	Clip       float64 `yaml:"clip"`
	Seed       int64   `yaml:"seed"`
	Sweep      Sweep   `yaml:"sweep"`

	// ToleranceSeconds is the flat length tolerance.
	ToleranceSeconds float64 `yaml:"tolerance_seconds"`
}

// SpeechConfig describes the mono reference recording scenario.
type SpeechConfig struct {
	Path               string `yaml:"path"`
	ExpectedSampleRate int    `yaml:"expected_sample_rate"`
	ExpectedChannels   int    `yaml:"expected_channels"`
	// ExpectedSamples is checked when positive.
	ExpectedSamples int   `yaml:"expected_samples"`
	Sweep           Sweep `yaml:"sweep"`

	// ToleranceSecondsPerSpeed is multiplied by the speed.
	ToleranceSecondsPerSpeed float64 `yaml:"tolerance_seconds_per_speed"`
}

// LongStereoConfig describes the long stereo reference recording scenario.
type LongStereoConfig struct {
	Path               string  `yaml:"path"`
	ExpectedSampleRate int     `yaml:"expected_sample_rate"`
	ExpectedChannels   int     `yaml:"expected_channels"`
	Sweep              Sweep   `yaml:"sweep"`
	ToleranceSeconds   float64 `yaml:"tolerance_seconds"`
}

// StereoMatchConfig describes the mono/stereo equivalence scenarios.
type StereoMatchConfig struct {
	SampleRate  int     `yaml:"sample_rate"`
	FrequencyHz float64 `yaml:"frequency_hz"`
	Amplitude   float64 `yaml:"amplitude"`
	Frames      int     `yaml:"frames"`
	Speed       float64 `yaml:"speed"`

	// GlitchWindow values set the Teager reference level; a value whose
	// magnitude exceeds it by more than GlitchThreshold, relative, is logged.
	GlitchWindow    int     `yaml:"glitch_window"`
	GlitchThreshold float64 `yaml:"glitch_threshold"`
}

// IdentityConfig describes the unit speed check run on the stereo match
// sinusoid.
type IdentityConfig struct {
	ToleranceFrames float64 `yaml:"tolerance_frames"`
}

// Default returns the configuration the acceptance suite was calibrated with.
func Default() *Config {
	return &Config{
		LogLevel:    LogInfo,
		ChunkFrames: 1024,
		SteadyTone: SteadyToneConfig{
			SampleRate:           22050,
			PitchHz:              100,
			Amplitude:            32000,
			Periods:              100,
			Speed:                3,
			LengthTolerance:      0.01,
			MeanTolerance:        0.01,
			VarianceTolerance:    0.02,
			TrimFrames:           300,
			FrequencyToleranceHz: 2,
		},
		Chirp: ChirpConfig{
			SampleRate:      22050,
			StartHz:         137,
			EndHz:           184,
			DurationSeconds: 3,
			Amplitude:       32000,
			Speeds:          []float64{3, 1.5, 3},
			SlopeTolerance:  0.01,
		},
		Noise: NoiseConfig{
			SampleRate:       16000,
			Frames:           50000,
			StdDev:           8096,
			Clip:             32000,
			Seed:             1,
			Sweep:            Sweep{Start: 1.1, Stop: 6.3, Step: 0.25},
			ToleranceSeconds: 0.015,
		},
		Speech: SpeechConfig{
			Path:                     "testdata/speech_mono_16k.wav",
			ExpectedSampleRate:       16000,
			ExpectedChannels:         1,
			ExpectedSamples:          50381,
			Sweep:                    Sweep{Start: 1.1, Stop: 6.3, Step: 0.25},
			ToleranceSecondsPerSpeed: 0.005,
		},
		LongStereo: LongStereoConfig{
			Path:               "testdata/speech_stereo_48k.wav",
			ExpectedSampleRate: 48000,
			ExpectedChannels:   2,
			Sweep:              Sweep{Start: 1.1, Stop: 6.3, Step: 0.5},
			ToleranceSeconds:   0.170,
		},
		StereoMatch: StereoMatchConfig{
			SampleRate:      16000,
			FrequencyHz:     440,
			Amplitude:       16000,
			Frames:          16000,
			Speed:           2,
			GlitchWindow:    100,
			GlitchThreshold: 0.05,
		},
		Identity: IdentityConfig{
			ToleranceFrames: 1,
		},
	}
}
