package scenario

import (
	"errors"
	"fmt"

	tsm "github.com/tphakala/go-audio-tsm"
	"github.com/tphakala/go-audio-tsm/internal/wavio"
)

// lengthSweep compresses in at every speed and checks the output length
// against frames/speed. tolerance returns the allowed error in interleaved
// samples for a speed, so it is divided by the channel count before the
// frame comparison. Every speed is checked even after a failure.
func (s *Suite) lengthSweep(name string, in tsm.Waveform, speeds []float64, tolerance func(speed float64) float64) error {
	var errs []error
	for _, speed := range speeds {
		out, err := s.compress(in, tsm.ConstantSchedule(in.Frames(), speed))
		if err != nil {
			return fmt.Errorf("%s at speed %g: %w", name, speed, err)
		}

		expected := float64(in.Frames()) / speed
		s.logger.Debug("length check",
			"scenario", name,
			"speed", speed,
			"expected_frames", expected,
			"actual_frames", out.Frames(),
			"difference", float64(out.Frames())-expected)
		errs = append(errs, checkNear(name, fmt.Sprintf("output frames at speed %g", speed),
			expected, float64(out.Frames()), tolerance(speed)/float64(in.Channels)))
	}
	return errors.Join(errs...)
}

// NoiseRange sweeps clipped Gaussian noise over the configured speeds with a
// flat length tolerance.
func (s *Suite) NoiseRange() error {
	c := s.cfg.Noise
	in := tsm.Waveform{
		Samples:    Noise(c.Frames, c.StdDev, c.Clip, c.Seed),
		SampleRate: c.SampleRate,
		Channels:   1,
	}
	tolerance := c.ToleranceSeconds * float64(c.SampleRate)
	return s.lengthSweep(NameNoiseRange, in, c.Sweep.Speeds(), func(float64) float64 { return tolerance })
}

// SpeechRange sweeps the mono reference recording with a tolerance that grows
// linearly with speed.
func (s *Suite) SpeechRange() error {
	c := s.cfg.Speech
	in, err := s.loadSpeech()
	if err != nil {
		return err
	}
	rate := float64(in.SampleRate)
	return s.lengthSweep(NameSpeechRange, in, c.Sweep.Speeds(), func(speed float64) float64 {
		return c.ToleranceSecondsPerSpeed * speed * rate
	})
}

// LongStereoRange sweeps the long stereo reference recording with a flat
// tolerance.
func (s *Suite) LongStereoRange() error {
	c := s.cfg.LongStereo
	in, err := wavio.Read(c.Path)
	if err != nil {
		return err
	}
	if err := errors.Join(
		checkMeta(NameLongStereoRange, "sample rate", c.ExpectedSampleRate, in.SampleRate),
		checkMeta(NameLongStereoRange, "channels", c.ExpectedChannels, in.Channels),
	); err != nil {
		return err
	}
	if in.Frames() == 0 {
		return fmt.Errorf("%s: %s has no samples", NameLongStereoRange, c.Path)
	}

	tolerance := c.ToleranceSeconds * float64(in.SampleRate)
	return s.lengthSweep(NameLongStereoRange, in, c.Sweep.Speeds(), func(float64) float64 { return tolerance })
}

// loadSpeech reads the mono reference recording and checks its metadata.
func (s *Suite) loadSpeech() (tsm.Waveform, error) {
	c := s.cfg.Speech
	in, err := wavio.Read(c.Path)
	if err != nil {
		return tsm.Waveform{}, err
	}

	errs := []error{
		checkMeta(NameSpeechRange, "sample rate", c.ExpectedSampleRate, in.SampleRate),
		checkMeta(NameSpeechRange, "channels", c.ExpectedChannels, in.Channels),
	}
	if c.ExpectedSamples > 0 {
		errs = append(errs, checkMeta(NameSpeechRange, "samples", c.ExpectedSamples, len(in.Samples)))
	}
	if err := errors.Join(errs...); err != nil {
		return tsm.Waveform{}, err
	}
	return in, nil
}

// checkMeta compares recording metadata when an expectation is set.
func checkMeta(scenario, quantity string, expected, actual int) error {
	if expected <= 0 {
		return nil
	}
	return checkNear(scenario, quantity, float64(expected), float64(actual), 0)
}
