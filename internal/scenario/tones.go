package scenario

import (
	"errors"
	"fmt"
	"math"

	tsm "github.com/tphakala/go-audio-tsm"
	"github.com/tphakala/go-audio-tsm/internal/analysis"
	"github.com/tphakala/go-audio-tsm/internal/diag"
	"github.com/tphakala/go-audio-tsm/internal/mathutil"
)

// SteadyTone speeds up whole periods of a pure sinusoid and checks that the
// output has the expected length and is still the same sinusoid: its Teager
// mean and variance match those of one uncompressed period, and its spectral
// peak sits at the input pitch.
func (s *Suite) SteadyTone() error {
	c := s.cfg.SteadyTone
	period := c.SampleRate / c.PitchHz
	cycle := Cycle(period, c.Amplitude)
	in := tsm.Waveform{Samples: Repeat(cycle, c.Periods), SampleRate: c.SampleRate, Channels: 1}

	out, err := s.compress(in, tsm.ConstantSchedule(in.Frames(), c.Speed))
	if err != nil {
		return err
	}
	s.traceOut("steady_compressed", diag.Int16Trace(out.Samples))

	expected := float64(in.Frames()) / c.Speed
	if err := checkNear(NameSteadyTone, "output frames", expected, float64(out.Frames()),
		expected*c.LengthTolerance); err != nil {
		return err
	}

	cycleMean, cycleVar, err := analysis.TeagerStats(cycle)
	if err != nil {
		return err
	}
	body := out.Samples[:max(0, len(out.Samples)-c.TrimFrames)]
	outMean, outVar, err := analysis.TeagerStats(body)
	if err != nil {
		return err
	}
	s.logger.Info("steady tone teager statistics",
		"cycle_mean", cycleMean, "output_mean", outMean,
		"cycle_variance", cycleVar, "output_variance", outVar)

	if err := checkNear(NameSteadyTone, "teager mean", cycleMean, outMean,
		c.MeanTolerance*math.Abs(cycleMean)); err != nil {
		return err
	}
	if err := checkNear(NameSteadyTone, "teager variance", cycleVar, outVar,
		c.VarianceTolerance*math.Abs(cycleVar)); err != nil {
		return err
	}

	pitch := float64(c.SampleRate) / float64(period)
	freq, err := analysis.DominantFrequency(body, c.SampleRate)
	if err != nil {
		return err
	}
	return checkNear(NameSteadyTone, "dominant frequency", pitch, freq, c.FrequencyToleranceHz)
}

// Chirp compresses a linear chirp with a three-part speed schedule such as
// (k, k/2, k) over equal thirds. The square-rooted Teager trace of the output
// tracks frequency, so its slope over the first and last quarters must agree
// and the middle half must rise at half that rate.
func (s *Suite) Chirp() error {
	c := s.cfg.Chirp
	chirp := Chirp(c.SampleRate, c.StartHz, c.EndHz, c.DurationSeconds, c.Amplitude)
	in := tsm.Waveform{Samples: chirp, SampleRate: c.SampleRate, Channels: 1}

	s.traceOut("chirp_original", diag.Int16Trace(chirp))
	if trace, err := analysis.TeagerTrace(chirp); err == nil {
		s.traceOut("chirp_original_teager", trace)
	}

	out, err := s.compress(in, tsm.SplitEvenly(in.Frames(), c.Speeds...))
	if err != nil {
		return err
	}
	s.traceOut("chirp_compressed", diag.Int16Trace(out.Samples))

	trace, err := analysis.TeagerTrace(out.Samples)
	if err != nil {
		return err
	}
	s.traceOut("chirp_compressed_teager", trace)

	first, middle, last, err := quarterSlopes(analysis.SqrtTrace(trace))
	if err != nil {
		return err
	}
	s.logger.Info("compressed chirp slopes", "first", first, "middle", middle, "last", last)

	tolerance := c.SlopeTolerance * math.Abs(first)
	return errors.Join(
		checkNear(NameChirp, "last quarter slope", first, last, tolerance),
		checkNear(NameChirp, "middle half slope", first/2, middle, tolerance),
	)
}

// quarterSlopes returns the OLS slopes of the first quarter, middle half and
// last quarter of y.
func quarterSlopes(y []float64) (first, middle, last float64, err error) {
	q1 := len(y) / 4
	q3 := len(y) * 3 / 4
	if first, err = mathutil.Slope(y[:q1]); err != nil {
		return 0, 0, 0, fmt.Errorf("first quarter: %w", err)
	}
	if middle, err = mathutil.Slope(y[q1:q3]); err != nil {
		return 0, 0, 0, fmt.Errorf("middle half: %w", err)
	}
	if last, err = mathutil.Slope(y[q3:]); err != nil {
		return 0, 0, 0, fmt.Errorf("last quarter: %w", err)
	}
	return first, middle, last, nil
}

// Identity runs the stereo match sinusoid in mono and stereo at speed 1 and
// checks that the length is unchanged.
func (s *Suite) Identity() error {
	c := s.cfg.StereoMatch
	mono := tsm.Waveform{
		Samples:    Sinusoid(c.Frames, c.FrequencyHz, c.Amplitude, c.SampleRate),
		SampleRate: c.SampleRate,
		Channels:   1,
	}
	stereo, err := tsm.DuplicateToStereo(mono)
	if err != nil {
		return err
	}

	var errs []error
	for _, in := range []tsm.Waveform{mono, stereo} {
		out, err := s.compress(in, tsm.ConstantSchedule(in.Frames(), 1))
		if err != nil {
			return err
		}
		errs = append(errs, checkNear(NameIdentity,
			fmt.Sprintf("output frames (%d channels)", in.Channels),
			float64(in.Frames()), float64(out.Frames()), s.cfg.Identity.ToleranceFrames))
	}
	return errors.Join(errs...)
}
