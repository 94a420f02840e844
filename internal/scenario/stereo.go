package scenario

import (
	"fmt"

	tsm "github.com/tphakala/go-audio-tsm"
	"github.com/tphakala/go-audio-tsm/internal/analysis"
)

// SinusoidStereoMatch compresses a sinusoid in mono and duplicated to stereo
// and requires every stereo sample to equal the mono sample of its frame.
// Teager glitches in the stereo output are logged but do not fail the check.
func (s *Suite) SinusoidStereoMatch() error {
	c := s.cfg.StereoMatch
	mono := tsm.Waveform{
		Samples:    Sinusoid(c.Frames, c.FrequencyHz, c.Amplitude, c.SampleRate),
		SampleRate: c.SampleRate,
		Channels:   1,
	}
	s.waveOut("original_sinusoid", mono)

	monoOut, stereoOut, err := s.compressBoth(mono, c.Speed)
	if err != nil {
		return err
	}
	s.waveOut("mono_sinusoid", monoOut)
	s.waveOut("stereo_sinusoid", stereoOut)
	if trace, err := analysis.TeagerTrace(monoOut.Samples); err == nil {
		s.traceOut("mono_teager", trace)
	}

	if trace, err := analysis.TeagerTrace(stereoOut.Channel(0)); err == nil {
		s.traceOut("stereo_teager", trace)
		s.logGlitches(trace, c.GlitchWindow, c.GlitchThreshold)
	}

	return matchChannels(NameSinusoidStereoMatch, monoOut, stereoOut)
}

// SpeechStereoMatch runs the mono/stereo equivalence check on the mono
// reference recording.
func (s *Suite) SpeechStereoMatch() error {
	mono, err := s.loadSpeech()
	if err != nil {
		return err
	}

	monoOut, stereoOut, err := s.compressBoth(mono, s.cfg.StereoMatch.Speed)
	if err != nil {
		return err
	}
	s.waveOut("mono", monoOut)
	s.waveOut("stereo", stereoOut)

	return matchChannels(NameSpeechStereoMatch, monoOut, stereoOut)
}

// compressBoth compresses mono and its stereo duplicate independently.
func (s *Suite) compressBoth(mono tsm.Waveform, speed float64) (monoOut, stereoOut tsm.Waveform, err error) {
	stereo, err := tsm.DuplicateToStereo(mono)
	if err != nil {
		return tsm.Waveform{}, tsm.Waveform{}, err
	}
	if monoOut, err = s.compress(mono, tsm.ConstantSchedule(mono.Frames(), speed)); err != nil {
		return tsm.Waveform{}, tsm.Waveform{}, err
	}
	if stereoOut, err = s.compress(stereo, tsm.ConstantSchedule(stereo.Frames(), speed)); err != nil {
		return tsm.Waveform{}, tsm.Waveform{}, err
	}
	return monoOut, stereoOut, nil
}

// logGlitches reports Teager glitches and the spacing between them.
func (s *Suite) logGlitches(trace []float64, window int, threshold float64) {
	glitches, err := analysis.Glitches(trace, window, threshold)
	if err != nil {
		s.logger.Warn("glitch detection skipped", "err", err)
		return
	}
	last := 0
	for _, i := range glitches {
		s.logger.Debug("teager glitch", "index", i, "delta", i-last)
		last = i
	}
	s.logger.Info("teager glitches", "count", len(glitches), "samples", len(trace))
}

// matchChannels requires both channels of every stereo frame to equal the
// mono sample of the same frame.
func matchChannels(scenario string, mono, stereo tsm.Waveform) error {
	if mono.Frames() != stereo.Frames() {
		return checkNear(scenario, "stereo output frames", float64(mono.Frames()), float64(stereo.Frames()), 0)
	}
	for i, want := range mono.Samples {
		for c := range stereo.Channels {
			got := stereo.Samples[i*stereo.Channels+c]
			if got != want {
				return checkNear(scenario, fmt.Sprintf("channel %d sample %d", c, i), float64(want), float64(got), 0)
			}
		}
	}
	return nil
}
