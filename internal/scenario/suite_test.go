package scenario

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	tsm "github.com/tphakala/go-audio-tsm"
	"github.com/tphakala/go-audio-tsm/internal/config"
	"github.com/tphakala/go-audio-tsm/internal/diag"
	"github.com/tphakala/go-audio-tsm/internal/wavio"
)

var errBroken = errors.New("broken stream")

// trackedStream counts its first Close and can be made to misbehave.
type trackedStream struct {
	tsm.Stream
	engine    *trackingEngine
	closed    bool
	failWrite bool
	silent    bool
	maxFrames int
	returned  int
}

func (s *trackedStream) Write(samples []int16) error {
	if s.failWrite {
		return errBroken
	}
	return s.Stream.Write(samples)
}

func (s *trackedStream) Read(dst []int16) int {
	if s.silent {
		return 0
	}
	n := s.Stream.Read(dst)
	if s.maxFrames > 0 {
		n = min(n, s.maxFrames-s.returned)
	}
	s.returned += n
	return n
}

func (s *trackedStream) Close() error {
	if !s.closed {
		s.closed = true
		s.engine.closes++
	}
	return s.Stream.Close()
}

// trackingEngine wraps the bundled engine and counts sessions.
type trackingEngine struct {
	inner     tsm.Engine
	opens     int
	closes    int
	failWrite bool
	silent    bool
	maxFrames int
}

func (e *trackingEngine) Open(sampleRate, channels int) (tsm.Stream, error) {
	st, err := e.inner.Open(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	e.opens++
	return &trackedStream{Stream: st, engine: e, failWrite: e.failWrite, silent: e.silent, maxFrames: e.maxFrames}, nil
}

type ScenarioSuite struct {
	suite.Suite

	fixtureDir string
	engine     *trackingEngine
	cfg        *config.Config
	sink       *diag.Memory
	runner     *Suite
}

func (s *ScenarioSuite) SetupSuite() {
	s.fixtureDir = s.T().TempDir()
	_, _, err := WriteFixtures(s.fixtureDir)
	s.Require().NoError(err)
}

func (s *ScenarioSuite) SetupTest() {
	s.engine = &trackingEngine{inner: tsm.DefaultEngine()}
	s.cfg = config.Default()
	s.cfg.Speech.Path = filepath.Join(s.fixtureDir, MonoFixtureName)
	s.cfg.LongStereo.Path = filepath.Join(s.fixtureDir, StereoFixtureName)
	s.sink = diag.NewMemory()
	s.rebuild()
}

func (s *ScenarioSuite) rebuild() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.runner = New(s.engine, s.cfg, WithSink(s.sink), WithLogger(logger))
}

// Every session must be released, including on failure paths.
func (s *ScenarioSuite) TearDownTest() {
	s.Equal(s.engine.opens, s.engine.closes, "stream sessions left open")
}

func (s *ScenarioSuite) TestSteadyTone() {
	s.Require().NoError(s.runner.SteadyTone())
	trace, ok := s.sink.Trace("steady_compressed")
	s.Require().True(ok)
	s.InDelta(22000.0/3, float64(len(trace)), 22000.0/3*0.01)
}

func (s *ScenarioSuite) TestChirp() {
	s.Require().NoError(s.runner.Chirp())
	for _, name := range []string{"chirp_original", "chirp_original_teager", "chirp_compressed", "chirp_compressed_teager"} {
		_, ok := s.sink.Trace(name)
		s.True(ok, name)
	}
	original, _ := s.sink.Trace("chirp_original")
	s.Len(original, 66150)
}

func (s *ScenarioSuite) TestNoiseRange() {
	s.Require().NoError(s.runner.NoiseRange())
	s.Equal(21, s.engine.opens)
}

func (s *ScenarioSuite) TestSpeechRange() {
	s.Require().NoError(s.runner.SpeechRange())
}

func (s *ScenarioSuite) TestLongStereoRange() {
	s.Require().NoError(s.runner.LongStereoRange())
	s.Equal(11, s.engine.opens)
}

func (s *ScenarioSuite) TestSinusoidStereoMatch() {
	s.Require().NoError(s.runner.SinusoidStereoMatch())
	s.ElementsMatch([]string{
		"mono_sinusoid", "mono_teager", "original_sinusoid", "stereo_sinusoid", "stereo_teager",
	}, s.sink.Names())

	stereo, ok := s.sink.Wave("stereo_sinusoid")
	s.Require().True(ok)
	s.Equal(2, stereo.Channels)
	s.InDelta(8000, stereo.Frames(), 2)
}

func (s *ScenarioSuite) TestSpeechStereoMatch() {
	s.Require().NoError(s.runner.SpeechStereoMatch())
	mono, ok := s.sink.Wave("mono")
	s.Require().True(ok)
	s.InDelta(50381.0/2, float64(mono.Frames()), 2)
}

func (s *ScenarioSuite) TestIdentity() {
	s.Require().NoError(s.runner.Identity())
	s.Equal(2, s.engine.opens)
}

func (s *ScenarioSuite) TestMissingReferenceFile() {
	missing := filepath.Join(s.fixtureDir, "tapestry.wav")
	s.cfg.Speech.Path = missing
	s.rebuild()

	err := s.runner.SpeechRange()
	s.Require().ErrorIs(err, wavio.ErrFileNotFound)
	s.Contains(err.Error(), missing)
	s.Zero(s.engine.opens)
}

func (s *ScenarioSuite) TestReferenceMetadataMismatch() {
	s.cfg.Speech.ExpectedSampleRate = 22050
	s.cfg.Speech.ExpectedSamples = 1
	s.rebuild()

	err := s.runner.SpeechStereoMatch()
	s.Require().ErrorIs(err, ErrToleranceExceeded)
	s.Contains(err.Error(), "sample rate")
	s.Contains(err.Error(), "samples")

	var tolErr *ToleranceError
	s.Require().ErrorAs(err, &tolErr)
	s.Equal(NameSpeechRange, tolErr.Scenario)
}

func (s *ScenarioSuite) TestSilentEngineFailsLengthCheck() {
	s.engine.silent = true
	s.cfg.Noise.Sweep = config.Sweep{Start: 2, Stop: 3, Step: 0.5}

	err := s.runner.NoiseRange()
	s.Require().ErrorIs(err, ErrToleranceExceeded)
	s.Contains(err.Error(), "speed 2")
	s.Contains(err.Error(), "speed 2.5")
	s.Equal(2, s.engine.opens)
}

// The long stereo tolerance is stated in interleaved samples, so a stereo
// shortfall of 5000 frames (10000 samples) exceeds 170 ms at 48 kHz.
func (s *ScenarioSuite) TestLongStereoToleranceCountsSamples() {
	s.engine.maxFrames = 96000 - 5000
	s.cfg.LongStereo.Sweep = config.Sweep{Start: 2, Stop: 2.5, Step: 0.5}

	err := s.runner.LongStereoRange()
	s.Require().ErrorIs(err, ErrToleranceExceeded)

	var tolErr *ToleranceError
	s.Require().ErrorAs(err, &tolErr)
	s.InDelta(0.170*48000/2, tolErr.Tolerance, 1e-9)
	s.InDelta(96000, tolErr.Expected, 0)
	s.InDelta(91000, tolErr.Actual, 0)
}

func (s *ScenarioSuite) TestEngineFailureSurfaces() {
	s.engine.failWrite = true

	err := s.runner.SteadyTone()
	s.Require().ErrorIs(err, tsm.ErrEngineCallFailed)
	s.Require().ErrorIs(err, errBroken)
	s.Equal(1, s.engine.opens)
}

func (s *ScenarioSuite) TestRunAllIsolatesFailures() {
	s.cfg.Speech.Path = filepath.Join(s.fixtureDir, "missing.wav")
	s.cfg.Noise.Sweep = config.Sweep{Start: 1.5, Stop: 2, Step: 0.5}
	s.cfg.LongStereo.Sweep = config.Sweep{Start: 2, Stop: 2.5, Step: 0.5}
	s.rebuild()

	results := s.runner.RunAll()
	s.Require().Len(results, 8)

	failed := map[string]bool{}
	for _, r := range results {
		if !r.Passed() {
			failed[r.Name] = true
			s.ErrorIs(r.Err, wavio.ErrFileNotFound, r.Name)
		}
	}
	s.Equal(map[string]bool{NameSpeechRange: true, NameSpeechStereoMatch: true}, failed)
}

func (s *ScenarioSuite) TestRunSelected() {
	results, err := s.runner.Run(NameIdentity, NameSteadyTone)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(NameIdentity, results[0].Name)
	s.True(results[1].Passed())

	_, err = s.runner.Run("bogus", NameChirp)
	s.Require().ErrorIs(err, ErrUnknownScenario)
	s.Contains(err.Error(), "bogus")
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}
