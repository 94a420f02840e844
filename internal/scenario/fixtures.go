package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	tsm "github.com/tphakala/go-audio-tsm"
	"github.com/tphakala/go-audio-tsm/internal/wavio"
)

// WriteFixtures synthesizes the reference recordings used by the speech
// scenarios into dir: a mono 16 kHz utterance of 50381 samples and a stereo
// 48 kHz one of four seconds. It returns their paths.
func WriteFixtures(dir string) (monoPath, stereoPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create fixture dir: %w", err)
	}

	monoPath = filepath.Join(dir, MonoFixtureName)
	mono := tsm.Waveform{
		Samples:    SpeechLike(monoFixtureFrames, monoFixtureRate, 1, monoFixtureSeed),
		SampleRate: monoFixtureRate,
		Channels:   1,
	}
	if err := wavio.Write(monoPath, mono); err != nil {
		return "", "", err
	}

	stereoPath = filepath.Join(dir, StereoFixtureName)
	stereo := tsm.Waveform{
		Samples:    SpeechLike(stereoFixtureSeconds*stereoFixtureRate, stereoFixtureRate, 2, stereoFixtureSeed),
		SampleRate: stereoFixtureRate,
		Channels:   2,
	}
	if err := wavio.Write(stereoPath, stereo); err != nil {
		return "", "", err
	}

	return monoPath, stereoPath, nil
}
