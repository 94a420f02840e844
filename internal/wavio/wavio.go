// Package wavio reads and writes 16-bit PCM WAV files as interleaved waveforms.
package wavio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	tsm "github.com/tphakala/go-audio-tsm"
)

// Errors returned by Read and Write. Both carry the offending path.
var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("wave file not found")

	// ErrFileUnreadable indicates the input exists but is not a readable 16-bit PCM WAV.
	ErrFileUnreadable = errors.New("wave file unreadable")
)

const (
	bitDepth16 = 16
	formatPCM  = 1
)

// Read decodes a 16-bit PCM WAV file.
func Read(path string) (tsm.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tsm.Waveform{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return tsm.Waveform{}, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return tsm.Waveform{}, fmt.Errorf("%w: %s: invalid WAV header", ErrFileUnreadable, path)
	}
	if decoder.BitDepth != bitDepth16 {
		return tsm.Waveform{}, fmt.Errorf("%w: %s: %d-bit samples, want %d-bit",
			ErrFileUnreadable, path, decoder.BitDepth, bitDepth16)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return tsm.Waveform{}, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}

	w := tsm.Waveform{
		Samples:    samples,
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
	}
	if err := w.Validate(); err != nil {
		return tsm.Waveform{}, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
	}
	return w, nil
}

// Write encodes w as a 16-bit PCM WAV file, replacing any existing file.
func Write(path string, w tsm.Waveform) (err error) {
	if err := w.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	data := make([]int, len(w.Samples))
	for i, v := range w.Samples {
		data[i] = int(v)
	}

	encoder := wav.NewEncoder(f, w.SampleRate, bitDepth16, w.Channels, formatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: w.Channels, SampleRate: w.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth16,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}
