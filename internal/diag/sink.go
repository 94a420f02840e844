// Package diag stores diagnostic traces and waveforms produced by the
// acceptance scenarios for offline plotting. Nothing written here affects a
// scenario's outcome.
package diag

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	tsm "github.com/tphakala/go-audio-tsm"
	"github.com/tphakala/go-audio-tsm/internal/wavio"
)

// Sink receives named diagnostic outputs.
type Sink interface {
	WriteTrace(name string, values []float64) error
	WriteWave(name string, w tsm.Waveform) error
}

// Nop discards everything.
type Nop struct{}

// WriteTrace implements Sink.
func (Nop) WriteTrace(string, []float64) error { return nil }

// WriteWave implements Sink.
func (Nop) WriteWave(string, tsm.Waveform) error { return nil }

// Dir writes traces as name.txt, one "  %g" value per line, and waveforms as
// name.wav under a directory.
type Dir struct {
	path string
}

// NewDir creates the directory if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create diagnostic dir: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory.
func (d *Dir) Path() string { return d.path }

// WriteTrace implements Sink.
func (d *Dir) WriteTrace(name string, values []float64) (err error) {
	f, err := os.Create(filepath.Join(d.path, name+".txt"))
	if err != nil {
		return fmt.Errorf("create trace %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	for _, v := range values {
		if _, err := fmt.Fprintf(w, "  %g\n", float32(v)); err != nil {
			return fmt.Errorf("write trace %s: %w", name, err)
		}
	}
	return w.Flush()
}

// WriteWave implements Sink.
func (d *Dir) WriteWave(name string, w tsm.Waveform) error {
	return wavio.Write(filepath.Join(d.path, name+".wav"), w)
}

// Memory keeps copies of everything written, for tests.
type Memory struct {
	mu     sync.Mutex
	traces map[string][]float64
	waves  map[string]tsm.Waveform
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{
		traces: make(map[string][]float64),
		waves:  make(map[string]tsm.Waveform),
	}
}

// WriteTrace implements Sink.
func (m *Memory) WriteTrace(name string, values []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traces[name] = slices.Clone(values)
	return nil
}

// WriteWave implements Sink.
func (m *Memory) WriteWave(name string, w tsm.Waveform) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.Samples = slices.Clone(w.Samples)
	m.waves[name] = w
	return nil
}

// Trace returns a stored trace.
func (m *Memory) Trace(name string) ([]float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.traces[name]
	return v, ok
}

// Wave returns a stored waveform.
func (m *Memory) Wave(name string) (tsm.Waveform, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.waves[name]
	return w, ok
}

// Names returns the sorted names of every stored output.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.traces)+len(m.waves))
	for n := range m.traces {
		names = append(names, n)
	}
	for n := range m.waves {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Int16Trace widens samples for WriteTrace.
func Int16Trace(samples []int16) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = float64(v)
	}
	return out
}
