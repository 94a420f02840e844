package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-tsm/internal/testutil"
)

func TestFindPeriod_Sinusoid(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		freq     float64
		channels int
		want     []int
	}{
		{"200 Hz at 16 kHz", 16000, 200, 1, []int{80}},
		{"100 Hz at 16 kHz", 16000, 100, 1, []int{160}},
		{"100 Hz at 22.05 kHz", 22050, 100, 1, []int{220, 221}},
		{"stereo 250 Hz at 48 kHz", 48000, 250, 2, []int{192}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStream(DefaultConfig(tt.rate, tt.channels))
			require.NoError(t, err)
			s.input = testutil.Sine(s.maxRequired, tt.channels, tt.freq, 16000, tt.rate)

			assert.Contains(t, tt.want, s.findPeriod(0))
		})
	}
}

func TestFindPeriod_StaysInRange(t *testing.T) {
	s, err := NewStream(DefaultConfig(16000, 1))
	require.NoError(t, err)
	s.input = noise(s.maxRequired, 11)

	period := s.findPeriod(0)
	assert.GreaterOrEqual(t, period, s.minPeriod)
	assert.LessOrEqual(t, period, s.maxPeriod)
}

func TestFillDownmix_Averages(t *testing.T) {
	s, err := NewStream(DefaultConfig(16000, 2))
	require.NoError(t, err)
	s.input = make([]int16, s.maxRequired*2)
	s.input[0], s.input[1] = 100, 301

	d := s.fillDownmix(0)
	assert.InDelta(t, 200.5, d[0], 0)
	assert.Zero(t, d[1])
}

func TestCrossfade_RoundsHalfAwayFromZero(t *testing.T) {
	s, err := NewStream(DefaultConfig(16000, 1))
	require.NoError(t, err)
	s.input = []int16{1, 1, -1, -1, 2, 2, -2, -2}

	s.crossfade(0, 4, 2)
	s.crossfade(2, 6, 2)
	got := s.output.Read(s.output.Available())
	// (2*1+0*2)/2, (1*1+1*2)/2, (2*-1+0*-2)/2, (1*-1+1*-2)/2
	assert.Equal(t, []int16{1, 2, -1, -2}, got)
}

func TestClampInt16(t *testing.T) {
	assert.Equal(t, int16(32767), clampInt16(40000))
	assert.Equal(t, int16(-32768), clampInt16(-40000))
	assert.Equal(t, int16(12), clampInt16(12))
}
