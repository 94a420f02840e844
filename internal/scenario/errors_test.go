package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckNear(t *testing.T) {
	require.NoError(t, checkNear("s", "q", 100, 101, 1))
	require.NoError(t, checkNear("s", "q", 100, 99, 1))

	err := checkNear("steady_tone", "output frames", 7333, 7400, 73.33)
	require.NoError(t, err)

	err = checkNear("steady_tone", "output frames", 7333, 7500, 73.33)
	require.ErrorIs(t, err, ErrToleranceExceeded)
	assert.Equal(t,
		"steady_tone: output frames: expected 7333, actual 7500, delta 167 exceeds tolerance 73.33",
		err.Error())

	var tolErr *ToleranceError
	require.ErrorAs(t, err, &tolErr)
	assert.InDelta(t, 167.0, tolErr.Delta(), 0)
}

func TestToleranceError_JoinedStillMatches(t *testing.T) {
	err := errors.Join(nil, checkNear("chirp", "middle half slope", 1, 2, 0.01))
	require.ErrorIs(t, err, ErrToleranceExceeded)
	assert.NotErrorIs(t, err, ErrUnknownScenario)
}
