package engine

// Pitch search range. Voices and most pitched instruments fall inside it.
const (
	defaultMinPitchHz = 65.0
	defaultMaxPitchHz = 400.0
)

// Stream limits.
const (
	maxChannels = 256

	// minSpeed and maxSpeed bound the time-scale factor.
	minSpeed = 0.05
	maxSpeed = 100.0

	// windowPeriods is how many maximal pitch periods the period search needs
	// buffered ahead of the processing position.
	windowPeriods = 2

	// defaultOutputCapacity is the initial output queue size in frames.
	defaultOutputCapacity = 4096
)
