package analysis

const (
	// minTraceSamples is the shortest input with one interior sample.
	minTraceSamples = 3

	// minSpectrumSamples is the shortest input DominantFrequency accepts.
	minSpectrumSamples = 16

	// int16Scale maps 16-bit samples to [-1, 1).
	int16Scale = 1.0 / 32768
)
