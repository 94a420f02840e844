package tsm

// Channel constants
const (
	stereoChannels = 2   // Stereo channel count (used by DuplicateToStereo)
	maxChannels    = 256 // Maximum supported channel count
)

// Harness defaults
const (
	// DefaultChunkFrames is the number of frames written per engine call.
	DefaultChunkFrames = 1024
)

// Common sample rates used by the acceptance scenarios.
const (
	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = 22050

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000
)
