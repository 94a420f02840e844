package scenario

import tsm "github.com/tphakala/go-audio-tsm"

// Speech-like synthesis parameters.
const (
	speechMinSegment    = 0.08 // seconds
	speechMaxSegment    = 0.25 // seconds
	speechSilenceShare  = 0.2
	speechUnvoicedShare = 0.2
	speechMinPitch      = 90.0 // Hz
	speechMaxPitch      = 220.0
	speechHarmonics     = 8
	speechVoicedLevel   = 9000.0
	speechUnvoicedLevel = 2500.0
	speechFloorLevel    = 40.0
	speechSideGain      = 0.85
	speechClip          = 32000.0
)

// Fixture files written by WriteFixtures.
const (
	MonoFixtureName   = "speech_mono_16k.wav"
	StereoFixtureName = "speech_stereo_48k.wav"

	monoFixtureRate      = tsm.RateVoIP
	monoFixtureFrames    = 50381
	monoFixtureSeed      = 1
	stereoFixtureRate    = tsm.RateDAT
	stereoFixtureSeconds = 4
	stereoFixtureSeed    = 2
)
