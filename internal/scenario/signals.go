package scenario

import (
	"math"
	"math/rand"
)

// Generators truncate toward zero when converting to int16, as a C cast does,
// so generated signals match the recordings the tolerances were tuned on.

// Cycle returns one period of a sinusoid.
func Cycle(period int, amplitude float64) []int16 {
	out := make([]int16, period)
	for i := range out {
		out[i] = int16(amplitude * math.Sin(float64(i)*2*math.Pi/float64(period)))
	}
	return out
}

// Repeat concatenates times copies of c.
func Repeat(c []int16, times int) []int16 {
	out := make([]int16, 0, len(c)*times)
	for range times {
		out = append(out, c...)
	}
	return out
}

// Sinusoid returns frames samples of a sinusoid at freq Hz.
func Sinusoid(frames int, freq, amplitude float64, sampleRate int) []int16 {
	out := make([]int16, frames)
	for i := range out {
		out[i] = int16(amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return out
}

// Chirp returns a tone whose frequency rises linearly from startHz to endHz
// over duration seconds. The phase in cycles is f0*t + (f1-f0)/D * t^2/2.
func Chirp(sampleRate int, startHz, endHz, duration, amplitude float64) []int16 {
	frames := int(duration * float64(sampleRate))
	rate := (endHz - startHz) / duration
	out := make([]int16, frames)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		phase := startHz*t + rate*t*t/2
		out[i] = int16(amplitude * math.Sin(2*math.Pi*phase))
	}
	return out
}

// Noise returns Gaussian noise with the given standard deviation clipped to
// [-clip, clip]. The same seed always yields the same samples.
func Noise(frames int, stdDev, clip float64, seed int64) []int16 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int16, frames)
	for i := range out {
		out[i] = int16(math.Max(-clip, math.Min(clip, rng.NormFloat64()*stdDev)))
	}
	return out
}

// segment kinds for SpeechLike.
const (
	segmentVoiced = iota
	segmentUnvoiced
	segmentSilence
)

// SpeechLike synthesizes a deterministic utterance-like signal: voiced
// stretches of gliding harmonic pitch, noisy unvoiced bursts and pauses, each
// under a smooth envelope. Channels after the first get a lower gain and
// independent low-level noise so they are not identical.
func SpeechLike(frames, sampleRate, channels int, seed int64) []int16 {
	rng := rand.New(rand.NewSource(seed))
	mono := make([]float64, frames)
	rate := float64(sampleRate)

	var phase float64
	for pos := 0; pos < frames; {
		dur := int(rate * (speechMinSegment + rng.Float64()*(speechMaxSegment-speechMinSegment)))
		dur = min(max(dur, 1), frames-pos)

		kind := segmentVoiced
		switch r := rng.Float64(); {
		case r < speechSilenceShare:
			kind = segmentSilence
		case r < speechSilenceShare+speechUnvoicedShare:
			kind = segmentUnvoiced
		}

		f0 := speechMinPitch + rng.Float64()*(speechMaxPitch-speechMinPitch)
		f1 := speechMinPitch + rng.Float64()*(speechMaxPitch-speechMinPitch)
		for i := range dur {
			frac := float64(i) / float64(dur)
			env := math.Sin(math.Pi * frac)
			var v float64
			switch kind {
			case segmentVoiced:
				f := f0 + (f1-f0)*frac
				phase += 2 * math.Pi * f / rate
				for k := 1; k <= speechHarmonics; k++ {
					v += math.Sin(float64(k)*phase) / float64(k)
				}
				v *= speechVoicedLevel * env
			case segmentUnvoiced:
				v = rng.NormFloat64() * speechUnvoicedLevel * env
			default:
				v = rng.NormFloat64() * speechFloorLevel
			}
			mono[pos+i] = v
		}
		pos += dur
	}

	out := make([]int16, frames*channels)
	for i, v := range mono {
		for c := range channels {
			gain := 1.0
			if c > 0 {
				gain = speechSideGain
			}
			s := v*gain + rng.NormFloat64()*speechFloorLevel*float64(c)
			out[i*channels+c] = int16(math.Max(-speechClip, math.Min(speechClip, s)))
		}
	}
	return out
}
