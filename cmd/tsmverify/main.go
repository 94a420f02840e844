// Command tsmverify runs the time-scale modification acceptance scenarios and
// exposes the bundled engine for ad hoc use.
//
// Usage:
//
//	tsmverify run [--config verify.yaml] [--scratch-dir out] [scenario...]
//	tsmverify stretch --speed 2 input.wav output.wav
//	tsmverify stretch --schedule 48000:2,0.5 input.wav output.wav
//	tsmverify fixtures testdata
//
// Commands:
//
//	run      - Run acceptance scenarios; exits non-zero when any fails
//	stretch  - Time-scale a 16-bit WAV file
//	fixtures - Write the synthetic reference recordings
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
