// Command freqresp prints frequency responses of impulse response files.
//
// Usage:
//
//	freqresp [flags] <command>
//
// Examples:
//
//	freqresp response room.wav
//	freqresp response --fft-log2 16 -o csv speaker.wav
//	freqresp compare before.wav after.wav --tolerance -40
//	freqresp grid --points 10
//	freqresp taper 8
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-freqresp/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
