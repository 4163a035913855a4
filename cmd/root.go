package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "synth",
	Short: "A real-time polyphonic software synthesizer driven by MIDI",
	Long: `synth is a real-time polyphonic software synthesizer driven by MIDI.

Incoming MIDI note, sustain-pedal, and controller messages are translated into
note lifecycles and parameter changes; a voice allocator maintains up to 64
concurrently sounding voices; each voice runs dual oscillators, waveshaping
distortion, a non-linear resonant low-pass filter, and an optional compressor.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
