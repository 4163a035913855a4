package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orlp/synth/internal/mididevice"
)

var listMidiCmd = &cobra.Command{
	Use:   "list-midi",
	Short: "List available MIDI input ports",
	Long: `List the MIDI input ports currently visible to the system.

Port names printed here are the exact strings to pass as positional
arguments to the play subcommand.`,
	Run: runListMidi,
}

func init() {
	rootCmd.AddCommand(listMidiCmd)
}

func runListMidi(cmd *cobra.Command, args []string) {
	names := mididevice.ListInputNames()
	if len(names) == 0 {
		fmt.Println("(no MIDI input ports found)")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}
