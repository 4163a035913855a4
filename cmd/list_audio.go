package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orlp/synth/internal/audiodriver"
)

var listAudioCmd = &cobra.Command{
	Use:   "list-audio",
	Short: "List available audio output devices",
	Long: `List the audio output devices this synthesizer can address.

Device names printed here are the values to pass to play's --output-device
flag.`,
	Run: runListAudio,
}

func init() {
	rootCmd.AddCommand(listAudioCmd)
}

func runListAudio(cmd *cobra.Command, args []string) {
	for _, name := range audiodriver.ListOutputDevices() {
		fmt.Println(name)
	}
}
