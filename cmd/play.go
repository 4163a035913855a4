package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/orlp/synth/internal/audiodriver"
	"github.com/orlp/synth/internal/config"
	"github.com/orlp/synth/internal/engine"
	"github.com/orlp/synth/internal/mididevice"
	"github.com/orlp/synth/internal/midicontrol"
	"github.com/orlp/synth/internal/miditransport"
	"github.com/orlp/synth/internal/synth"
)

const (
	defaultSampleRate = 44100
	defaultChannels   = 2
	queueBCapacity    = 1024
)

var (
	playKeyboardChannel   uint8
	playControllerChannel uint8
	playOutputDevices     []string
	playButtonMapPath     string
	playSampleRate        int
	playChannels          int
)

var playCmd = &cobra.Command{
	Use:   "play [input port]...",
	Short: "Listen on MIDI input ports and play them through the synthesizer",
	Long: `Listen on one or more MIDI input ports and play the result through the
synthesizer.

One synth island (parameter state, voice allocator, and audio stream) is
spun up per --output-device; every named MIDI input port fans its events
into every island, per the top-level wiring described in the system
overview.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Uint8Var(&playKeyboardChannel, "keyboard", 0, "MIDI channel carrying note and sustain-pedal events")
	playCmd.Flags().Uint8Var(&playControllerChannel, "controller", 0, "MIDI channel carrying parameter control-change events")
	playCmd.Flags().StringArrayVar(&playOutputDevices, "output-device", nil, "output device to play through (repeatable; default: system default)")
	playCmd.Flags().StringVar(&playButtonMapPath, "button-map", "buttonmap.conf", "path to the button-map configuration file")
	playCmd.Flags().IntVar(&playSampleRate, "sample-rate", defaultSampleRate, "audio output sample rate")
	playCmd.Flags().IntVar(&playChannels, "channels", defaultChannels, "audio output channel count (1 or 2)")
	rootCmd.AddCommand(playCmd)
}

// island is one independent synth: its own parameter state, voice allocator,
// semantic event queue, interpreter, and audio stream. Spec §5 requires no
// shared mutable state between synths, so every per-device piece here is
// freshly constructed, never shared across islands.
type island struct {
	name        string
	interpreter *midicontrol.Interpreter
	driver      *audiodriver.Driver
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stderr, "synth: ", log.LstdFlags)

	f, err := os.Open(playButtonMapPath)
	if err != nil {
		return fmt.Errorf("opening button-map file: %w", err)
	}
	buttonMap, err := config.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing button-map file: %w", err)
	}

	outputDevices := playOutputDevices
	if len(outputDevices) == 0 {
		outputDevices = []string{audiodriver.DefaultDeviceName}
	}

	islands := make([]*island, 0, len(outputDevices))
	defer func() {
		for _, isl := range islands {
			isl.driver.Close()
		}
	}()

	for i, deviceName := range outputDevices {
		queueB := make(chan midicontrol.Event, queueBCapacity)
		params := synth.NewParams(float64(playSampleRate), uint64(i)+1, buttonMap)
		interp := midicontrol.New(playKeyboardChannel, playControllerChannel, queueB, logger)
		eng := engine.New(params, queueB)

		driver, err := audiodriver.Open(eng, playSampleRate, playChannels)
		if err != nil {
			return fmt.Errorf("opening output device %q: %w", deviceName, err)
		}

		islands = append(islands, &island{name: deviceName, interpreter: interp, driver: driver})
	}

	rawQueue := miditransport.NewQueue()
	listeners := make([]*miditransport.Listener, 0, len(args))
	for _, portName := range args {
		port, err := mididevice.OpenInputByName(portName)
		if err != nil {
			return fmt.Errorf("opening MIDI input %q: %w", portName, err)
		}
		listener := miditransport.NewListener(port, rawQueue, logger)
		if err := listener.Start(); err != nil {
			return fmt.Errorf("listening on MIDI input %q: %w", portName, err)
		}
		listeners = append(listeners, listener)
	}
	defer func() {
		for _, l := range listeners {
			l.Stop()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		for _, l := range listeners {
			l.Stop()
		}
		close(rawQueue)
	}()

	fmt.Println(playStartupBanner(args, outputDevices))
	logger.Printf("playing: %d input port(s), %d output device(s)", len(listeners), len(islands))
	for ev := range rawQueue {
		for _, isl := range islands {
			isl.interpreter.HandleRawEvent(ev)
		}
	}

	return nil
}

// playStartupBanner renders a one-line styled summary of what play is about
// to do. Purely cosmetic: never used on the MIDI or audio hot paths.
func playStartupBanner(inputs, outputs []string) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))

	return fmt.Sprintf("%s %s  %s %s",
		label.Render("in:"), value.Render(fmt.Sprint(inputs)),
		label.Render("out:"), value.Render(fmt.Sprint(outputs)))
}
