// Package mididevice enumerates and opens live MIDI input ports. It wraps
// gitlab.com/gomidi/midi/v2 the same way the teacher's sequencer TUI wraps
// its output-port side (internal/tui/sequencer.go's refreshMIDIPorts/
// selectPort): list with the v2 package-level helpers, open by name.
package mididevice

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// ListInputNames reports the names of every currently visible MIDI input
// port, for the `list-midi` subcommand (spec §6).
func ListInputNames() []string {
	var names []string
	for _, in := range midi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// OpenInputByName finds and opens the named MIDI input port. Matching is by
// exact port name, as reported by ListInputNames.
func OpenInputByName(name string) (drivers.In, error) {
	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			if err := in.Open(); err != nil {
				return nil, fmt.Errorf("mididevice: opening port %q: %w", name, err)
			}
			return in, nil
		}
	}
	return nil, fmt.Errorf("mididevice: no MIDI input port named %q", name)
}
