// Package midicontrol translates raw MIDI events into semantic synth events,
// owning the keyboard/controller channel split and sustain-pedal semantics.
package midicontrol

// SustainCC is the MIDI Continuous Controller number for the sustain pedal.
const SustainCC = 64

// RawKind identifies the content of a RawEvent.
type RawKind int

const (
	RawNoteOn RawKind = iota
	RawNoteOff
	RawController
)

// RawEvent is a raw, already-parsed MIDI message (see internal/miditransport
// for the byte-level parser that produces these).
type RawEvent struct {
	Timestamp uint64
	Channel   uint8 // 0..15
	Kind      RawKind
	Key       uint8 // note number, for RawNoteOn/RawNoteOff
	Velocity  uint8 // 0..127, for RawNoteOn/RawNoteOff
	CC        uint8 // controller number, for RawController
	Value     uint8 // controller value, for RawController
}

// EventKind identifies the content of an Event.
type EventKind int

const (
	EventNoteOn EventKind = iota
	EventNoteOff
	EventParamChange
)

// Event is a semantic synth event, post-interpretation.
type Event struct {
	Kind     EventKind
	Key      uint8   // EventNoteOn/EventNoteOff
	Velocity float32 // EventNoteOn, normalized 0..1
	Param    uint8   // EventParamChange, MIDI CC number
	Value    float32 // EventParamChange, normalized 0..1
}
