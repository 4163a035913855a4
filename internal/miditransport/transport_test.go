package miditransport

import (
	"testing"

	"github.com/orlp/synth/internal/midicontrol"
)

func TestParseNoteOn(t *testing.T) {
	ev, ok := Parse([]byte{0x90, 69, 100}, 1)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if ev.Kind != midicontrol.RawNoteOn || ev.Channel != 0 || ev.Key != 69 || ev.Velocity != 100 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestParseNoteOnVelocityZeroIsNoteOff(t *testing.T) {
	ev, ok := Parse([]byte{0x91, 60, 0}, 1)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if ev.Kind != midicontrol.RawNoteOff || ev.Channel != 1 || ev.Key != 60 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestParseNoteOff(t *testing.T) {
	ev, ok := Parse([]byte{0x80, 60, 64}, 1)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if ev.Kind != midicontrol.RawNoteOff || ev.Key != 60 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestParseControlChange(t *testing.T) {
	ev, ok := Parse([]byte{0xB2, 64, 127}, 1)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if ev.Kind != midicontrol.RawController || ev.Channel != 2 || ev.CC != 64 || ev.Value != 127 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestParseIgnoresOtherMessageTypes(t *testing.T) {
	// Pitch bend (0xE0) is not interpreted by this system.
	if _, ok := Parse([]byte{0xE0, 0, 64}, 1); ok {
		t.Fatal("expected pitch bend to be ignored")
	}
}

func TestParseRejectsShortMessages(t *testing.T) {
	if _, ok := Parse([]byte{0x90, 60}, 1); ok {
		t.Fatal("expected truncated note-on to fail parsing")
	}
	if _, ok := Parse(nil, 1); ok {
		t.Fatal("expected empty data to fail parsing")
	}
}
