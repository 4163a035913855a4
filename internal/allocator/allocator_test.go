package allocator

import "testing"

// fakeSynth stands in for the concrete synth parameter block in tests.
type fakeSynth struct{}

// fakeVoice is a minimal Voice[fakeSynth] that becomes done once told to.
type fakeVoice struct {
	released bool
	done     bool
}

func (v *fakeVoice) NotifyRelease()         { v.released = true }
func (v *fakeVoice) IsDone(s *fakeSynth) bool { return v.done }
func (v *fakeVoice) StepFrame(s *fakeSynth) (float32, float32) {
	return 1, 1
}

func newFakeAllocator() *Allocator[fakeSynth, *fakeVoice] {
	return New[fakeSynth, *fakeVoice]()
}

func TestPolyphonyBound(t *testing.T) {
	a := newFakeAllocator()
	for key := 0; key < MaxPolyphony+10; key++ {
		a.HandleNoteOn(uint8(key%128), func() *fakeVoice { return &fakeVoice{} })
		if a.Len() > MaxPolyphony {
			t.Fatalf("polyphony bound violated: %d live channels", a.Len())
		}
	}
	if a.Len() != MaxPolyphony {
		t.Fatalf("expected exactly MaxPolyphony live channels, got %d", a.Len())
	}
}

func TestAtMostOneSustainingPerKey(t *testing.T) {
	a := newFakeAllocator()
	a.HandleNoteOn(60, func() *fakeVoice { return &fakeVoice{} })
	if !a.KeyToChannelSustained(60) {
		t.Fatal("expected key 60 to have a sustaining channel after NoteOn")
	}
	a.HandleNoteOff(60)
	if a.KeyToChannelSustained(60) {
		t.Fatal("expected key 60 to have no sustaining channel after NoteOff")
	}
}

func TestVoiceStealingPrefersSustainedOverReleased(t *testing.T) {
	a := newFakeAllocator()

	// Fill to capacity with distinct keys, none released.
	for key := uint8(0); key < MaxPolyphony; key++ {
		a.HandleNoteOn(key, func() *fakeVoice { return &fakeVoice{} })
	}

	// Release key 30; every other channel remains sustained and so outranks
	// it as a steal target regardless of id, per the maximum-(is_sustained,
	// id) rule.
	a.HandleNoteOff(30)

	a.HandleNoteOn(100, func() *fakeVoice { return &fakeVoice{} })

	if !channelForKeyExists(a, 30) {
		t.Fatal("the released channel (30) should not have been stolen: a sustained channel always outranks it")
	}
	if channelForKeyExists(a, 63) {
		t.Fatal("expected the highest-id sustained channel (63) to have been stolen")
	}
	if a.Len() != MaxPolyphony {
		t.Fatalf("expected polyphony to remain at cap after steal, got %d", a.Len())
	}
}

// channelForKeyExists reports whether some in-use channel currently holds
// key, sustained or not.
func channelForKeyExists(a *Allocator[fakeSynth, *fakeVoice], key uint8) bool {
	for h := Handle(0); h < MaxPolyphony; h++ {
		c := &a.slots[h]
		if c.inUse && c.key == key {
			return true
		}
	}
	return false
}

func TestStealingFallsBackToMostRecentlyPressedWhenNoneReleased(t *testing.T) {
	a := newFakeAllocator()
	keys := make([]uint8, 0, MaxPolyphony)
	for key := uint8(0); key < MaxPolyphony; key++ {
		keys = append(keys, key)
		a.HandleNoteOn(key, func() *fakeVoice { return &fakeVoice{} })
	}
	// None released: stealing one more note should steal the highest id,
	// i.e. the most recently pressed key (the last one inserted).
	mostRecent := keys[len(keys)-1]

	a.HandleNoteOn(uint8(90), func() *fakeVoice { return &fakeVoice{} })

	if a.KeyToChannelSustained(mostRecent) {
		t.Fatalf("expected most-recently-pressed key %d to be stolen when nothing is released", mostRecent)
	}
}

func TestRetireDoneFreesSlot(t *testing.T) {
	a := newFakeAllocator()
	v := &fakeVoice{}
	a.HandleNoteOn(10, func() *fakeVoice { return v })
	if a.Len() != 1 {
		t.Fatalf("expected 1 live channel, got %d", a.Len())
	}

	var s fakeSynth
	a.RetireDone(&s)
	if a.Len() != 1 {
		t.Fatalf("voice not yet done, should still be live")
	}

	v.done = true
	a.RetireDone(&s)
	if a.Len() != 0 {
		t.Fatalf("expected voice to be retired once done, got %d live", a.Len())
	}
}

func TestStepAllVoicesSumsOutputs(t *testing.T) {
	a := newFakeAllocator()
	a.HandleNoteOn(1, func() *fakeVoice { return &fakeVoice{} })
	a.HandleNoteOn(2, func() *fakeVoice { return &fakeVoice{} })

	var s fakeSynth
	l, r := a.StepAllVoices(&s)
	if l != 2 || r != 2 {
		t.Fatalf("expected summed output (2, 2), got (%v, %v)", l, r)
	}
}

func TestUnknownKeyNoteOffIsNoop(t *testing.T) {
	a := newFakeAllocator()
	a.HandleNoteOff(42) // no channel for key 42; must not panic
	if a.Len() != 0 {
		t.Fatalf("expected no channels, got %d", a.Len())
	}
}
