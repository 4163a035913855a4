// Package allocator implements the bounded-polyphony voice allocator
// (spec's "synth controller"): it spawns and retires voices and applies the
// voice-stealing policy. It runs inside the audio callback and must never
// block or allocate on its hot path beyond the fixed-size slot map
// established at construction.
//
// Allocator is generic over the concrete synth parameter type S and voice
// type V so the audio inner loop calls StepFrame/IsDone directly on a
// monomorphized V rather than through a dynamic interface dispatch, per the
// "closed set of variants" design note in spec §9.
package allocator

// MaxPolyphony is the hard cap on concurrently sounding voices.
const MaxPolyphony = 64

// Voice is the capability a concrete voice type must provide to be managed
// by an Allocator[S, V], mirroring spec's Synth/Voice contract (§4.3).
type Voice[S any] interface {
	NotifyRelease()
	IsDone(s *S) bool
	StepFrame(s *S) (left, right float32)
}

// Handle identifies one allocator-managed channel. It stays valid across
// insertions and removals elsewhere in the slot map, which is what lets
// keyToChannel track a specific channel safely through churn.
type Handle int

const noHandle Handle = -1

// channel is one live note slot: a key, a voice, whether it is the
// currently-sustaining occupant of that key, and a monotonically
// increasing identity used by the stealing policy.
type channel[V any] struct {
	inUse       bool
	key         uint8
	voice       V
	isSustained bool
	id          uint64
}

// Allocator is the bounded-polyphony voice manager. The zero value is not
// usable; construct one with New.
type Allocator[S any, V Voice[S]] struct {
	slots        [MaxPolyphony]channel[V]
	free         []Handle // free slot indices, LIFO
	live         int
	keyToChannel [128]Handle
	idCounter    uint64
}

// New constructs an empty Allocator with all slots free.
func New[S any, V Voice[S]]() *Allocator[S, V] {
	a := &Allocator[S, V]{}
	a.free = make([]Handle, MaxPolyphony)
	for i := range a.free {
		a.free[i] = Handle(MaxPolyphony - 1 - i)
	}
	for i := range a.keyToChannel {
		a.keyToChannel[i] = noHandle
	}
	return a
}

// Len reports the current number of live channels.
func (a *Allocator[S, V]) Len() int { return a.live }

// RetireDone removes every channel whose voice reports done, per spec
// §4.2's pump_events step 1.
func (a *Allocator[S, V]) RetireDone(s *S) {
	for h := Handle(0); h < MaxPolyphony; h++ {
		c := &a.slots[h]
		if c.inUse && c.voice.IsDone(s) {
			a.retireSlot(h)
		}
	}
}

// HandleNoteOn spawns a new voice for key using newVoice to construct it,
// stealing an existing channel first if the allocator is already at
// MaxPolyphony.
func (a *Allocator[S, V]) HandleNoteOn(key uint8, newVoice func() V) {
	if a.live >= MaxPolyphony {
		a.steal()
	}

	h := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]
	a.live++

	a.idCounter++
	a.slots[h] = channel[V]{
		inUse:       true,
		key:         key,
		voice:       newVoice(),
		isSustained: true,
		id:          a.idCounter,
	}
	a.keyToChannel[key] = h
}

// steal selects the channel with the maximum lexicographic pair
// (is_sustained, id) and retires it, returning its slot to the free list,
// per spec §4.2/§9. Boolean true outranks false in this ordering, so a
// still-sustained channel is preferred over an already-released one; within
// either group the larger id (the more recently created channel) wins.
func (a *Allocator[S, V]) steal() {
	best := Handle(-1)
	var bestSustained bool
	var bestID uint64

	for h := Handle(0); h < MaxPolyphony; h++ {
		c := &a.slots[h]
		if !c.inUse {
			continue
		}
		if best == -1 || greaterStealKey(c.isSustained, c.id, bestSustained, bestID) {
			best = h
			bestSustained = c.isSustained
			bestID = c.id
		}
	}

	a.retireSlot(best)
}

// greaterStealKey reports whether channel A outranks channel B as the steal
// target: the maximum lexicographic pair (is_sustained, id), matching bool's
// natural ordering (false < true) the same way the reference implementation's
// tuple comparison does. A sustained channel outranks a released one; within
// the same group, the larger id (more recently created channel) wins.
func greaterStealKey(sustainedA bool, idA uint64, sustainedB bool, idB uint64) bool {
	if sustainedA != sustainedB {
		return sustainedA && !sustainedB
	}
	return idA > idB
}

// HandleNoteOff notifies the sustaining channel for key, if any, of
// release, and clears its is_sustained bit and the key_to_channel entry,
// per spec §4.2's pump_events step 2.
func (a *Allocator[S, V]) HandleNoteOff(key uint8) {
	h := a.keyToChannel[key]
	if h == noHandle {
		return
	}
	c := &a.slots[h]
	c.isSustained = false
	c.voice.NotifyRelease()
	a.keyToChannel[key] = noHandle
}

// retireSlot removes a channel entirely, freeing its slot and clearing
// key_to_channel if it still pointed at this channel.
func (a *Allocator[S, V]) retireSlot(h Handle) {
	c := &a.slots[h]
	if !c.inUse {
		return
	}
	if c.isSustained && a.keyToChannel[c.key] == h {
		a.keyToChannel[c.key] = noHandle
	}
	var zero channel[V]
	a.slots[h] = zero
	a.free = append(a.free, h)
	a.live--
}

// StepAllVoices sums every live voice's output for one sample frame, per
// spec §4.2's step_all_voices. It does not advance the synth's own
// parameter smoothing; the caller does that before calling it.
func (a *Allocator[S, V]) StepAllVoices(s *S) (left, right float32) {
	for h := Handle(0); h < MaxPolyphony; h++ {
		c := &a.slots[h]
		if c.inUse {
			l, r := c.voice.StepFrame(s)
			left += l
			right += r
		}
	}
	return left, right
}

// KeyToChannelSustained reports whether key currently has a live,
// sustaining channel — exposed for the at-most-one-sustaining-per-key
// invariant tests.
func (a *Allocator[S, V]) KeyToChannelSustained(key uint8) bool {
	h := a.keyToChannel[key]
	if h == noHandle {
		return false
	}
	c := &a.slots[h]
	return c.inUse && c.key == key && c.isSustained
}
