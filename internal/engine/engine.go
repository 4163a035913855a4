// Package engine wires the default synth's parameter block, the generic
// voice allocator, and the MIDI interpreter's semantic event queue together
// into the concrete object the audio driver glue drives once per buffer and
// once per sample frame (spec §4.2/§4.9).
package engine

import (
	"math"

	"github.com/orlp/synth/internal/allocator"
	"github.com/orlp/synth/internal/midicontrol"
	"github.com/orlp/synth/internal/synth"
)

// Engine binds one default Synth's parameter state to one voice allocator
// and one inbound semantic-event queue (Queue B, in spec terms).
type Engine struct {
	Params *synth.Params
	alloc  *allocator.Allocator[synth.Params, *synth.Voice]
	events <-chan midicontrol.Event
}

// New constructs an Engine. events is Queue B: the bounded channel the
// MIDI interpreter publishes semantic events onto.
func New(params *synth.Params, events <-chan midicontrol.Event) *Engine {
	return &Engine{
		Params: params,
		alloc:  allocator.New[synth.Params, *synth.Voice](),
		events: events,
	}
}

// keyToPitch converts a MIDI key number to its equal-tempered frequency,
// A4 (key 69) = 440Hz, per spec §4.2.
func keyToPitch(key uint8) float32 {
	return 440 * float32(math.Pow(2, (float64(key)-69)/12))
}

// PumpEvents is called once per audio buffer, before any sample is
// generated: it retires done voices and non-blockingly drains the event
// queue, per spec §4.2.
func (e *Engine) PumpEvents() {
	e.alloc.RetireDone(e.Params)

	for {
		select {
		case ev, ok := <-e.events:
			if !ok {
				return
			}
			e.handle(ev)
		default:
			return
		}
	}
}

func (e *Engine) handle(ev midicontrol.Event) {
	switch ev.Kind {
	case midicontrol.EventNoteOn:
		pitch := keyToPitch(ev.Key)
		velocity := ev.Velocity
		e.alloc.HandleNoteOn(ev.Key, func() *synth.Voice {
			return synth.NewVoice(pitch, velocity, e.Params)
		})
	case midicontrol.EventNoteOff:
		e.alloc.HandleNoteOff(ev.Key)
	case midicontrol.EventParamChange:
		e.Params.ParamChange(ev.Param, ev.Value)
	}
}

// StepAllVoices is called once per output sample frame: it advances the
// synth's per-frame parameter smoothing and sums every active voice's output, per
// spec §4.2.
func (e *Engine) StepAllVoices() (left, right float32) {
	e.Params.StepFrame()
	return e.alloc.StepAllVoices(e.Params)
}

// Polyphony reports the number of currently live voices, for diagnostics.
func (e *Engine) Polyphony() int { return e.alloc.Len() }

// channelSustained reports whether key currently has a live, sustaining
// channel. Exposed for tests exercising the at-most-one-sustaining-per-key
// invariant at the engine level.
func (e *Engine) channelSustained(key uint8) bool {
	return e.alloc.KeyToChannelSustained(key)
}
