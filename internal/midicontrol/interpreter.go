package midicontrol

import "log"

// Interpreter owns keyboard/controller channel routing and sustain-pedal
// state, and emits semantic Events onto a bounded output queue (Queue B in
// spec terms). It is driven from the control thread's HandleRawEvent calls
// and must never block: the output send is non-blocking try-send, and an
// overflowing queue is logged and the event dropped, per spec §4.1/§7.
type Interpreter struct {
	keyboardChannel   uint8
	controllerChannel uint8

	pressed      [128]bool
	sustained    [128]bool
	sustainPedal bool

	out    chan<- Event
	logger *log.Logger
}

// New constructs an Interpreter bound to the given keyboard/controller
// channels and output queue. logger may be nil, in which case the standard
// library's default logger is used for drop warnings.
func New(keyboardChannel, controllerChannel uint8, out chan<- Event, logger *log.Logger) *Interpreter {
	if logger == nil {
		logger = log.Default()
	}
	return &Interpreter{
		keyboardChannel:   keyboardChannel,
		controllerChannel: controllerChannel,
		out:               out,
		logger:            logger,
	}
}

// emit attempts a non-blocking send; on a full queue it logs and drops.
func (it *Interpreter) emit(e Event) {
	select {
	case it.out <- e:
	default:
		it.logger.Printf("midicontrol: event queue full, dropping event %+v", e)
	}
}

// HandleRawEvent processes one raw MIDI event, updating interpreter state
// and emitting zero or more semantic Events.
func (it *Interpreter) HandleRawEvent(ev RawEvent) {
	switch ev.Kind {
	case RawNoteOn:
		if ev.Channel == it.keyboardChannel {
			it.noteOn(ev.Key, ev.Velocity)
		}
	case RawNoteOff:
		if ev.Channel == it.keyboardChannel {
			it.noteOff(ev.Key)
		}
	case RawController:
		if ev.Channel == it.keyboardChannel && ev.CC == SustainCC {
			it.sustainCC(ev.Value)
		} else if ev.Channel == it.controllerChannel {
			it.emit(Event{Kind: EventParamChange, Param: ev.CC, Value: float32(ev.Value) / 127})
		}
	}
}

func (it *Interpreter) noteOn(key, velocity uint8) {
	if it.pressed[key] || it.sustained[key] {
		it.emit(Event{Kind: EventNoteOff, Key: key})
	}
	it.emit(Event{Kind: EventNoteOn, Key: key, Velocity: float32(velocity) / 127})
	it.pressed[key] = true
	if it.sustainPedal {
		it.sustained[key] = true
	}
}

func (it *Interpreter) noteOff(key uint8) {
	if it.pressed[key] && !it.sustainPedal {
		it.emit(Event{Kind: EventNoteOff, Key: key})
	}
	it.pressed[key] = false
}

func (it *Interpreter) sustainCC(value uint8) {
	if value > 0 {
		it.sustainPedal = true
		for i := range it.sustained {
			it.sustained[i] = it.sustained[i] || it.pressed[i]
		}
		return
	}

	it.sustainPedal = false
	for i := range it.sustained {
		if it.sustained[i] && !it.pressed[i] {
			it.emit(Event{Kind: EventNoteOff, Key: uint8(i)})
		}
		it.sustained[i] = false
	}
}
