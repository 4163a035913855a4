// Package miditransport parses live MIDI bytes into timestamped RawEvents
// and delivers them over a bounded queue (Queue A in spec terms). It is the
// MIDI callback thread side of the pipeline: non-blocking, never allocates
// beyond the queue itself, and drops events rather than stalling its caller.
package miditransport

import (
	"log"

	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/orlp/synth/internal/midicontrol"
)

// QueueACapacity is the bounded capacity of the raw-MIDI handoff queue.
const QueueACapacity = 1024

// NewQueue constructs a Queue A channel of the spec-mandated capacity.
func NewQueue() chan midicontrol.RawEvent {
	return make(chan midicontrol.RawEvent, QueueACapacity)
}

// Parse interprets one raw MIDI message per spec §6: Note On (0x90), Note On
// with velocity 0 (treated as Note Off), Note Off (0x80), and Control
// Change (0xB0). All other status bytes are ignored. ok is false for
// messages this system does not interpret, or malformed/short ones.
func Parse(data []byte, timestamp uint64) (ev midicontrol.RawEvent, ok bool) {
	if len(data) < 1 {
		return midicontrol.RawEvent{}, false
	}

	status := data[0]
	kind := status & 0xF0
	channel := status & 0x0F

	switch kind {
	case 0x90: // Note On (velocity 0 means Note Off)
		if len(data) < 3 {
			return midicontrol.RawEvent{}, false
		}
		key, velocity := data[1], data[2]
		if velocity == 0 {
			return midicontrol.RawEvent{Timestamp: timestamp, Channel: channel, Kind: midicontrol.RawNoteOff, Key: key}, true
		}
		return midicontrol.RawEvent{Timestamp: timestamp, Channel: channel, Kind: midicontrol.RawNoteOn, Key: key, Velocity: velocity}, true
	case 0x80: // Note Off
		if len(data) < 3 {
			return midicontrol.RawEvent{}, false
		}
		return midicontrol.RawEvent{Timestamp: timestamp, Channel: channel, Kind: midicontrol.RawNoteOff, Key: data[1]}, true
	case 0xB0: // Control Change
		if len(data) < 3 {
			return midicontrol.RawEvent{}, false
		}
		return midicontrol.RawEvent{Timestamp: timestamp, Channel: channel, Kind: midicontrol.RawController, CC: data[1], Value: data[2]}, true
	default:
		return midicontrol.RawEvent{}, false
	}
}

// Listener binds one open MIDI input port to a Queue A channel, parsing
// every incoming message and non-blockingly publishing it.
type Listener struct {
	port    drivers.In
	queue   chan<- midicontrol.RawEvent
	logger  *log.Logger
	stop    func()
	stopped bool
}

// NewListener constructs a Listener for an already-opened input port.
func NewListener(port drivers.In, queue chan<- midicontrol.RawEvent, logger *log.Logger) *Listener {
	if logger == nil {
		logger = log.Default()
	}
	return &Listener{port: port, queue: queue, logger: logger}
}

// Start begins listening on the port's callback thread. The callback never
// blocks: unparseable bytes are logged and dropped, and a full queue is
// logged and dropped, per spec §5/§7.
func (l *Listener) Start() error {
	stop, err := l.port.Listen(func(data []byte, timestampMs int32) {
		ev, ok := Parse(data, uint64(timestampMs))
		if !ok {
			l.logger.Printf("miditransport: dropping unparseable or unsupported MIDI message % X", data)
			return
		}
		select {
		case l.queue <- ev:
		default:
			l.logger.Printf("miditransport: queue A full, dropping event %+v", ev)
		}
	}, drivers.ListenConfig{})
	if err != nil {
		return err
	}
	l.stop = stop
	return nil
}

// Stop stops the listener's callback and closes the underlying port. Safe
// to call more than once; only the first call has any effect.
func (l *Listener) Stop() {
	if l.stopped {
		return
	}
	l.stopped = true
	if l.stop != nil {
		l.stop()
	}
	if l.port != nil {
		_ = l.port.Close()
	}
}
