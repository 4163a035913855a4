// Package audiodriver binds an Engine to an oto output stream, implementing
// the audio callback described in spec §4.9: per-buffer event pump, per-
// frame synth/voice stepping, and channel-count fan-out into the sample
// format oto expects. Grounded on icco-genidi's internal/audio/synth.go,
// which drives oto the same way (a custom io.Reader as the player source).
package audiodriver

import (
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"

	"github.com/orlp/synth/internal/engine"
)

// bytesPerSample is fixed at 2 (signed 16-bit little-endian), matching the
// teacher's own format choice.
const bytesPerSample = 2

// Driver owns one oto context/player pair bound to one Engine.
type Driver struct {
	ctx    *oto.Context
	player *oto.Player
	reader *engineReader
}

// Open constructs an oto context for the given sample rate and channel
// count and starts a player reading from eng's engine callback. channels
// must be 1 or 2, per spec §4.9 — any other value is a fatal startup error.
func Open(eng *engine.Engine, sampleRate int, channels int) (*Driver, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("audiodriver: unsupported channel count %d (only 1 or 2 are supported)", channels)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("audiodriver: opening output stream: %w", err)
	}
	<-ready

	reader := &engineReader{engine: eng, channels: channels}
	player := ctx.NewPlayer(reader)
	player.Play()

	return &Driver{ctx: ctx, player: player, reader: reader}, nil
}

// Close stops playback. oto's player cleans itself up on garbage collection
// once playback stops, matching the teacher's own Close comment.
func (d *Driver) Close() error {
	d.player.Pause()
	return nil
}

// engineReader implements io.Reader, pulling sample frames from the engine
// one buffer at a time: this is the audio callback thread's hot path, and
// must not allocate or block beyond the engine's own non-blocking queue
// drain.
type engineReader struct {
	engine   *engine.Engine
	channels int
}

func (r *engineReader) Read(buf []byte) (int, error) {
	frameSize := r.channels * bytesPerSample
	numFrames := len(buf) / frameSize

	r.engine.PumpEvents()
	r.engine.Params.NotifyBuffer()

	for i := 0; i < numFrames; i++ {
		left, right := r.engine.StepAllVoices()

		switch r.channels {
		case 1:
			mono := (left + right) / 2
			writeSample(buf[i*frameSize:], mono)
		case 2:
			writeSample(buf[i*frameSize:], left)
			writeSample(buf[i*frameSize+bytesPerSample:], right)
		}
	}

	return numFrames * frameSize, nil
}

// writeSample converts a normalized float32 sample to signed 16-bit
// little-endian and writes it to the first two bytes of dst.
func writeSample(dst []byte, sample float32) {
	if sample > 1 {
		sample = 1
	} else if sample < -1 {
		sample = -1
	}
	v := int16(sample * 32767)
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
}

var _ io.Reader = (*engineReader)(nil)
