// Package compressor implements the RMS-window feedback compressor used
// optionally at the end of the default voice's signal chain.
package compressor

import (
	"fmt"
	"math"
)

// MaxWindowSamples bounds the ring buffer so it can be pre-sized once at
// voice construction and never reallocated on the audio thread.
const MaxWindowSamples = 5000

const (
	defaultThresholdLin = 0.7
	defaultAttackMs     = 20.0
	defaultReleaseMs    = 20.0
	defaultMaxGainDB    = -6.0
	defaultCleanMix     = 0.0
	initialGain         = 2.0
)

// Compressor is a single stateful instance, one per voice.
type Compressor struct {
	sampleRate float64

	ringBuffer [MaxWindowSamples]float64
	ringIdx    int
	windowSize int

	threshold float64
	attRate   float64
	relRate   float64
	maxGain   float64
	cleanMix  float64

	rms2Total float64
	gain      float64
}

// New builds a compressor for the given sample rate and RMS window length in
// milliseconds. It fails if the requested window cannot fit in the
// pre-allocated ring buffer — this is a startup-time configuration error,
// never something the audio thread can hit once constructed.
func New(sampleRate, windowMs float64) (*Compressor, error) {
	windowSize := int(math.Round(sampleRate * windowMs / 1000))
	if windowSize <= 0 {
		windowSize = 1
	}
	if windowSize > MaxWindowSamples {
		return nil, fmt.Errorf("compressor: window of %d samples (%.2fms at %.0fHz) exceeds max window of %d samples", windowSize, windowMs, sampleRate, MaxWindowSamples)
	}

	c := &Compressor{
		sampleRate: sampleRate,
		windowSize: windowSize,
		threshold:  defaultThresholdLin,
		maxGain:    dbToGainMax(defaultMaxGainDB),
		cleanMix:   defaultCleanMix,
		gain:       initialGain,
	}
	c.SetAttack(defaultAttackMs)
	c.SetRelease(defaultReleaseMs)
	return c, nil
}

func dbToGainMax(maxGainDB float64) float64 {
	return math.Pow(2, -maxGainDB/6)
}

// SetAttack sets the attack time in milliseconds (6dB/att_ms slope, per spec).
func (c *Compressor) SetAttack(attackMs float64) {
	c.attRate = math.Pow(2, -1/(attackMs/1000*c.sampleRate))
}

// SetRelease sets the release time in milliseconds.
func (c *Compressor) SetRelease(releaseMs float64) {
	c.relRate = math.Pow(2, 1/(releaseMs/1000*c.sampleRate))
}

// SetThreshold sets the RMS^2 threshold above which gain reduction engages.
func (c *Compressor) SetThreshold(threshold float64) {
	c.threshold = threshold
}

// SetMaxGainDB sets the upper cap on the compressor's gain: the gain is
// clamped to at most 2^(-maxGainDB/6), so -6 allows a gain of up to 2.
func (c *Compressor) SetMaxGainDB(maxGainDB float64) {
	c.maxGain = dbToGainMax(maxGainDB)
}

// SetCleanMix sets the dry/wet mix between the uncompressed and compressed signal.
func (c *Compressor) SetCleanMix(cleanMix float64) {
	c.cleanMix = cleanMix
}

// Process runs one stereo sample frame through the compressor and returns
// the processed (left, right) pair.
func (c *Compressor) Process(l, r float64) (float64, float64) {
	sq := l*l + r*r

	old := c.ringBuffer[c.ringIdx]
	c.ringBuffer[c.ringIdx] = sq
	c.rms2Total += sq - old
	c.ringIdx = (c.ringIdx + 1) % c.windowSize

	rms2 := c.rms2Total / float64(c.windowSize)

	if rms2 > c.threshold {
		c.gain *= c.attRate
	} else {
		c.gain *= c.relRate
	}
	if c.gain < 0 {
		c.gain = 0
	}
	if c.gain > c.maxGain {
		c.gain = c.maxGain
	}

	outL := c.cleanMix*l + (1-c.cleanMix)*l*c.gain
	outR := c.cleanMix*r + (1-c.cleanMix)*r*c.gain
	return outL, outR
}
