package synth

import (
	"math"

	"github.com/orlp/synth/internal/compressor"
	"github.com/orlp/synth/internal/dspmath"
	"github.com/orlp/synth/internal/filter"
	"github.com/orlp/synth/internal/rng"
)

const headroom = 0.25

// Voice is one sounding note's DSP state: dual oscillators, waveshaping
// distortion, a per-voice ladder filter, and an optional compressor.
type Voice struct {
	pitchHz  float32
	velocity float32
	released bool

	tSeconds    float32
	wavePhase   float32
	releaseTime float32
	preReleaseEnvelope float32

	filter     *filter.Ladder
	compressor *compressor.Compressor
	rng        *rng.State
}

// NewVoice constructs a voice for a freshly triggered note. It may draw
// from (and thereby mutate) the synth's shared RNG to seed its own noise
// generator, per spec §4.3.
func NewVoice(pitchHz, velocity float32, p *Params) *Voice {
	if !p.keyVelocity {
		velocity = 1.0
	}
	seed := p.rng.Next()

	comp, err := compressor.New(p.sampleRate, 5)
	if err != nil {
		// The default 5ms window always fits within MaxWindowSamples for any
		// sample rate up to 1MHz, so this is unreachable in practice; keep
		// the voice usable rather than panicking on the audio thread.
		comp = nil
	}

	return &Voice{
		pitchHz:    pitchHz,
		velocity:   velocity,
		filter:     filter.New(p.sampleRate),
		compressor: comp,
		rng:        rng.New(seed),
	}
}

// NotifyRelease marks the voice released and begins its release envelope.
func (v *Voice) NotifyRelease() {
	if v.released {
		return
	}
	v.released = true
	v.releaseTime = v.tSeconds
}

// IsDone reports whether the voice may be retired: true once one
// release-time has elapsed since NotifyRelease, per spec §4.5.
func (v *Voice) IsDone(p *Params) bool {
	if !v.released {
		return false
	}
	releaseSeconds := p.releaseTime.current
	return v.tSeconds-v.releaseTime >= releaseSeconds
}

func oscSample(wf Waveform, phase float32, r *rng.State) float32 {
	switch wf {
	case WaveSine:
		return float32(math.Sin(2 * math.Pi * float64(phase)))
	case WaveSawtooth:
		return 2*phase - 1
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveNoise:
		return 2*r.NextFloat() - 1
	default:
		return 0
	}
}

// StepFrame produces one stereo sample frame and advances the voice's
// internal phase and time by exactly one sample, per spec §4.5.
func (v *Voice) StepFrame(p *Params) (float32, float32) {
	attackTime := p.attackTime.current
	releaseTime := p.releaseTime.current

	var env float32
	if !v.released {
		attackPerc := dspmath.Clamp(v.tSeconds/attackTime, 0, 1)
		env = 1 - (1-attackPerc)*(1-attackPerc)
		v.preReleaseEnvelope = env
	} else {
		dt := v.tSeconds - v.releaseTime
		rp := dspmath.Clamp(dt/releaseTime, 0, 1)
		env = (1 - rp) * (1 - rp) * v.preReleaseEnvelope
	}

	wf1 := waveformFromNormalized(p.osc1Waveform.current)
	wf2 := waveformFromNormalized(p.osc2Waveform.current)
	osc1 := oscSample(wf1, v.wavePhase, v.rng)
	osc2 := oscSample(wf2, v.wavePhase, v.rng)

	balance := p.oscBalance.current
	val := (1-balance)*osc1 + balance*osc2

	pregainDB := dspmath.Lerp(p.distortionPregain.current, -8, 8)
	pregainLin := dspmath.DBToGain(pregainDB)
	maxAmpl := dspmath.DBToGain(-10 * (1 - p.distortionLevel.current))
	distorted := dspmath.Clamp(val*pregainLin, -maxAmpl, maxAmpl)
	val = dspmath.Lerp(p.distortionMix.current, val, distorted)

	var cutoffHz float64
	if p.filterRelative {
		cutoffHz = float64(v.pitchHz) * float64(dspmath.ExpLerp(p.filterCutoff.current, 1, 4))
	} else {
		cutoffHz = float64(dspmath.ExpLerp(p.filterCutoff.current, 20, 25000))
	}
	v.filter.SetCutoff(cutoffHz)
	v.filter.SetResonance(float64(p.filterResonance.current))
	val = float32(v.filter.Process(float64(val)))

	if p.enableCompressor && v.compressor != nil {
		out, _ := v.compressor.Process(float64(val), float64(val))
		val = float32(out)
	}

	volume := v.velocity * p.masterVolume.current * env * headroom
	val *= 5
	wave := dspmath.Clamp(val*volume, -0.80, 0.80)

	sr := float32(p.sampleRate)
	v.wavePhase += v.pitchHz / sr
	for v.wavePhase >= 1 {
		v.wavePhase -= 1
	}
	v.tSeconds += 1 / sr

	return wave, wave
}
