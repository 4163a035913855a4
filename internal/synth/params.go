// Package synth implements the default synth: global parameter state with
// per-frame smoothing, and the default voice DSP pipeline (dual oscillators,
// waveshaping distortion, ladder filter, optional compressor).
package synth

import (
	"github.com/orlp/synth/internal/dspmath"
	"github.com/orlp/synth/internal/rng"
)

// Waveform selects an oscillator's wave shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSawtooth
	WaveSquare
	WaveNoise
)

// waveformFromNormalized maps a normalized [0,1] CC value to a Waveform
// selector, per spec §4.4.
func waveformFromNormalized(v float32) Waveform {
	switch {
	case v < 0.25:
		return WaveSine
	case v < 0.5:
		return WaveSawtooth
	case v < 0.75:
		return WaveSquare
	default:
		return WaveNoise
	}
}

// smoothed holds a target value and the value currently in effect, updated
// one-pole per Synth.StepFrame.
type smoothed struct {
	target, current float32
}

func (s *smoothed) set(v float32) { s.target = v }

func (s *smoothed) step() {
	const a, b = 0.95, 0.05
	s.current = a*s.current + b*s.target
}

// Params is the default synth's parameter block: smoothed scalar targets
// paired with their current values, plus immediate boolean toggles.
type Params struct {
	masterVolume smoothed
	attackTime   smoothed // seconds
	decayTime    smoothed // seconds; smoothed but unused by the voice DSP, per spec
	sustainLevel smoothed // unused by the voice DSP, per spec
	releaseTime  smoothed // seconds

	osc1Waveform smoothed // raw normalized CC value, re-decoded into a Waveform each frame
	osc2Waveform smoothed
	oscBalance   smoothed

	filterCutoff    smoothed // raw normalized CC value
	filterResonance smoothed

	distortionPregain smoothed // raw normalized CC value, [-8dB, +8dB] after lerp
	distortionLevel   smoothed
	distortionMix     smoothed

	keyVelocity     bool
	filterRelative  bool
	enableCompressor bool

	sampleRate float64
	rng        *rng.State
	buttonMap  ButtonMap
}

// NewParams builds a parameter block with the defaults a freshly started
// synth should have: full volume, fast default envelope, neutral filter and
// distortion, compressor disabled. buttonMap is the CC-number-to-Param
// table parsed from the external configuration file at startup.
func NewParams(sampleRate float64, rngSeed uint64, buttonMap ButtonMap) *Params {
	p := &Params{sampleRate: sampleRate, rng: rng.New(rngSeed), buttonMap: buttonMap}

	p.masterVolume.target, p.masterVolume.current = 1, 1
	p.attackTime.target, p.attackTime.current = 0.01, 0.01
	p.decayTime.target, p.decayTime.current = 0.01, 0.01
	p.sustainLevel.target, p.sustainLevel.current = 1, 1
	p.releaseTime.target, p.releaseTime.current = 0.01, 0.01
	p.oscBalance.target, p.oscBalance.current = 0, 0
	p.filterCutoff.target, p.filterCutoff.current = 1, 1
	p.filterResonance.target, p.filterResonance.current = 0.5, 0.5
	p.distortionPregain.target, p.distortionPregain.current = 0.5, 0.5
	p.distortionLevel.target, p.distortionLevel.current = 1, 1
	p.distortionMix.target, p.distortionMix.current = 0, 0
	return p
}

// StepFrame advances per-sample smoothing of all targets to their current
// values, per spec §4.4.
func (p *Params) StepFrame() {
	p.masterVolume.step()
	p.attackTime.step()
	p.decayTime.step()
	p.sustainLevel.step()
	p.releaseTime.step()
	p.osc1Waveform.step()
	p.osc2Waveform.step()
	p.oscBalance.step()
	p.filterCutoff.step()
	p.filterResonance.step()
	p.distortionPregain.step()
	p.distortionLevel.step()
	p.distortionMix.step()
}

// NotifyBuffer is the block-rate hook called once per audio buffer before
// any per-sample work. The default synth has nothing to precompute at block
// rate, so this is a no-op, per spec §4.3/§9.
func (p *Params) NotifyBuffer() {}

// ParamChange maps an incoming MIDI CC number (sourced from the external
// button map) to the corresponding parameter, per spec §4.4. Unrecognized
// CC numbers are ignored silently.
func (p *Params) ParamChange(cc uint8, value float32) {
	param, ok := p.buttonMap[cc]
	if !ok {
		return
	}
	value = dspmath.Clamp(value, 0, 1)
	switch param {
	case ParamMasterVolume:
		p.masterVolume.set(value)
	case ParamKeyVelocity:
		p.keyVelocity = value > 0.5
	case ParamVolumeAttack:
		p.attackTime.set(dspmath.ExpLerp(value, 0.01, 5))
	case ParamVolumeDecay:
		p.decayTime.set(dspmath.ExpLerp(value, 0.01, 5))
	case ParamVolumeRelease:
		p.releaseTime.set(dspmath.ExpLerp(value, 0.01, 5))
	case ParamVolumeSustain:
		p.sustainLevel.set(value)
	case ParamOsc1Waveform:
		p.osc1Waveform.set(value)
	case ParamOsc2Waveform:
		p.osc2Waveform.set(value)
	case ParamOscBalance:
		p.oscBalance.set(value)
	case ParamFilterCutoff:
		p.filterCutoff.set(value)
	case ParamFilterResonance:
		p.filterResonance.set(value)
	case ParamFilterRelative:
		p.filterRelative = value > 0.5
	case ParamDistortionPregain:
		p.distortionPregain.set(value)
	case ParamDistortionLevel:
		p.distortionLevel.set(value)
	case ParamDistortionMix:
		p.distortionMix.set(value)
	case ParamEnableCompressor:
		p.enableCompressor = value > 0.5
	}
}
