package synth

import (
	"math"
	"testing"
)

func newTestParams() *Params {
	bm := ButtonMap{
		0: ParamMasterVolume,
		5: ParamVolumeAttack,
		6: ParamVolumeRelease,
	}
	p := NewParams(48000, 1, bm)
	p.ParamChange(5, 0) // fast attack: 0.01s
	p.ParamChange(6, 0) // fast release: 0.01s
	for i := 0; i < 32; i++ {
		p.StepFrame()
	}
	return p
}

func TestPhaseStaysInUnitRange(t *testing.T) {
	p := newTestParams()
	v := NewVoice(440, 1.0, p)

	for i := 0; i < 100000; i++ {
		p.StepFrame()
		v.StepFrame(p)
		if v.wavePhase < 0 || v.wavePhase >= 1 {
			t.Fatalf("wavePhase out of range at step %d: %v", i, v.wavePhase)
		}
	}
}

func TestIsDoneWithinReleaseTimePlusEpsilon(t *testing.T) {
	p := newTestParams()
	v := NewVoice(440, 1.0, p)

	for i := 0; i < 480; i++ { // 0.01s at 48kHz
		p.StepFrame()
		v.StepFrame(p)
	}
	v.NotifyRelease()

	releaseSamples := int(math.Ceil(float64(p.releaseTime.current) * 48000))
	done := false
	for i := 0; i < releaseSamples+10; i++ {
		p.StepFrame()
		v.StepFrame(p)
		if v.IsDone(p) {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("expected voice to become done within release_time + epsilon")
	}
}

func TestNotDoneBeforeRelease(t *testing.T) {
	p := newTestParams()
	v := NewVoice(440, 1.0, p)
	for i := 0; i < 1000; i++ {
		p.StepFrame()
		v.StepFrame(p)
		if v.IsDone(p) {
			t.Fatal("voice should not be done before NotifyRelease")
		}
	}
}

func TestOutputFiniteAndBounded(t *testing.T) {
	p := newTestParams()
	v := NewVoice(440, 1.0, p)
	for i := 0; i < 50000; i++ {
		p.StepFrame()
		l, r := v.StepFrame(p)
		if math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
			t.Fatalf("non-finite output at step %d: %v", i, l)
		}
		if l > 0.80001 || l < -0.80001 || r != l {
			t.Fatalf("output out of spec bound at step %d: l=%v r=%v", i, l, r)
		}
	}
}

func TestKeyVelocityToggleGatesAmplitude(t *testing.T) {
	p := newTestParams()
	p.keyVelocity = false
	v := NewVoice(440, 0.1, p)
	if v.velocity != 1.0 {
		t.Errorf("expected velocity pinned to 1.0 when key_velocity disabled, got %v", v.velocity)
	}

	p.keyVelocity = true
	v2 := NewVoice(440, 0.1, p)
	if v2.velocity != 0.1 {
		t.Errorf("expected velocity to pass through when key_velocity enabled, got %v", v2.velocity)
	}
}
