package synth

// Param identifies a logical synth parameter, independent of which MIDI CC
// number the external button map happens to bind it to.
type Param int

const (
	ParamMasterVolume Param = iota
	ParamKeyVelocity
	ParamVolumeAttack
	ParamVolumeDecay
	ParamVolumeSustain
	ParamVolumeRelease
	ParamOsc1Waveform
	ParamOsc2Waveform
	ParamOscBalance
	ParamFilterCutoff
	ParamFilterResonance
	ParamFilterRelative
	ParamDistortionPregain
	ParamDistortionLevel
	ParamDistortionMix
	ParamEnableCompressor
)

// ButtonMap maps a raw MIDI CC number to the logical Param it controls. It
// is built once at startup from the external configuration file (see
// internal/config) and is immutable for the life of a synth.
type ButtonMap map[uint8]Param
