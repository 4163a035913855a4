package config

import (
	"strings"
	"testing"

	"github.com/orlp/synth/internal/synth"
)

const validConfig = `
# button map
master_volume = 7
key_velocity = 1
volume_attack = 2
volume_decay = 3
volume_sustain = 4
volume_release = 5
osc1_waveform = 8
osc2_waveform = 9
osc_balance = 10
distortion_pregain = 11
distortion_level = 12
distortion_mix = 13
filter_cutoff = 74
filter_resonance = 71
filter_relative = 14
enable_compressor = 15
unknown_future_key = 99
`

func TestParseValidConfig(t *testing.T) {
	bm, err := Parse(strings.NewReader(validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bm[7] != synth.ParamMasterVolume {
		t.Errorf("expected CC 7 -> master_volume, got %v", bm[7])
	}
	if bm[74] != synth.ParamFilterCutoff {
		t.Errorf("expected CC 74 -> filter_cutoff, got %v", bm[74])
	}
	if _, ok := bm[99]; ok {
		t.Error("unknown key should not appear in the button map")
	}
}

func TestParseMissingRequiredKeyFails(t *testing.T) {
	missingOne := strings.Replace(validConfig, "master_volume = 7\n", "", 1)
	_, err := Parse(strings.NewReader(missingOne))
	if err == nil {
		t.Fatal("expected error for missing required key")
	}
}

func TestParseMalformedLineFails(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not valid"))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestParseInvalidCCNumberFails(t *testing.T) {
	_, err := Parse(strings.NewReader("master_volume = not_a_number"))
	if err == nil {
		t.Fatal("expected error for non-numeric CC")
	}
}
