package audio

import (
	"testing"

	"github.com/lixenwraith/roadrunner/asset"
)

func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("Expected default master volume 0.5, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default sample rate 44100, got %d", cfg.SampleRate)
	}

	for _, name := range append(asset.SoundNames, HumName) {
		if _, ok := cfg.EffectVolumes[name]; !ok {
			t.Errorf("Expected volume for %q", name)
		}
	}
}

func TestLoadAudioConfigEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *AudioConfig)
	}{
		{
			name: "defaults",
			env:  nil,
			check: func(t *testing.T, cfg *AudioConfig) {
				if !cfg.Enabled || cfg.MasterVolume != 0.5 {
					t.Errorf("Expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "disabled",
			env:  map[string]string{EnvAudioEnabled: "false"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.Enabled {
					t.Error("Expected audio disabled")
				}
			},
		},
		{
			name: "volume clamped",
			env:  map[string]string{EnvMasterVolume: "150"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.MasterVolume != 1 {
					t.Errorf("Expected clamp to 1, got %f", cfg.MasterVolume)
				}
			},
		},
		{
			name: "cue volumes",
			env:  map[string]string{EnvSFXVolumes: `{"crash":0.2,"hum":0,"bogus":1}`},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.EffectVolumes[asset.SoundCrash] != 0.2 || cfg.EffectVolumes[HumName] != 0 {
					t.Errorf("Unexpected volumes %v", cfg.EffectVolumes)
				}
				if _, ok := cfg.EffectVolumes["bogus"]; ok {
					t.Error("Expected unknown cue ignored")
				}
			},
		},
		{
			name: "malformed ignored",
			env:  map[string]string{EnvSampleRate: "fast", EnvAudioEnabled: "maybe", EnvSFXVolumes: "{"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.SampleRate != 44100 || !cfg.Enabled {
					t.Errorf("Expected defaults kept, got %+v", cfg)
				}
			},
		},
		{
			name: "sample rate",
			env:  map[string]string{EnvSampleRate: "48000"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.SampleRate != 48000 {
					t.Errorf("Expected 48000, got %d", cfg.SampleRate)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{EnvAudioEnabled, EnvMasterVolume, EnvSFXVolumes, EnvSampleRate} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, LoadAudioConfig())
		})
	}
}
