package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/roadrunner/asset"
)

// Environment overrides read by LoadAudioConfig
const (
	EnvAudioEnabled = "ROADRUNNER_AUDIO_ENABLED"
	EnvMasterVolume = "ROADRUNNER_MASTER_VOLUME"
	EnvSFXVolumes   = "ROADRUNNER_SFX_VOLUMES"
	EnvSampleRate   = "ROADRUNNER_SAMPLE_RATE"
)

// HumName keys the engine hum in EffectVolumes
const HumName = "hum"

// AudioConfig holds audio settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64            // 0.0 to 1.0
	EffectVolumes map[string]float64 // Per cue, keyed by cue name
	SampleRate    int
}

// DefaultAudioConfig returns the built-in mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[string]float64{
			asset.SoundPass:      0.4,
			asset.SoundCombo:     0.6,
			asset.SoundMilestone: 0.8,
			asset.SoundCrash:     1.0,
			asset.SoundPause:     0.5,
			HumName:              0.25,
		},
		SampleRate: 44100,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
// Malformed values keep the defaults
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is 0-100 on the command line
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	// Per-cue volumes as a JSON object, e.g. {"crash":0.5,"hum":0}
	if effectVols := os.Getenv(EnvSFXVolumes); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for name, v := range volumes {
				if _, known := cfg.EffectVolumes[name]; known {
					cfg.EffectVolumes[name] = min(max(v, 0), 1)
				}
			}
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

// volume returns the effective gain for a cue
func (c *AudioConfig) volume(name string) float64 {
	return c.EffectVolumes[name] * c.MasterVolume
}
