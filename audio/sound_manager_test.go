package audio

import (
	"testing"

	"github.com/lixenwraith/roadrunner/asset"
)

// attached returns a manager that mixes without opening a device
func attached() *SoundManager {
	sm := NewSoundManager(nil)
	sm.initialized = true
	return sm
}

func peak(sm *SoundManager, n int) float64 {
	buf := make([][2]float64, 512)
	p := 0.0
	for range n {
		got, ok := sm.Stream(buf)
		if !ok || got != len(buf) {
			return -1
		}
		for _, s := range buf {
			p = max(p, s[0], -s[0])
		}
	}
	return p
}

// TestSoundManagerGracefulDegradation verifies operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	for _, name := range asset.SoundNames {
		sm.Play(name)
	}
	sm.SetHum(true)
	sm.SetHum(false)
	sm.Cleanup()

	if sm.Active() != 0 {
		t.Error("Expected nothing mixed before Initialize")
	}
}

// TestSoundManagerDisabled verifies disabled config never opens the device
func TestSoundManagerDisabled(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg)

	if err := sm.Initialize(); err != nil {
		t.Errorf("Expected nil for disabled audio, got %v", err)
	}
	sm.Play(asset.SoundCrash)
	if sm.Active() != 0 {
		t.Error("Expected disabled manager to stay silent")
	}
}

func TestPlayMixesCue(t *testing.T) {
	sm := attached()

	sm.Play(asset.SoundPass)
	sm.Play("unknown")
	if sm.Active() != 1 {
		t.Fatalf("Expected one active cue, got %d", sm.Active())
	}
	if p := peak(sm, 2); p <= 0 {
		t.Errorf("Expected audible output, got peak %f", p)
	}

	// Pass cue is 60ms; draining past it empties the mix but keeps streaming
	if p := peak(sm, 20); p < 0 {
		t.Error("Expected Stream to keep returning full buffers")
	}
	if sm.Active() != 0 {
		t.Errorf("Expected finished cue removed, got %d", sm.Active())
	}
}

func TestMuteSilencesOutput(t *testing.T) {
	sm := attached()
	sm.SetHum(true)

	if !sm.ToggleMute() || !sm.Muted() {
		t.Fatal("Expected muted after first toggle")
	}
	sm.Play(asset.SoundCrash)
	if sm.Active() != 1 {
		t.Errorf("Expected cues skipped while muted, got %d streams", sm.Active())
	}
	if p := peak(sm, 2); p != 0 {
		t.Errorf("Expected silence while muted, got peak %f", p)
	}

	if sm.ToggleMute() {
		t.Error("Expected unmuted after second toggle")
	}
	if p := peak(sm, 2); p <= 0 {
		t.Error("Expected hum audible after unmute")
	}
}

func TestHumToggle(t *testing.T) {
	sm := attached()

	sm.SetHum(false)
	if sm.Active() != 0 {
		t.Error("Expected no hum stream created by SetHum(false)")
	}

	sm.SetHum(true)
	sm.SetHum(true)
	if sm.Active() != 1 {
		t.Fatalf("Expected a single hum stream, got %d", sm.Active())
	}

	sm.SetHum(false)
	if p := peak(sm, 2); p != 0 {
		t.Errorf("Expected paused hum to be silent, got %f", p)
	}
	if sm.Active() != 1 {
		t.Error("Expected paused hum kept for reuse")
	}
}
