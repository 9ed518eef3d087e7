// Package audio plays procedural sound cues through beep
// Every operation is safe before Initialize and after a failed one; the game never depends on sound
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// speakerBuffer is the device buffer length
const speakerBuffer = 100 * time.Millisecond

// SoundManager mixes cues and the engine hum into one speaker stream
// It is itself the streamer handed to the speaker; Stream holds the lock
type SoundManager struct {
	mu     sync.Mutex
	cfg    *AudioConfig
	rate   beep.SampleRate
	mixer  *beep.Mixer
	master *effects.Volume
	hum    *beep.Ctrl

	muted       bool
	initialized bool
}

// NewSoundManager creates a manager; nil cfg uses the defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	mixer := &beep.Mixer{}
	return &SoundManager{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2},
	}
}

// Initialize opens the speaker; disabled config returns nil and stays silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	if sm.initialized || !sm.cfg.Enabled {
		sm.mu.Unlock()
		return nil
	}
	sm.mu.Unlock()

	if err := speaker.Init(sm.rate, sm.rate.N(speakerBuffer)); err != nil {
		return err
	}
	speaker.Play(sm)

	sm.mu.Lock()
	sm.initialized = true
	sm.mu.Unlock()
	return nil
}

// Cleanup stops all sounds and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	if !sm.initialized {
		sm.mu.Unlock()
		return
	}
	sm.mixer.Clear()
	sm.hum = nil
	sm.initialized = false
	sm.mu.Unlock()

	// Outside the lock: Close waits for the speaker goroutine, which calls Stream
	speaker.Close()
}

// Stream feeds the speaker; it never drains, silence fills gaps between cues
func (sm *SoundManager) Stream(samples [][2]float64) (int, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	n, _ := sm.master.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (sm *SoundManager) Err() error { return nil }

// Play starts a one-shot cue by name; unknown names and muted output are ignored
func (sm *SoundManager) Play(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := GetSoundEffect(name, sm.rate)
	if s == nil {
		return
	}
	sm.mixer.Add(newVolume(s, sm.cfg.volume(name)))
}

// SetHum starts or stops the engine drone; repeated calls are idempotent
func (sm *SoundManager) SetHum(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.hum == nil {
		if !on {
			return
		}
		sm.hum = &beep.Ctrl{Streamer: newVolume(CreateHum(sm.rate), sm.cfg.volume(HumName)), Paused: true}
		sm.mixer.Add(sm.hum)
	}
	sm.hum.Paused = !on
}

// ToggleMute flips master output and returns the new muted state
// Cues already playing finish silently
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	sm.master.Silent = sm.muted
	return sm.muted
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Active returns the number of streams in the mix, the hum included
func (sm *SoundManager) Active() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.mixer.Len()
}
