package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/roadrunner/asset"
)

// Cue timings
const (
	passDuration = 60 * time.Millisecond
	passAttack   = 5 * time.Millisecond
	passRelease  = 40 * time.Millisecond

	comboNoteDuration = 70 * time.Millisecond
	comboAttack       = 5 * time.Millisecond
	comboRelease      = 30 * time.Millisecond

	milestoneDuration = 400 * time.Millisecond
	milestoneAttack   = 5 * time.Millisecond
	milestoneRelease  = 350 * time.Millisecond

	crashDuration = 450 * time.Millisecond
	crashAttack   = 2 * time.Millisecond
	crashRelease  = 380 * time.Millisecond

	pauseDuration = 150 * time.Millisecond
	pauseAttack   = 20 * time.Millisecond
	pauseRelease  = 100 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves; duration 0 streams forever
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.duration > 0 && o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.attackSamples + e.sustainSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s at a linear gain
// math.Log2(0) is -Inf, so zero volume is made silent instead
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(freq float64, wave WaveType, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// CreatePassSound is a short high blip for each obstacle passed
func CreatePassSound(rate beep.SampleRate) beep.Streamer {
	return tone(1046.5, WaveSine, passDuration, passAttack, passRelease, rate)
}

// CreateComboSound is a rising two-note chirp for passes inside a combo
func CreateComboSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(987.77, WaveSquare, comboNoteDuration, comboAttack, comboRelease, rate),
		tone(1318.51, WaveSquare, comboNoteDuration, comboAttack, comboRelease, rate),
	)
}

// CreateMilestoneSound is a bell for a speed increase
func CreateMilestoneSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(880.0, WaveSine, milestoneDuration, milestoneAttack, milestoneRelease, rate), 0.7),
		newVolume(tone(1760.0, WaveSine, milestoneDuration, milestoneAttack, milestoneRelease/2, rate), 0.3),
	)
}

// CreateCrashSound is a noise burst over a low saw buzz
func CreateCrashSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(0, WaveNoise, crashDuration, crashAttack, crashRelease, rate), 0.5),
		newVolume(tone(80.0, WaveSaw, crashDuration, crashAttack, crashRelease, rate), 0.5),
	)
}

// CreatePauseSound is a soft whoosh
func CreatePauseSound(rate beep.SampleRate) beep.Streamer {
	return tone(0, WaveNoise, pauseDuration, pauseAttack, pauseRelease, rate)
}

// CreateHum is the endless engine drone heard while PLAYING
func CreateHum(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(NewOscillator(55.0, 0, WaveSaw, rate), 0.4),
		newVolume(NewOscillator(110.0, 0, WaveSine, rate), 0.6),
	)
}

// GetSoundEffect returns a unity-gain streamer for a cue name, nil when unknown
func GetSoundEffect(name string, rate beep.SampleRate) beep.Streamer {
	switch name {
	case asset.SoundPass:
		return CreatePassSound(rate)
	case asset.SoundCombo:
		return CreateComboSound(rate)
	case asset.SoundMilestone:
		return CreateMilestoneSound(rate)
	case asset.SoundCrash:
		return CreateCrashSound(rate)
	case asset.SoundPause:
		return CreatePauseSound(rate)
	}
	return nil
}
