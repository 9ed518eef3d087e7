package asset

// Sound cue names shared by the run graph's Cue actions, the engine and the audio backend
const (
	SoundPass      = "pass"
	SoundCombo     = "combo"
	SoundMilestone = "milestone"
	SoundCrash     = "crash"
	SoundPause     = "pause"
)

// SoundNames lists every cue the audio backend must provide
var SoundNames = []string{SoundPass, SoundCombo, SoundMilestone, SoundCrash, SoundPause}
