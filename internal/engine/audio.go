// Package engine implements the pointer interaction core shared by the
// games: coordinate mapping, hit testing and progression state machines.
package engine

// Sound is a symbolic audio cue name, resolved to an asset by the host.
type Sound string

const (
	SoundBackground   Sound = "background"
	SoundConnect      Sound = "connect"
	SoundIncorrect    Sound = "incorrect"
	SoundSuccess      Sound = "success"
	SoundLevelWin     Sound = "levelWin"
	SoundUIClick      Sound = "uiClick"
	SoundStart        Sound = "start"
	SoundInstructions Sound = "instructions"
)

// Audio is the playback capability games call on transitions. The host
// owns every audio resource.
type Audio interface {
	Play(name Sound)
	Pause(name Sound)
}

// NopAudio discards every cue.
type NopAudio struct{}

// Play implements Audio.
func (NopAudio) Play(Sound) {}

// Pause implements Audio.
func (NopAudio) Pause(Sound) {}

// RecordingAudio remembers played cues, in order.
type RecordingAudio struct {
	Played []Sound
	Paused []Sound
}

// Play implements Audio.
func (r *RecordingAudio) Play(name Sound) { r.Played = append(r.Played, name) }

// Pause implements Audio.
func (r *RecordingAudio) Pause(name Sound) { r.Paused = append(r.Paused, name) }

// Count returns how many times name was played.
func (r *RecordingAudio) Count(name Sound) int {
	n := 0
	for _, s := range r.Played {
		if s == name {
			n++
		}
	}
	return n
}
