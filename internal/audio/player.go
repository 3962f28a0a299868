// Package audio plays the arcade's sound effects through the system
// speaker and speaks short phrases with espeak.
package audio

import "sync"

// Player is what games and the session use for sound. Both calls return
// immediately; sound that cannot be played is dropped.
type Player interface {
	PlayEffect(e Effect)
	Speak(text string)
}

// Nop discards every request.
type Nop struct{}

func (Nop) PlayEffect(Effect) {}
func (Nop) Speak(string)      {}

// Recorder remembers every request. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	effects []Effect
	speech  []string
}

// PlayEffect implements Player.
func (r *Recorder) PlayEffect(e Effect) {
	r.mu.Lock()
	r.effects = append(r.effects, e)
	r.mu.Unlock()
}

// Speak implements Player.
func (r *Recorder) Speak(text string) {
	r.mu.Lock()
	r.speech = append(r.speech, text)
	r.mu.Unlock()
}

// Effects returns the effects played so far.
func (r *Recorder) Effects() []Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Effect(nil), r.effects...)
}

// Spoken returns the phrases spoken so far.
func (r *Recorder) Spoken() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.speech...)
}

// Count returns how many times e was played.
func (r *Recorder) Count(e Effect) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.effects {
		if got == e {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.effects, r.speech = nil, nil
	r.mu.Unlock()
}
