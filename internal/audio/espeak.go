package audio

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/charmbracelet/log"
)

// Espeak speaks through the espeak command. Each phrase runs as its own
// process; Say does not wait for it.
type Espeak struct {
	Path  string
	Speed int
	Pitch int
	Log   *log.Logger
}

// NewEspeak resolves path on $PATH. It fails when espeak is not installed.
func NewEspeak(path string, logger *log.Logger) (*Espeak, error) {
	if path == "" {
		path = "espeak"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("audio: espeak: %w", err)
	}
	return &Espeak{Path: resolved, Speed: 150, Pitch: 50, Log: logger}, nil
}

// Args returns the command line for text.
func (e *Espeak) Args(text string) []string {
	return []string{"-s", strconv.Itoa(e.Speed), "-p", strconv.Itoa(e.Pitch), text}
}

// Say implements Voice.
func (e *Espeak) Say(text string) error {
	cmd := exec.Command(e.Path, e.Args(text)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("audio: start espeak: %w", err)
	}
	go func() {
		if err := cmd.Wait(); err != nil && e.Log != nil {
			e.Log.Debug("espeak exited", "err", err)
		}
	}()
	return nil
}

// SpeechOnly is a Player with speech but no effects, used when the audio
// device is unavailable.
type SpeechOnly struct {
	Voice Voice
}

func (SpeechOnly) PlayEffect(Effect) {}

// Speak implements Player.
func (s SpeechOnly) Speak(text string) {
	if s.Voice != nil {
		_ = s.Voice.Say(text)
	}
}
