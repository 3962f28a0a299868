package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/matrix-arcade/internal/config"
)

const queueSize = 16

// Speaker plays effects through the system audio device. Effects are
// synthesized on a worker goroutine and mixed, so overlapping sounds play
// together.
type Speaker struct {
	sr     beep.SampleRate
	volume float64
	voice  Voice
	log    *log.Logger

	queue chan Effect
	mixer *beep.Mixer
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// Voice speaks text. Espeak is the real implementation.
type Voice interface {
	Say(text string) error
}

// NewSpeaker initializes the audio device. voice may be nil to disable
// speech.
func NewSpeaker(cfg config.AudioConfig, voice Voice, logger *log.Logger) (*Speaker, error) {
	if logger == nil {
		logger = log.Default()
	}
	sr := beep.SampleRate(cfg.SampleRate)
	if sr <= 0 {
		sr = 22050
	}
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	s := &Speaker{
		sr:     sr,
		volume: cfg.Volume,
		voice:  voice,
		log:    logger,
		queue:  make(chan Effect, queueSize),
		mixer:  &beep.Mixer{},
		done:   make(chan struct{}),
	}
	speaker.Play(s.mixer)

	s.wg.Add(1)
	go s.run()
	return s, nil
}

// PlayEffect implements Player. A full queue drops the effect.
func (s *Speaker) PlayEffect(e Effect) {
	select {
	case <-s.done:
	case s.queue <- e:
	default:
		s.log.Debug("effect dropped", "effect", e)
	}
}

// Speak implements Player.
func (s *Speaker) Speak(text string) {
	if s.voice == nil {
		return
	}
	if err := s.voice.Say(text); err != nil {
		s.log.Debug("speech failed", "err", err)
	}
}

func (s *Speaker) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case e := <-s.queue:
			st := e.Streamer(s.sr, s.volume)
			if st == nil {
				s.log.Warn("unknown effect", "effect", e)
				continue
			}
			speaker.Lock()
			s.mixer.Add(st)
			speaker.Unlock()
		}
	}
}

// Close stops the worker and silences the device.
func (s *Speaker) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		speaker.Lock()
		s.mixer.Clear()
		speaker.Unlock()
		speaker.Close()
	})
	return nil
}
