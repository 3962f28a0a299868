package session

import (
	"math/rand"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// Menu hints shown in the second half of every scene, alternating between
// scenes.
var menuHints = [2]string{"A DINO  B PONG", "Y SNAKE  LB DRAW"}

// captionRow is the top row of the caption line.
const captionRow = 13

// startScreen plays the eye scenes in a shuffled order, one scene per
// sceneTicks, reshuffling after every full pass.
type startScreen struct {
	audio      audio.Player
	rng        *rand.Rand
	sceneTicks int

	order   []int
	frame   int // ticks since the start screen was entered
	current int // position in order, -1 before the first update
	cycle   int // tick within the current scene
}

func newStartScreen(player audio.Player, rng *rand.Rand, sceneTicks int) *startScreen {
	s := &startScreen{
		audio:      player,
		rng:        rng,
		sceneTicks: max(sceneTicks, 1),
		order:      make([]int, len(scenes)),
	}
	for i := range s.order {
		s.order[i] = i
	}
	s.restart()
	return s
}

// restart rewinds to the first scene of a new pass.
func (s *startScreen) restart() {
	s.frame = 0
	s.current = -1
	s.cycle = 0
}

func (s *startScreen) shuffle() {
	s.rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
}

// update advances the animation by one tick. Entering a scene plays its
// effect and speaks its line.
func (s *startScreen) update() {
	idx := (s.frame / s.sceneTicks) % len(s.order)
	if idx != s.current {
		if idx == 0 {
			s.shuffle()
		}
		s.current = idx
		sc := s.scene()
		s.audio.PlayEffect(sc.effect)
		s.audio.Speak(sc.speech)
	}
	s.cycle = s.frame % s.sceneTicks
	s.frame++
}

func (s *startScreen) scene() *scene {
	return &scenes[s.order[max(s.current, 0)]]
}

// Render draws the eyes and the caption or menu hint line.
func (s *startScreen) Render(dst *core.Surface) {
	sc := s.scene()
	drawEyes(dst, sc.pose(s.cycle*sceneLength/s.sceneTicks))

	text := sc.caption
	if s.cycle >= s.sceneTicks/2 {
		text = menuHints[max(s.current, 0)%2]
	}
	dst.DrawTextCentered(captionRow, text, core.On)
}
