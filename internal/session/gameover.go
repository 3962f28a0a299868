package session

import (
	"strconv"

	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// gameOver is the results screen shown after a module reaches its lose
// condition.
type gameOver struct {
	kind    core.Kind
	score   int
	high    int
	newHigh bool
	ticks   int // ticks spent on the screen
}

// Render draws the title and both scores.
func (g *gameOver) Render(dst *core.Surface) {
	dst.DrawTextCentered(1, "GAME OVER", core.Accent)
	dst.DrawTextCentered(8, "SCORE "+strconv.Itoa(g.score), core.On)
	dst.DrawTextCentered(14, "HIGH SCORE "+strconv.Itoa(g.high), core.On)
}
