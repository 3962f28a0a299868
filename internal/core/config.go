package core

// Kind identifies one of the playable modules.
type Kind string

const (
	KindDino  Kind = "dino"
	KindPong  Kind = "pong"
	KindSnake Kind = "snake"
	KindDraw  Kind = "draw"
)

// Kinds lists every module kind in menu order.
func Kinds() []Kind {
	return []Kind{KindDino, KindPong, KindSnake, KindDraw}
}

// MenuButtons returns the start-screen buttons that select k.
func (k Kind) MenuButtons() []Button {
	switch k {
	case KindDino:
		return []Button{ButtonA}
	case KindPong:
		return []Button{ButtonB}
	case KindSnake:
		return []Button{ButtonY}
	case KindDraw:
		return []Button{ButtonLB, ButtonStart}
	}
	return nil
}

// KindForButton returns the module a start-screen button selects.
func KindForButton(b Button) (Kind, bool) {
	for _, k := range Kinds() {
		for _, mb := range k.MenuButtons() {
			if mb == b {
				return k, true
			}
		}
	}
	return "", false
}

// String returns the identifier of the kind.
func (k Kind) String() string {
	return string(k)
}

// Outcome is returned by a module after each tick.
type Outcome struct {
	Terminal bool // the module reached its lose condition
	Score    int  // final score when Terminal
}

// Continue keeps the module running.
func Continue() Outcome {
	return Outcome{}
}

// Terminal ends the module with the given score.
func Terminal(score int) Outcome {
	return Outcome{Terminal: true, Score: score}
}

// TickRate is the nominal simulation rate in ticks per second.
const TickRate = 60

// Seconds converts a duration in seconds to ticks at the nominal rate.
func Seconds(s float64) uint64 {
	return uint64(s*TickRate + 0.5)
}
