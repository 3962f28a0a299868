package session

import (
	"math"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// eyeState is the drawn shape of one eye.
type eyeState uint8

const (
	eyeOpen eyeState = iota
	eyeHalf
	eyeClosed
	eyeWide
	eyeDizzy
	eyeHidden
)

// Eye centres and the top row of the eye outlines.
const (
	leftEyeX  = 32
	rightEyeX = 88
	eyeTop    = 1
)

// sceneLength is the length in ticks the scene timelines are written for.
// Scenes are stretched to the configured scene length.
const sceneLength = 120

// offset is a pupil displacement from the eye centre.
type offset struct {
	dx, dy int
}

// keyframe pins the pupil at a tick of the scene timeline. The pupil eases
// between consecutive keyframes.
type keyframe struct {
	at     int
	dx, dy int
}

// lidSpan sets the eye shapes for ticks in [from, to).
type lidSpan struct {
	from, to    int
	left, right eyeState
}

func both(from, to int, s eyeState) lidSpan {
	return lidSpan{from, to, s, s}
}

// scene is one start-screen animation.
type scene struct {
	caption string
	speech  string
	effect  audio.Effect

	lids    []lidSpan
	flutter bool // alternate single-eye blinks every 12 ticks

	keys   []keyframe // eased pupil motion
	path   []offset   // stepped pupil motion, used when keys is empty
	period int        // ticks per path step
	rest   [2]int     // path is centred for ticks in [rest[0], rest[1])
	mirror bool       // right pupil moves opposite to the left
}

// pose is what a scene shows at one tick.
type pose struct {
	left, right eyeState
	pupil       offset
	mirror      bool
}

func (s *scene) pose(c int) pose {
	p := pose{left: eyeOpen, right: eyeOpen, mirror: s.mirror}
	for _, l := range s.lids {
		if c >= l.from && c < l.to {
			p.left, p.right = l.left, l.right
			break
		}
	}
	if s.flutter {
		if c%12 < 5 {
			p.left = eyeClosed
		}
		if (c+6)%12 < 5 {
			p.right = eyeClosed
		}
	}

	switch {
	case len(s.keys) > 0:
		p.pupil = s.eased(c)
	case len(s.path) > 0:
		if c < s.rest[0] || c >= s.rest[1] {
			p.pupil = s.path[(c/max(s.period, 1))%len(s.path)]
		}
	}
	return p
}

// eased interpolates the pupil between the keyframes around c.
func (s *scene) eased(c int) offset {
	first, last := s.keys[0], s.keys[len(s.keys)-1]
	if c <= first.at {
		return offset{first.dx, first.dy}
	}
	if c >= last.at {
		return offset{last.dx, last.dy}
	}
	for i := 1; i < len(s.keys); i++ {
		a, b := s.keys[i-1], s.keys[i]
		if c >= b.at {
			continue
		}
		elapsed, d := float64(c-a.at), float64(b.at-a.at)
		return offset{
			dx: int(math.Round(core.Interpolate(core.EaseInOutSine, float64(a.dx), float64(b.dx), elapsed, d))),
			dy: int(math.Round(core.Interpolate(core.EaseInOutSine, float64(a.dy), float64(b.dy), elapsed, d))),
		}
	}
	return offset{last.dx, last.dy}
}

var spiral = core.NewBitmap(
	" XXXXX ",
	"X     X",
	"X XXX X",
	"X X   X",
	"X XXXXX",
	"X      ",
	" XXXXXX",
)

// drawEye draws one eye centred on column cx.
func drawEye(dst *core.Surface, cx, cy int, state eyeState, p offset) {
	switch state {
	case eyeClosed:
		dst.HLine(cx-4, cy+4, 9, core.On)
		dst.Set(cx-4, cy+3, core.On)
		dst.Set(cx+4, cy+3, core.On)
	case eyeHalf:
		dst.HLine(cx-4, cy+2, 9, core.On)
		dst.HLine(cx-4, cy+6, 9, core.On)
		dst.VLine(cx-4, cy+3, 3, core.On)
		dst.VLine(cx+4, cy+3, 3, core.On)
	case eyeWide:
		dst.HLine(cx-4, cy-1, 9, core.On)
		dst.HLine(cx-4, cy+10, 9, core.On)
		for _, x := range []int{cx - 5, cx + 5} {
			dst.Set(x, cy, core.On)
			dst.Set(x, cy+9, core.On)
		}
		dst.VLine(cx-6, cy+1, 8, core.On)
		dst.VLine(cx+6, cy+1, 8, core.On)
		dst.FillRect(core.NewRect(cx+p.dx, cy+4+p.dy, 2, 2), core.Accent)
	case eyeDizzy:
		dst.Blit(spiral, cx-3, cy+1, core.On)
	case eyeHidden:
	default:
		dst.HLine(cx-3, cy, 7, core.On)
		dst.HLine(cx-3, cy+9, 7, core.On)
		for _, x := range []int{cx - 4, cx + 4} {
			dst.Set(x, cy+1, core.On)
			dst.Set(x, cy+8, core.On)
		}
		dst.VLine(cx-5, cy+2, 6, core.On)
		dst.VLine(cx+5, cy+2, 6, core.On)
		dst.FillRect(core.NewRect(cx+p.dx-1, cy+3+p.dy, 4, 4), core.Accent)
		dst.Set(cx+p.dx-1, cy+3+p.dy, core.Off) // highlight
	}
}

func drawEyes(dst *core.Surface, p pose) {
	drawEye(dst, leftEyeX, eyeTop, p.left, p.pupil)
	right := p.pupil
	if p.mirror {
		right = offset{-right.dx, -right.dy}
	}
	drawEye(dst, rightEyeX, eyeTop, p.right, right)
}

// scenes is the start-screen repertoire. Timelines are in sceneLength ticks.
var scenes = []scene{
	{
		caption: "PRESS TO PLAY!", speech: "Press to play!", effect: audio.EffectWink,
		lids: []lidSpan{both(18, 26, eyeClosed), {50, 60, eyeClosed, eyeOpen}, {90, 100, eyeOpen, eyeClosed}},
		keys: []keyframe{
			{0, 0, 0}, {5, 0, 0}, {18, 2, 0}, {35, 2, 0}, {41, 0, 0}, {50, 0, -2}, {65, 0, -2},
			{71, -2, -1}, {74, -2, 0}, {83, -2, 0}, {89, 0, 0}, {100, 0, 0}, {107, 0, 2}, {110, 0, 2}, {116, 0, 0},
		},
	},
	{
		caption: "WAKE ME UP!", speech: "Wake me up!", effect: audio.EffectSleepy,
		lids: []lidSpan{both(0, 38, eyeHalf), both(38, 75, eyeClosed), both(75, 98, eyeHalf), both(98, sceneLength, eyeWide)},
		keys: []keyframe{{0, 0, 0}, {15, 0, 0}, {30, 0, 2}, {38, 0, 2}, {50, 0, 1}, {98, 0, 1}, {102, 0, 0}, {106, 0, -1}},
	},
	{
		caption: "PLAY WITH ME!", speech: "Play with me!", effect: audio.EffectLook,
		lids: []lidSpan{both(54, 64, eyeClosed)},
		keys: []keyframe{
			{0, 0, -2}, {10, 2, -2}, {18, 2, 0}, {26, 2, 2}, {34, 0, 2}, {42, -2, 2}, {50, -2, 0}, {58, 0, 0},
			{69, 0, 0}, {75, -2, 0}, {83, -2, -2}, {91, 0, -2}, {99, 2, -2}, {107, 2, 0}, {116, 0, 0},
		},
	},
	{
		caption: "PEEK A BOO!", speech: "Peek a boo!", effect: audio.EffectPeek,
		lids: []lidSpan{
			both(24, 39, eyeClosed), both(39, 50, eyeHidden), {50, 75, eyeHidden, eyeOpen},
			both(75, 87, eyeHidden), {87, 105, eyeOpen, eyeHidden},
		},
		keys: []keyframe{{0, 0, 0}, {50, 0, 0}, {60, -2, 0}, {75, -2, 0}, {87, 0, 0}, {97, 2, 0}, {105, 2, 0}, {112, 0, 0}},
	},
	{
		caption: "PRESS TO PLAY!", speech: "Press to play!", effect: audio.EffectDizzy,
		lids: []lidSpan{both(0, 98, eyeDizzy), both(98, 105, eyeHalf)},
		keys: []keyframe{{98, 1, 1}, {105, 1, 1}, {110, -1, 0}, {116, 0, 0}},
	},
	{
		caption: "AWESOME!", speech: "Awesome!", effect: audio.EffectBlink,
		lids: []lidSpan{both(35, 45, eyeClosed), both(83, 93, eyeClosed)},
		keys: []keyframe{
			{0, 0, 0}, {5, 0, 0}, {12, 2, 0}, {35, 2, 0}, {50, 1, 0}, {55, 0, 0}, {62, -2, 0}, {83, -2, 0},
			{97, -1, -1}, {103, 0, -2}, {112, 0, -1}, {116, 0, 0},
		},
	},
	{
		caption: "I SEE YOU!", speech: "I see you!", effect: audio.EffectLook,
		lids: []lidSpan{both(55, 86, eyeHalf), {107, sceneLength, eyeClosed, eyeOpen}},
		keys: []keyframe{
			{0, 0, 0}, {5, 0, 0}, {12, -2, 0}, {25, -2, 0}, {35, 0, 0}, {45, 2, 0}, {70, 2, 0}, {80, 1, 0},
			{90, 2, 1}, {100, 1, 1}, {110, -1, 0}, {116, -2, 0},
		},
	},
	{
		caption: "PRESS TO PLAY!", speech: "Press to play!", effect: audio.EffectDizzy,
		flutter: true,
		path: []offset{
			{0, 0}, {0, -1}, {1, -1}, {1, -2}, {2, -1}, {2, 0}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
			{-1, 2}, {-2, 1}, {-2, 0}, {-1, 0}, {-1, -1}, {0, -1}, {0, -2}, {1, -2}, {2, -2}, {2, -1},
			{1, 0}, {0, 0}, {0, 1}, {0, 2}, {-1, 2}, {-2, 2}, {-2, 1}, {-2, 0}, {-1, -1}, {0, -1},
		},
		period: 4,
	},
	{
		caption: "HYPNOTIZING!", speech: "Hypnotizing!", effect: audio.EffectHypno,
		path: []offset{
			{0, -2}, {1, -2}, {2, -1}, {2, 0}, {2, 1}, {1, 2}, {0, 2}, {-1, 2}, {-2, 1}, {-2, 0}, {-2, -1}, {-1, -2},
		},
		period: 5,
		mirror: true,
	},
	{
		caption: "BOING BOING!", speech: "Boing boing!", effect: audio.EffectBounce,
		lids: []lidSpan{both(25, 35, eyeWide), both(75, 85, eyeWide)},
		keys: []keyframe{
			{0, -1, -2}, {8, -1, -2}, {25, -1, 2}, {35, -1, 2}, {50, 1, -2}, {60, 1, -2},
			{75, 1, 2}, {82, 0, 2}, {95, 0, 2}, {110, 0, -2},
		},
	},
	{
		caption: "INTERESTING!", speech: "Interesting!", effect: audio.EffectLook,
		lids: []lidSpan{both(55, 65, eyeClosed)},
		path: []offset{
			{-2, 1}, {-1, 1}, {0, 1}, {1, 1}, {2, 1}, {2, 1}, {1, 1}, {0, 1},
			{-2, 2}, {-1, 2}, {0, 2}, {1, 2}, {2, 2},
		},
		period: 6,
		rest:   [2]int{55, 65},
	},
	{
		caption: "COME PLAY!", speech: "Come play!", effect: audio.EffectFlirt,
		lids: []lidSpan{{20, 35, eyeClosed, eyeOpen}, {60, 75, eyeOpen, eyeClosed}, both(100, 110, eyeHalf)},
		keys: []keyframe{
			{0, 0, 0}, {20, 0, 0}, {26, 2, 0}, {35, 2, 0}, {50, 1, 0}, {60, 0, 0}, {66, -2, 0}, {75, -2, 0},
			{90, -1, 0}, {100, 0, 1}, {110, 0, 0}, {116, 0, -1},
		},
	},
	{
		caption: "SO NERVOUS!", speech: "So nervous!", effect: audio.EffectNervous,
		lids:   []lidSpan{both(60, 75, eyeWide)},
		path:   []offset{{0, 0}, {1, 0}, {0, 0}, {-1, 0}, {0, 1}, {0, 0}, {0, -1}},
		period: 2,
	},
	{
		caption: "WHERE IS IT?", speech: "Where is it?", effect: audio.EffectSearch,
		lids: []lidSpan{both(30, 40, eyeWide), both(80, 90, eyeWide)},
		path: []offset{
			{-2, -2}, {-1, -1}, {0, -2}, {1, -1}, {2, -2}, {2, 0}, {2, 2}, {1, 1},
			{0, 2}, {-1, 1}, {-2, 2}, {-2, 0}, {-1, -1}, {0, 0}, {1, -1}, {2, 0},
		},
		period: 4,
	},
	{
		caption: "HEY THERE!", speech: "Hey there!", effect: audio.EffectFlirt,
		lids: []lidSpan{both(15, 20, eyeClosed), both(35, 40, eyeClosed), both(55, 60, eyeClosed), both(75, 95, eyeHalf)},
		keys: []keyframe{
			{0, 2, 1}, {22, 2, 1}, {30, -2, 1}, {42, -2, 1}, {50, 0, -1}, {62, 0, -1}, {70, 1, 0}, {82, 1, 0}, {90, -1, 1},
		},
	},
	{
		caption: "PRESS TO PLAY!", speech: "Press to play!", effect: audio.EffectHypno,
		lids: []lidSpan{both(58, 68, eyeClosed)},
		path: []offset{
			{0, -2}, {1, -2}, {2, -1}, {2, 0}, {2, 1}, {1, 2}, {0, 2}, {-1, 1}, {-2, 0}, {-2, -1}, {-1, -2}, {0, -2},
			{-1, -2}, {-2, -1}, {-2, 0}, {-2, 1}, {-1, 2}, {0, 2}, {1, 1}, {2, 0}, {2, -1}, {1, -2}, {0, -2},
		},
		period: 3,
		rest:   [2]int{58, 68},
	},
}
