package dino

import "github.com/vovakirdan/matrix-arcade/internal/core"

// Player sprites are 7 pixels wide; the hitbox uses the configured player
// width, which covers the body without the tail and snout.
var (
	runSprites = [2]*core.Bitmap{
		core.NewBitmap(
			"   XXX ",
			"   XXXX",
			"   XX  ",
			"  XXXX ",
			"X XXX  ",
			"XXXX   ",
			" XX    ",
			" X X   ",
			"   X   ",
		),
		core.NewBitmap(
			"   XXX ",
			"   XXXX",
			"   XX  ",
			"  XXXX ",
			"X XXX  ",
			"XXXX   ",
			" XX    ",
			"  X    ",
			" X     ",
		),
	}
	jumpSprite = core.NewBitmap(
		"   XXX ",
		"   XXXX",
		"   XX  ",
		"  XXXX ",
		"X XXX  ",
		"XXXX   ",
		" XX    ",
		" X X   ",
	)
	duckSprite = core.NewBitmap(
		"   XXXX",
		"XXXXXX ",
		" X  X  ",
	)
)

var (
	cactusSmall = core.NewBitmap(
		" X ",
		" X ",
		"XX ",
		" XX",
		" X ",
	)
	cactusMedium = core.NewBitmap(
		"  X  ",
		"  X  ",
		"X X  ",
		"XXX X",
		"  XXX",
		"  X  ",
	)
	cactusTall = core.NewBitmap(
		"  X  ",
		"X X  ",
		"X X  ",
		"XXX X",
		"  XXX",
		"  X  ",
		"  X  ",
	)
	birdSprites = [2]*core.Bitmap{
		core.NewBitmap(
			"X X",
			" X ",
		),
		core.NewBitmap(
			" X ",
			"X X",
		),
	}
)
