package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// LegacyHighScoreFile is where older single-game builds kept the Dino high
// score as a bare integer.
const LegacyHighScoreFile = "/var/lib/dino_highscore"

// HighScoreSetter is the write half of a score store.
type HighScoreSetter interface {
	SetHighScore(game string, score int) error
}

// ImportLegacyHighScore copies the score in path into dst under game. A
// missing file imports nothing and is not an error.
func ImportLegacyHighScore(dst HighScoreSetter, game, path string) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: read legacy score: %w", err)
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("storage: legacy score %s: %w", path, err)
	}
	if score <= 0 {
		return 0, nil
	}
	if err := dst.SetHighScore(game, score); err != nil {
		return 0, err
	}
	return score, nil
}
