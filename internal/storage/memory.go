package storage

import (
	"sort"
	"sync"
	"time"
)

// Memory keeps scores in memory. It is used when no database is wanted and
// in tests.
type Memory struct {
	mu      sync.Mutex
	high    map[string]int
	history []ScoreEntry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{high: make(map[string]int)}
}

// HighScore returns the high score for game, or 0.
func (m *Memory) HighScore(game string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.high[game], nil
}

// SetHighScore stores score unless a higher one is already stored.
func (m *Memory) SetHighScore(game string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.high[game] {
		m.high[game] = score
	}
	return nil
}

// SaveScore records a finished game.
func (m *Memory) SaveScore(game string, score int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := int64(len(m.history) + 1)
	m.history = append(m.history, ScoreEntry{ID: id, Game: game, Score: score, CreatedAt: time.Now()})
	return id, nil
}

// TopScores returns the best limit scores of game.
func (m *Memory) TopScores(game string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ScoreEntry
	for _, e := range m.history {
		if e.Game == game {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close implements io.Closer.
func (m *Memory) Close() error { return nil }
