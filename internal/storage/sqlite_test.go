package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") should fail")
	}
}

func TestStoreHighScoreKeepsMaximum(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("dino")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	for _, score := range []int{120, 340, 200} {
		if err := store.SetHighScore("dino", score); err != nil {
			t.Fatalf("SetHighScore(%d) failed: %v", score, err)
		}
	}

	high, err = store.HighScore("dino")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 340 {
		t.Errorf("Expected high score of 340, got %d", high)
	}

	// Other games are independent.
	if high, _ := store.HighScore("snake"); high != 0 {
		t.Errorf("Expected snake high score of 0, got %d", high)
	}
}

func TestStoreHighScorePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SetHighScore("snake", 42); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if high, _ := store.HighScore("snake"); high != 42 {
		t.Errorf("Expected persisted high score 42, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("snake", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("dino", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Game != "snake" {
		t.Errorf("Expected game snake, got %q", scores[0].Game)
	}

	dinoScores, err := store.TopScores("dino", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(dinoScores) != 1 {
		t.Errorf("Expected 1 dino score, got %d", len(dinoScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("snake", 100)
	store.SetHighScore("snake", 100)
	store.SaveScore("dino", 300)

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("snake", 10); len(scores) != 0 {
		t.Errorf("Expected 0 snake scores after clear, got %d", len(scores))
	}
	if high, _ := store.HighScore("snake"); high != 0 {
		t.Errorf("Expected snake high score cleared, got %d", high)
	}
	if scores, _ := store.TopScores("dino", 10); len(scores) != 1 {
		t.Errorf("Dino scores should not be affected by clearing snake")
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("snake", 10)
	store.SaveScore("snake", 30)
	store.SetHighScore("dino", 900)

	stats, err := store.AllGamesStats()
	if err != nil {
		t.Fatalf("AllGamesStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(stats))
	}
	snake := stats["snake"]
	if snake.GamesCount != 2 || snake.HighScore != 30 || snake.AvgScore != 20 {
		t.Errorf("Unexpected snake stats: %+v", snake)
	}
	dino := stats["dino"]
	if dino.GamesCount != 0 || dino.HighScore != 900 {
		t.Errorf("Unexpected dino stats: %+v", dino)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	m.SetHighScore("pong", 5)
	m.SetHighScore("pong", 3)
	if high, _ := m.HighScore("pong"); high != 5 {
		t.Errorf("Expected 5, got %d", high)
	}

	m.SaveScore("pong", 1)
	m.SaveScore("pong", 7)
	m.SaveScore("snake", 9)
	top, _ := m.TopScores("pong", 1)
	if len(top) != 1 || top[0].Score != 7 {
		t.Errorf("Unexpected top scores: %v", top)
	}
}

func TestImportLegacyHighScore(t *testing.T) {
	dir := t.TempDir()
	m := NewMemory()

	n, err := ImportLegacyHighScore(m, "dino", filepath.Join(dir, "missing"))
	if err != nil || n != 0 {
		t.Fatalf("missing file: got %d, %v", n, err)
	}

	path := filepath.Join(dir, "dino_highscore")
	os.WriteFile(path, []byte("1230\n"), 0o644)
	n, err = ImportLegacyHighScore(m, "dino", path)
	if err != nil {
		t.Fatalf("ImportLegacyHighScore() failed: %v", err)
	}
	if n != 1230 {
		t.Errorf("Expected 1230, got %d", n)
	}
	if high, _ := m.HighScore("dino"); high != 1230 {
		t.Errorf("Expected imported high score, got %d", high)
	}

	os.WriteFile(path, []byte("garbage"), 0o644)
	if _, err := ImportLegacyHighScore(m, "dino", path); err == nil {
		t.Error("Expected an error for a corrupt file")
	}
}
