package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// newTestStore opens a store in a per-test temp directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesNestedDirectories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestSaveAndTopScores(t *testing.T) {
	store := newTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("classic", "", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("topless", "", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d classic scores, want 3", len(scores))
	}
	for i, want := range []int{200, 100, 50} {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, want %d (descending order)", i, scores[i].Score, want)
		}
	}

	// An empty player is recorded as the local player
	if scores[0].Player != LocalPlayer {
		t.Errorf("player = %q, want %q", scores[0].Player, LocalPlayer)
	}

	// Variants don't leak into each other
	topless, err := store.TopScores("topless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(topless) != 1 {
		t.Errorf("got %d topless scores, want 1", len(topless))
	}
}

func TestTopScoresLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 1; i <= 5; i++ {
		store.SaveScore("classic", "", i*100)
	}

	scores, err := store.TopScores("classic", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d scores, want limit of 3", len(scores))
	}
	if scores[0].Score != 500 || scores[2].Score != 300 {
		t.Errorf("got %d..%d, want the top 3 (500..300)", scores[0].Score, scores[2].Score)
	}
}

func TestPlayerScores(t *testing.T) {
	store := newTestStore(t)

	store.SaveScore("polished", "alice", 300)
	store.SaveScore("polished", "alice", 700)
	store.SaveScore("polished", "bob", 900)

	alice, err := store.PlayerScores("polished", "alice", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(alice) != 2 {
		t.Fatalf("got %d alice scores, want 2", len(alice))
	}
	if alice[0].Score != 700 {
		t.Errorf("alice's best = %d, want 700", alice[0].Score)
	}
	for _, e := range alice {
		if e.Player != "alice" {
			t.Errorf("PlayerScores returned entry for %q", e.Player)
		}
	}

	// The global top still sees everyone
	all, err := store.TopScores("polished", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 3 || all[0].Player != "bob" {
		t.Errorf("got %v, want bob on top of 3 entries", all)
	}
}

func TestAllScores(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("polished", "", i*10)
	}

	scores, err := store.AllScores("polished")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("got %d scores, want all 20", len(scores))
	}
}

func TestHighScore(t *testing.T) {
	store := newTestStore(t)

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("high score without rows = %d, want 0", high)
	}

	store.SaveScore("classic", "", 100)
	store.SaveScore("classic", "", 300)
	store.SaveScore("classic", "", 200)

	high, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("high score = %d, want 300", high)
	}
}

func TestClearScoresIsPerVariant(t *testing.T) {
	store := newTestStore(t)

	store.SaveScore("classic", "", 100)
	store.SaveScore("classic", "", 200)
	store.SaveScore("topless", "", 300)

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("classic", 10)
	if len(classic) != 0 {
		t.Errorf("got %d classic scores after clear, want 0", len(classic))
	}
	topless, _ := store.TopScores("topless", 10)
	if len(topless) != 1 {
		t.Error("clearing classic must not touch topless")
	}
}

func TestGameStats(t *testing.T) {
	store := newTestStore(t)

	// Empty variants report zeroes, not errors
	stats, err := store.GetGameStats("classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 {
		t.Errorf("empty stats = %+v, want zeroes", stats)
	}

	store.SaveScore("classic", "", 100)
	store.SaveScore("classic", "", 300)

	stats, err = store.GetGameStats("classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, want 400", stats.TotalScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
}

func TestAllGamesStats(t *testing.T) {
	store := newTestStore(t)

	store.SaveScore("classic", "", 100)
	store.SaveScore("classic", "", 200)
	store.SaveScore("polished", "alice", 900)

	stats, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got stats for %d variants, want 2", len(stats))
	}
	if stats["classic"].GamesCount != 2 || stats["classic"].HighScore != 200 {
		t.Errorf("classic stats = %+v", stats["classic"])
	}
	if stats["polished"].GamesCount != 1 || stats["polished"].HighScore != 900 {
		t.Errorf("polished stats = %+v", stats["polished"])
	}
}
