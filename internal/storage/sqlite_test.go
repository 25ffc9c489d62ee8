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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("pong", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("snake", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("pong", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("scores not descending: %d %d %d",
			scores[0].Score, scores[1].Score, scores[2].Score)
	}

	high, err := store.HighScore("pong")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 200 {
		t.Errorf("HighScore() = %d, expected 200", high)
	}

	// Games don't see each other's scores.
	high, err = store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 500 {
		t.Errorf("HighScore() = %d, expected 500", high)
	}

	// No scores yet means zero, not an error.
	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() for unplayed game = %d, expected 0", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore("pong", 10); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if err := store.ClearScores("pong"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, err := store.TopScores("pong", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
}

func TestStoreRecordings(t *testing.T) {
	store := openTestStore(t)

	data := []byte(`{"startTimestamp":0,"totalFrames":2,"frames":[]}`)
	id, err := store.SaveRecording("pong", 1500.5, 90, 60, data)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}

	entry, err := store.LoadRecording(id)
	if err != nil {
		t.Fatalf("LoadRecording() failed: %v", err)
	}
	if entry == nil {
		t.Fatal("LoadRecording() returned nil for an existing recording")
	}
	if entry.GameID != "pong" || entry.DurationMS != 1500.5 ||
		entry.TotalFrames != 90 || entry.TargetFPS != 60 {
		t.Errorf("loaded entry = %+v", entry)
	}
	if string(entry.Data) != string(data) {
		t.Errorf("loaded data = %s, expected %s", entry.Data, data)
	}

	// Listing omits the blob.
	list, err := store.ListRecordings("pong", 10)
	if err != nil {
		t.Fatalf("ListRecordings() failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 recording, got %d", len(list))
	}
	if list[0].Data != nil {
		t.Error("ListRecordings() loaded the data blob")
	}

	// Listing all games includes it too.
	list, err = store.ListRecordings("", 10)
	if err != nil {
		t.Fatalf("ListRecordings() failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 recording for all games, got %d", len(list))
	}
}

func TestStoreLoadMissingRecording(t *testing.T) {
	store := openTestStore(t)

	entry, err := store.LoadRecording(12345)
	if err != nil {
		t.Fatalf("LoadRecording() failed: %v", err)
	}
	if entry != nil {
		t.Errorf("LoadRecording() for a missing ID = %+v, expected nil", entry)
	}
}

func TestStoreDeleteRecording(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRecording("snake", 100, 6, 60, []byte("{}"))
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	if err := store.DeleteRecording(id); err != nil {
		t.Fatalf("DeleteRecording() failed: %v", err)
	}

	entry, err := store.LoadRecording(id)
	if err != nil {
		t.Fatalf("LoadRecording() failed: %v", err)
	}
	if entry != nil {
		t.Error("recording still present after delete")
	}
}
