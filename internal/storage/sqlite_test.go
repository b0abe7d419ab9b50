package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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

func mustSave(t *testing.T, store *Store, m Match) string {
	t.Helper()
	id, err := store.SaveMatch(m)
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	id := mustSave(t, store, Match{Variant: "pong", EndReason: EndCompleted})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	defer store.Close()

	m, err := store.MatchByID(id)
	if err != nil || m == nil {
		t.Fatalf("MatchByID() after reopen = (%v, %v)", m, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saved := Match{
		Variant:    "pong",
		ScoreLeft:  5,
		ScoreRight: 3,
		Winner:     WinnerLeft,
		EndReason:  EndCompleted,
		Duration:   93*time.Second + 250*time.Millisecond,
		Frames:     5595,
		Player:     "alice",
	}
	id := mustSave(t, store, saved)

	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveMatch() returned %q, expected a UUID", id)
	}

	got, err := store.MatchByID(id)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("MatchByID() returned nil for a saved match")
	}

	saved.ID = id
	saved.CreatedAt = got.CreatedAt
	if *got != saved {
		t.Errorf("MatchByID() = %+v, expected %+v", *got, saved)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
}

func TestStoreKeepsExplicitID(t *testing.T) {
	store := openTestStore(t)
	id := uuid.NewString()

	if got := mustSave(t, store, Match{ID: id, Variant: "pong", EndReason: EndQuit}); got != id {
		t.Errorf("SaveMatch() = %q, expected %q", got, id)
	}

	// IDs are unique
	if _, err := store.SaveMatch(Match{ID: id, Variant: "pong", EndReason: EndQuit}); err == nil {
		t.Error("saving a duplicate ID should fail")
	}
}

func TestStoreMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)

	m, err := store.MatchByID("does-not-exist")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if m != nil {
		t.Errorf("MatchByID() = %+v, expected nil", m)
	}
}

func TestStoreRecentMatches(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		mustSave(t, store, Match{Variant: "pong", ScoreLeft: i, EndReason: EndCompleted})
	}
	mustSave(t, store, Match{Variant: "brave", EndReason: EndQuit})

	pong, err := store.RecentMatches("pong", 3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(pong) != 3 {
		t.Fatalf("Expected 3 matches with limit, got %d", len(pong))
	}
	// Newest first
	if pong[0].ScoreLeft != 4 || pong[1].ScoreLeft != 3 || pong[2].ScoreLeft != 2 {
		t.Errorf("matches not newest first: %d, %d, %d", pong[0].ScoreLeft, pong[1].ScoreLeft, pong[2].ScoreLeft)
	}

	all, err := store.RecentMatches("", 0)
	if err != nil {
		t.Fatalf("RecentMatches(all) failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 matches across variants, got %d", len(all))
	}
	if all[0].Variant != "brave" {
		t.Errorf("newest match variant = %q, expected brave", all[0].Variant)
	}
}

func TestStoreVariantStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.VariantStats("pong")
	if err != nil {
		t.Fatalf("VariantStats() failed: %v", err)
	}
	if empty.Matches != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for an empty variant = %+v", empty)
	}

	mustSave(t, store, Match{Variant: "pong", Winner: WinnerLeft, EndReason: EndCompleted, Duration: 10 * time.Second})
	mustSave(t, store, Match{Variant: "pong", Winner: WinnerLeft, EndReason: EndCompleted, Duration: 20 * time.Second})
	mustSave(t, store, Match{Variant: "pong", Winner: WinnerRight, EndReason: EndCompleted, Duration: 30 * time.Second})
	mustSave(t, store, Match{Variant: "pong", Winner: WinnerNone, EndReason: EndQuit, Duration: 40 * time.Second})
	mustSave(t, store, Match{Variant: "brave", Winner: WinnerRight, EndReason: EndCompleted})

	stats, err := store.VariantStats("pong")
	if err != nil {
		t.Fatalf("VariantStats() failed: %v", err)
	}
	if stats.Matches != 4 || stats.LeftWins != 2 || stats.RightWins != 1 {
		t.Errorf("VariantStats() = %+v, expected 4 matches, 2 left wins, 1 right win", stats)
	}
	if stats.AvgDuration != 25*time.Second {
		t.Errorf("AvgDuration = %v, expected 25s", stats.AvgDuration)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set once matches exist")
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Match{Variant: "pong", EndReason: EndCompleted})
	mustSave(t, store, Match{Variant: "pong", EndReason: EndCompleted})
	mustSave(t, store, Match{Variant: "brave", EndReason: EndCompleted})

	if err := store.ClearMatches("pong"); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}

	pong, _ := store.RecentMatches("pong", 10)
	if len(pong) != 0 {
		t.Errorf("Expected 0 pong matches after clear, got %d", len(pong))
	}

	brave, _ := store.RecentMatches("brave", 10)
	if len(brave) != 1 {
		t.Errorf("brave matches should not be affected by clearing pong")
	}
}
