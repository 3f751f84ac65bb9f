package progress

import (
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "progress.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func TestOpenCreatesFile(t *testing.T) {
	_, dbPath := openTemp(t)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not created")
	}
}

func TestPlayedCutscenes(t *testing.T) {
	store, _ := openTemp(t)

	played, err := store.Played("welcome")
	if err != nil || played {
		t.Fatalf("Played before mark = %v, %v", played, err)
	}
	if err := store.MarkPlayed("welcome", "run-1"); err != nil {
		t.Fatalf("MarkPlayed: %v", err)
	}
	if err := store.MarkPlayed("welcome", "run-2"); err != nil {
		t.Fatalf("second MarkPlayed: %v", err)
	}
	played, err = store.Played("welcome")
	if err != nil || !played {
		t.Fatalf("Played after mark = %v, %v", played, err)
	}
}

func TestFiredTriggersPerMap(t *testing.T) {
	store, _ := openTemp(t)
	for _, tc := range []struct{ m, id string }{{"town", "gate"}, {"town", "gate"}, {"town", "well"}, {"cave", "gate"}} {
		if err := store.MarkTriggerFired(tc.m, tc.id); err != nil {
			t.Fatalf("MarkTriggerFired: %v", err)
		}
	}
	town, err := store.FiredTriggers("town")
	if err != nil {
		t.Fatal(err)
	}
	if len(town) != 2 || !town["gate"] || !town["well"] {
		t.Fatalf("town triggers = %v", town)
	}
	none, err := store.FiredTriggers("nowhere")
	if err != nil || len(none) != 0 {
		t.Fatalf("unknown map = %v, %v", none, err)
	}
}

func TestItemTotalsAndReset(t *testing.T) {
	store, _ := openTemp(t)
	grants := []struct {
		item  string
		count int
	}{{"apple", 3}, {"coin", 1}, {"apple", 2}}
	for _, g := range grants {
		if err := store.RecordItem(g.item, g.count, "welcome"); err != nil {
			t.Fatalf("RecordItem: %v", err)
		}
	}
	totals, err := store.ItemTotals()
	if err != nil {
		t.Fatal(err)
	}
	if totals["apple"] != 5 || totals["coin"] != 1 {
		t.Fatalf("totals = %v", totals)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	totals, _ = store.ItemTotals()
	played, _ := store.Played("welcome")
	if len(totals) != 0 || played {
		t.Fatalf("reset left data behind: %v %v", totals, played)
	}
}

func TestReopenKeepsData(t *testing.T) {
	store, dbPath := openTemp(t)
	if err := store.MarkPlayed("cave_mouth", "run"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	again, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	if played, _ := again.Played("cave_mouth"); !played {
		t.Fatalf("data lost across reopen")
	}
}

func TestMemoryStore(t *testing.T) {
	store, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	defer store.Close()
	if err := store.RecordItem("key", 1, ""); err != nil {
		t.Fatal(err)
	}
	if totals, _ := store.ItemTotals(); totals["key"] != 1 {
		t.Fatalf("memory store lost a write")
	}
}
