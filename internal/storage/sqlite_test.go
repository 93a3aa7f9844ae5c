package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/evosim/internal/sim"
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

func run(preset string, occupied, cycles int) RunRecord {
	return RunRecord{
		Preset:          preset,
		Seed:            42,
		Rows:            10,
		CyclesRequested: 100,
		CyclesRun:       cycles,
		Occupied:        occupied,
		NutrientsLeft:   3,
		Mutations:       2,
		InitialGrowth:   0.66,
		FinalGrowth:     0.61,
		Reason:          sim.ReasonExhausted,
	}
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	want := run("petri", 17, 100)
	want.Reason = sim.ReasonSurvivalLost
	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.ID != id || got.Preset != "petri" || got.Occupied != 17 || got.Seed != 42 {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.Reason != sim.ReasonSurvivalLost {
		t.Errorf("Reason = %v, expected survival_lost", got.Reason)
	}
	if got.InitialGrowth != 0.66 || got.FinalGrowth != 0.61 {
		t.Errorf("growth = %v -> %v", got.InitialGrowth, got.FinalGrowth)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	if _, err := store.RunByID(id + 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("RunByID(missing) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	records := []RunRecord{
		run("maze", 10, 300),
		run("maze", 40, 900),
		run("maze", 40, 500), // same area in fewer cycles ranks higher
		run("maze", 25, 100),
		run("petri", 99, 100),
	}
	for _, r := range records {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("maze", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopRuns() returned %d runs, expected 3", len(top))
	}
	expected := []struct{ occupied, cycles int }{{40, 500}, {40, 900}, {25, 100}}
	for i, e := range expected {
		if top[i].Occupied != e.occupied || top[i].CyclesRun != e.cycles {
			t.Errorf("top[%d] = %d cells in %d cycles, expected %d in %d",
				i, top[i].Occupied, top[i].CyclesRun, e.occupied, e.cycles)
		}
	}

	all, err := store.TopRuns("maze", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("default limit returned %d runs, expected 4", len(all))
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveRun(run("petri", i, 100)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("RecentRuns(5) returned %d runs", len(recent))
	}
	if recent[0].Occupied != 14 || recent[4].Occupied != 10 {
		t.Errorf("RecentRuns() not newest first: %d .. %d", recent[0].Occupied, recent[4].Occupied)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(run("petri", 5, 10))
	store.SaveRun(run("maze", 5, 10))

	if err := store.ClearRuns("petri"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns("petri", 10); len(runs) != 0 {
		t.Errorf("petri runs left: %d", len(runs))
	}
	if runs, _ := store.TopRuns("maze", 10); len(runs) != 1 {
		t.Errorf("maze runs = %d, expected 1", len(runs))
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(all) failed: %v", err)
	}
	if runs, _ := store.RecentRuns(10); len(runs) != 0 {
		t.Errorf("runs left after clearing all: %d", len(runs))
	}
}

func TestStorePresetStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.PresetStats("petri")
	if err != nil {
		t.Fatalf("PresetStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastRun.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(run("petri", 10, 100))
	store.SaveRun(run("petri", 20, 300))
	store.SaveRun(run("maze", 7, 50))

	stats, err := store.PresetStats("petri")
	if err != nil {
		t.Fatalf("PresetStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestOccupied != 20 || stats.AvgOccupied != 15 || stats.AvgCycles != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalMutated != 4 {
		t.Errorf("TotalMutated = %d, expected 4", stats.TotalMutated)
	}

	all, err := store.AllPresetStats()
	if err != nil {
		t.Fatalf("AllPresetStats() failed: %v", err)
	}
	if len(all) != 2 || all["maze"].Runs != 1 || all["maze"].BestOccupied != 7 {
		t.Errorf("AllPresetStats() = %v", all)
	}
}

func TestNewRunRecord(t *testing.T) {
	cfg := sim.Config{Rows: 12, Cols: 12, Cycles: 400}
	res := sim.RunResult{
		Occupied:      []sim.Coord{sim.C(1, 1), sim.C(1, 2)},
		Nutrients:     []sim.Coord{sim.C(3, 3)},
		MutationCount: 6,
		InitialGrowth: 0.7,
		FinalGrowth:   0.2,
		CyclesRun:     123,
		Reason:        sim.ReasonStarved,
	}

	r := NewRunRecord("", 9, cfg, res)
	if r.Preset != CustomPreset || r.Seed != 9 || r.Rows != 12 || r.CyclesRequested != 400 {
		t.Errorf("header = %+v", r)
	}
	if r.Occupied != 2 || r.NutrientsLeft != 1 || r.Mutations != 6 || r.CyclesRun != 123 || r.Reason != sim.ReasonStarved {
		t.Errorf("counters = %+v", r)
	}
}
