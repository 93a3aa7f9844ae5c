package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/evosim/internal/core"
	_ "github.com/vovakirdan/evosim/internal/presets"
	"github.com/vovakirdan/evosim/internal/registry"
	"github.com/vovakirdan/evosim/internal/sim"
	"github.com/vovakirdan/evosim/internal/storage"
)

func sendMenu(m MenuModel, keys ...tea.Msg) MenuModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuItems(t *testing.T) {
	presets := registry.List()

	local := NewMenuModel(core.DefaultConfig(), true)
	if len(local.items) != len(presets)+1 {
		t.Fatalf("local menu has %d items, expected %d", len(local.items), len(presets)+1)
	}
	if last := local.items[len(local.items)-1]; !last.Custom {
		t.Error("last local item should be the custom setup")
	}

	remote := NewMenuModel(core.DefaultConfig(), false)
	if len(remote.items) != len(presets) {
		t.Errorf("remote menu has %d items, expected %d", len(remote.items), len(presets))
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), true)
	m = sendMenu(m, downKey, enterKey)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.SetupID != registry.List()[1].ID {
		t.Errorf("selected %q, expected the second preset", sel.SetupID)
	}
}

func TestMenuCursorClamps(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), true)
	m = sendMenu(m, runeKey('k'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after moving up from the top", m.cursor)
	}
	for range len(m.items) + 3 {
		m = sendMenu(m, downKey)
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := sendMenu(NewMenuModel(core.DefaultConfig(), true), tabKey)
	if !m.WantsHistory() {
		t.Error("tab should request history")
	}

	m = sendMenu(NewMenuModel(core.DefaultConfig(), true), runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestMenuView(t *testing.T) {
	view := NewMenuModel(core.DefaultConfig(), true).View()
	for _, want := range []string{"Select a setup", "Custom setup", "(tutorial)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestHistoryModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for i, preset := range []string{"petri", "petri", "maze"} {
		rec := storage.RunRecord{Preset: preset, Rows: 10, CyclesRequested: 10, CyclesRun: 10, Occupied: i + 1, Reason: sim.ReasonExhausted}
		if _, err := store.SaveRun(rec); err != nil {
			t.Fatal(err)
		}
	}

	m := NewHistoryModel(store, 120, 40)
	if got := len(m.table.Rows()); got != 3 {
		t.Errorf("recent runs tab has %d rows, expected 3", got)
	}

	for i, tab := range m.tabs {
		if tab.Preset == "petri" {
			m.tabCursor = i
		}
	}
	m.loadRuns()
	if got := len(m.table.Rows()); got != 2 {
		t.Errorf("petri tab has %d rows, expected 2", got)
	}
	if !strings.Contains(m.View(), "RUN HISTORY") {
		t.Error("View() missing title")
	}

	next, _ := m.Update(escKey)
	if !next.(HistoryModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestHistoryModelWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("expected the unavailable message without a store")
	}
	for _, tab := range m.tabs {
		if tab.Preset == "tutorial" {
			t.Error("tutorial runs are never saved and should have no tab")
		}
	}
	next, _ := m.Update(tabKey)
	if next.(HistoryModel).tabCursor != 1 {
		t.Error("tab should move to the next preset")
	}
}
