package planstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Nomadcxx/anirename/internal/analyzer"
	"github.com/Nomadcxx/anirename/internal/catalog"
	"github.com/Nomadcxx/anirename/internal/planner"
)

func makePlan(series string, created time.Time) *planner.Plan {
	return &planner.Plan{
		Series:    catalog.SeriesInfo{ID: 42, Name: series},
		Root:      "/library/" + series,
		CreatedAt: created,
		Operations: []planner.Operation{
			{
				Kind:      planner.KindRename,
				Source:    "/library/" + series + "/01 - raw.mkv",
				TargetDir: "/library/" + series,
				NewName:   series + ".S01E01.Alpha.mkv",
				Slot:      analyzer.Slot{Season: 1, Episode: 1},
				Size:      100,
			},
		},
		Stats: planner.Stats{Files: 1, Renames: 1},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	plan := makePlan("Show", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	path, err := store.Save(plan)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("plan file was not created: %v", err)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Series.Name != "Show" {
		t.Errorf("expected series Show, got %s", loaded.Series.Name)
	}
	if len(loaded.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(loaded.Operations))
	}
	if loaded.Operations[0].Kind != planner.KindRename {
		t.Errorf("expected rename kind, got %s", loaded.Operations[0].Kind)
	}
	if loaded.Operations[0].TargetPath() != "/library/Show/Show.S01E01.Alpha.mkv" {
		t.Errorf("unexpected target path %s", loaded.Operations[0].TargetPath())
	}
	if loaded.Stats.Renames != 1 {
		t.Errorf("expected 1 rename in stats, got %d", loaded.Stats.Renames)
	}
}

func TestLatestReturnsNewestPlan(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := store.Save(makePlan("Older", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.Save(makePlan("Newer", time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	plan, path, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if plan.Series.Name != "Newer" {
		t.Errorf("expected newest plan, got %s", plan.Series.Name)
	}
	if path == "" {
		t.Error("expected a plan path")
	}
}

func TestLatestWithoutPlans(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, _, err = store.Latest()
	if !errors.Is(err, ErrNoPlans) {
		t.Errorf("expected ErrNoPlans, got %v", err)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := store.Save(makePlan("A", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.Save(makePlan("B", time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "plan-subdir.json"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	found, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 plan files, got %d", len(found))
	}
	if filepath.Base(found[0]) < filepath.Base(found[1]) {
		t.Error("expected newest plan first")
	}
}

func TestListMissingDirectory(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	found, err := store.List()
	if err != nil {
		t.Fatalf("List should not fail for a missing directory: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("expected no plans, got %d", len(found))
	}
}

func TestDelete(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := store.Save(makePlan("Show", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(path); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	found, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("expected empty store after delete, got %d plans", len(found))
	}
}

func TestNewDefaultsToConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	os.Setenv("HOME", tempDir)
	defer os.Unsetenv("HOME")
	os.Setenv("SUDO_USER", "")
	defer os.Unsetenv("SUDO_USER")

	store, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	expected := filepath.Join(tempDir, ".config", "anirename", "plans")
	if store.Dir() != expected {
		t.Errorf("expected %s, got %s", expected, store.Dir())
	}
}
