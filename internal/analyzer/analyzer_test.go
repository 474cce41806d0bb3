package analyzer

import (
	"path/filepath"
	"testing"

	"github.com/Nomadcxx/anirename/internal/catalog"
	"github.com/Nomadcxx/anirename/internal/naming"
	"github.com/Nomadcxx/anirename/internal/scanner"
)

func discovered(name string, special bool) scanner.DiscoveredFile {
	return scanner.DiscoveredFile{
		Path:    filepath.Join("/library/Show", name),
		Name:    name,
		Ext:     filepath.Ext(name),
		RelDir:  ".",
		Special: special,
	}
}

var testEpisodes = []catalog.EpisodeRecord{
	{ID: 1, Number: 1, Season: 1, Title: "Alpha"},
	{ID: 2, Number: 2, Season: 1, Title: "Beta"},
	{ID: 3, Number: 5, Season: 0, Title: "Omake"},
	{ID: 4, Number: 5, Season: 1, Title: "Epsilon"},
}

func TestAnalyzeSkipAndRename(t *testing.T) {
	a := New(naming.NewFormatter("", ""), nil)

	files := []scanner.DiscoveredFile{
		discovered("Show.S01E01.Alpha.mkv", false),
		discovered("02 - Anything.mkv", false),
	}

	result := a.Analyze(files, testEpisodes, "Show")

	if len(result.Skip) != 1 {
		t.Fatalf("expected 1 skip, got %d", len(result.Skip))
	}
	if !result.Skip[0].AlreadyCorrect || result.Skip[0].File.Name != "Show.S01E01.Alpha.mkv" {
		t.Errorf("unexpected skip state: %+v", result.Skip[0])
	}

	if len(result.Rename) != 1 {
		t.Fatalf("expected 1 rename, got %d", len(result.Rename))
	}
	rename := result.Rename[0]
	if rename.TargetName != "Show.S01E02.Beta.mkv" {
		t.Errorf("rename target = %q, want %q", rename.TargetName, "Show.S01E02.Beta.mkv")
	}
	if rename.Slot != (Slot{Season: 1, Episode: 2}) {
		t.Errorf("rename slot = %v, want S01E02", rename.Slot)
	}

	if len(result.Duplicates) != 0 || len(result.Unparsed) != 0 || len(result.Unresolved) != 0 {
		t.Errorf("unexpected extra buckets: %+v", result)
	}
}

func TestAnalyzeGroupsDuplicatesBySlot(t *testing.T) {
	a := New(naming.NewFormatter("", ""), nil)

	files := []scanner.DiscoveredFile{
		discovered("Show.S01E01.Alpha.mkv", false),
		discovered("01 - Alternative Cut.mkv", false),
	}

	result := a.Analyze(files, testEpisodes, "Show")

	if len(result.Skip) != 0 || len(result.Rename) != 0 {
		t.Errorf("duplicate slot leaked into skip/rename: %+v", result)
	}
	group, ok := result.Duplicates[Slot{Season: 1, Episode: 1}]
	if !ok {
		t.Fatal("expected duplicate group for S01E01")
	}
	if len(group) != 2 {
		t.Errorf("expected 2 members in duplicate group, got %d", len(group))
	}
}

func TestAnalyzeReportsUnparsedAndUnresolved(t *testing.T) {
	a := New(naming.NewFormatter("", ""), nil)

	files := []scanner.DiscoveredFile{
		discovered("no-numbers-here.mkv", false),
		discovered("Show - 99.mkv", false),
		discovered("Show.S01E01.Alpha.mkv", false),
	}

	result := a.Analyze(files, testEpisodes, "Show")

	if len(result.Unparsed) != 1 || result.Unparsed[0].Name != "no-numbers-here.mkv" {
		t.Errorf("unexpected unparsed bucket: %+v", result.Unparsed)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0].Name != "Show - 99.mkv" {
		t.Errorf("unexpected unresolved bucket: %+v", result.Unresolved)
	}
	// The parseable, resolvable file still goes through.
	if len(result.Skip) != 1 {
		t.Errorf("expected the correct file to be skipped, got %+v", result.Skip)
	}
}

func TestAnalyzeSpecialFolderSelectsSeasonZero(t *testing.T) {
	a := New(naming.NewFormatter("", ""), nil)

	t.Run("special folder", func(t *testing.T) {
		result := a.Analyze([]scanner.DiscoveredFile{discovered("05.mkv", true)}, testEpisodes, "Show")
		if len(result.Rename) != 1 {
			t.Fatalf("expected 1 rename, got %+v", result)
		}
		got := result.Rename[0]
		if got.Episode.ID != 3 {
			t.Errorf("resolved episode ID = %d, want 3 (season 0)", got.Episode.ID)
		}
		if got.TargetName != "Show.S00E05.Omake.mkv" {
			t.Errorf("target = %q, want special-template name", got.TargetName)
		}
	})

	t.Run("regular folder", func(t *testing.T) {
		result := a.Analyze([]scanner.DiscoveredFile{discovered("05.mkv", false)}, testEpisodes, "Show")
		if len(result.Rename) != 1 {
			t.Fatalf("expected 1 rename, got %+v", result)
		}
		got := result.Rename[0]
		if got.Episode.ID != 4 {
			t.Errorf("resolved episode ID = %d, want 4 (season 1)", got.Episode.ID)
		}
		if got.TargetName != "Show.S01E05.Epsilon.mkv" {
			t.Errorf("target = %q, want regular-template name", got.TargetName)
		}
	})
}

func TestAnalyzeSanitizesSeriesAndTitle(t *testing.T) {
	a := New(naming.NewFormatter("", ""), nil)

	episodes := []catalog.EpisodeRecord{
		{ID: 1, Number: 1, Season: 1, Title: "Who? Me"},
	}
	result := a.Analyze([]scanner.DiscoveredFile{discovered("01 - x.mkv", false)}, episodes, "My Show")

	if len(result.Rename) != 1 {
		t.Fatalf("expected 1 rename, got %+v", result)
	}
	if got := result.Rename[0].TargetName; got != "My.Show.S01E01.Who.Me.mkv" {
		t.Errorf("target = %q, want sanitized name", got)
	}
}

func TestSlotString(t *testing.T) {
	if got := (Slot{Season: 1, Episode: 5}).String(); got != "S01E05" {
		t.Errorf("Slot.String() = %q", got)
	}
	if got := (Slot{Season: 0, Episode: 12}).String(); got != "S00E12" {
		t.Errorf("Slot.String() = %q", got)
	}
}
