// Package planner composes analysis results into an ordered, validated
// list of filesystem operations.
package planner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Nomadcxx/anirename/internal/analyzer"
	"github.com/Nomadcxx/anirename/internal/catalog"
	"github.com/Nomadcxx/anirename/internal/logging"
	"github.com/Nomadcxx/anirename/internal/naming"
	"github.com/Nomadcxx/anirename/internal/scanner"
	"github.com/Nomadcxx/anirename/internal/versioning"
)

// Kind identifies the type of a planned operation
type Kind string

const (
	// KindSkip marks a file that is already correct and untouched
	KindSkip Kind = "skip"
	// KindRename renames a file within its current directory
	KindRename Kind = "rename"
	// KindMove renames a file into a different directory
	KindMove Kind = "move"
	// KindTempRename parks a duplicate under a throwaway name
	KindTempRename Kind = "temp_rename"
	// KindVersionedRename gives a duplicate its final versioned name
	KindVersionedRename Kind = "versioned_rename"
)

// Operation represents a single planned filesystem action
type Operation struct {
	Kind      Kind          `json:"kind"`
	Source    string        `json:"source"`
	TargetDir string        `json:"target_dir"`
	NewName   string        `json:"new_name"`
	Slot      analyzer.Slot `json:"slot"`
	Version   int           `json:"version,omitempty"`
	Size      int64         `json:"size,omitempty"`
}

// TargetPath returns the full path the operation produces
func (o Operation) TargetPath() string {
	return filepath.Join(o.TargetDir, o.NewName)
}

// Stats contains summary counts for a plan
type Stats struct {
	Files          int   `json:"files"`
	Skips          int   `json:"skips"`
	Renames        int   `json:"renames"`
	Moves          int   `json:"moves"`
	Versioned      int   `json:"versioned"`
	DuplicateSlots int   `json:"duplicate_slots"`
	Unparsed       int   `json:"unparsed"`
	Unresolved     int   `json:"unresolved"`
	BytesTouched   int64 `json:"bytes_touched"`
}

// Plan represents the full set of operations for one library root
type Plan struct {
	Series     catalog.SeriesInfo `json:"series"`
	Root       string             `json:"root"`
	CreatedAt  time.Time          `json:"created_at"`
	Operations []Operation        `json:"operations"`
	Stats      Stats              `json:"stats"`
}

// Options controls how the builder lays out target paths
type Options struct {
	// Reorganize moves files into season folders under the root instead
	// of renaming them in place.
	Reorganize bool
	// Mode selects the duplicate versioning strategy.
	Mode versioning.Mode
}

// ErrTargetCollision indicates two operations produce the same target path
var ErrTargetCollision = errors.New("duplicate target path in plan")

// Builder turns analysis results into plans
type Builder struct {
	formatter naming.Formatter
	log       *logging.Logger
}

// New creates a Builder using the given filename formatter
func New(formatter naming.Formatter, log *logging.Logger) *Builder {
	if log == nil {
		log = logging.Nop()
	}
	return &Builder{formatter: formatter, log: log}
}

// Build composes a plan from an analysis result. Operations are emitted
// in a deterministic order: settled files first, then plain renames,
// then duplicate groups slot by slot with temporary hops ahead of final
// names. The plan is validated before it is returned; a target collision
// fails the whole plan.
func (b *Builder) Build(root string, series catalog.SeriesInfo, result analyzer.Result, opts Options) (*Plan, error) {
	batch := batchPaths(result)

	var ops []Operation
	for _, state := range result.Skip {
		ops = append(ops, b.settledOp(root, state, opts))
	}
	for _, state := range result.Rename {
		ops = append(ops, b.renameOp(root, state, opts))
	}
	for _, slot := range sortedSlots(result.Duplicates) {
		group := result.Duplicates[slot]
		ops = append(ops, b.versionedOps(root, series.Name, slot, group, batch, opts)...)
	}

	if err := Validate(ops); err != nil {
		b.log.Error("planner", "plan validation failed", err)
		return nil, err
	}

	stats := buildStats(result, ops)
	b.log.Info("planner", "plan built",
		logging.F("operations", len(ops)),
		logging.F("skips", stats.Skips),
		logging.F("renames", stats.Renames),
		logging.F("moves", stats.Moves),
		logging.F("versioned", stats.Versioned))

	return &Plan{
		Series:     series,
		Root:       root,
		CreatedAt:  time.Now(),
		Operations: ops,
		Stats:      stats,
	}, nil
}

// Validate checks that every operation is complete and that no two
// operations share a target path.
func Validate(ops []Operation) error {
	seen := make(map[string]Kind, len(ops))
	for _, op := range ops {
		if op.Source == "" || op.TargetDir == "" || op.NewName == "" {
			return fmt.Errorf("incomplete operation: kind=%s source=%q target=%q", op.Kind, op.Source, op.TargetPath())
		}
		target := op.TargetPath()
		if prev, ok := seen[target]; ok {
			return fmt.Errorf("%w: %s claimed by %s and %s operations", ErrTargetCollision, target, prev, op.Kind)
		}
		seen[target] = op.Kind
	}
	return nil
}

// settledOp handles files whose names are already correct. They stay
// untouched unless reorganization wants them in a different directory.
func (b *Builder) settledOp(root string, state analyzer.FileState, opts Options) Operation {
	file := state.File
	dir := b.targetDir(root, state.Slot.Season, file, opts)
	kind := KindSkip
	if dir != filepath.Dir(file.Path) {
		kind = KindMove
	}
	return Operation{
		Kind:      kind,
		Source:    file.Path,
		TargetDir: dir,
		NewName:   file.Name,
		Slot:      state.Slot,
		Size:      file.Size,
	}
}

func (b *Builder) renameOp(root string, state analyzer.FileState, opts Options) Operation {
	file := state.File
	dir := b.targetDir(root, state.Slot.Season, file, opts)
	kind := KindRename
	if dir != filepath.Dir(file.Path) {
		kind = KindMove
	}
	return Operation{
		Kind:      kind,
		Source:    file.Path,
		TargetDir: dir,
		NewName:   state.TargetName,
		Slot:      state.Slot,
		Size:      file.Size,
	}
}

// versionedOps expands one duplicate group into operations. Temporary
// hops happen inside the source directory; the final rename carries the
// file into its target directory.
func (b *Builder) versionedOps(root, seriesName string, slot analyzer.Slot, group []analyzer.FileState, batch map[string]bool, opts Options) []Operation {
	existing := b.existingNames(root, slot, group, batch, opts)
	assignments := versioning.Assign(group, b.formatter, seriesName, existing, opts.Mode)

	var ops []Operation
	var finals []Operation
	for _, a := range assignments {
		file := a.State.File
		dir := b.targetDir(root, slot.Season, file, opts)
		if a.Skip {
			kind := KindSkip
			if dir != filepath.Dir(file.Path) {
				kind = KindMove
			}
			ops = append(ops, Operation{
				Kind:      kind,
				Source:    file.Path,
				TargetDir: dir,
				NewName:   a.FinalName,
				Slot:      slot,
				Version:   a.Version,
				Size:      file.Size,
			})
			continue
		}

		source := file.Path
		if a.TempName != "" {
			srcDir := filepath.Dir(file.Path)
			ops = append(ops, Operation{
				Kind:      KindTempRename,
				Source:    file.Path,
				TargetDir: srcDir,
				NewName:   a.TempName,
				Slot:      slot,
				Size:      file.Size,
			})
			source = filepath.Join(srcDir, a.TempName)
		}
		finals = append(finals, Operation{
			Kind:      KindVersionedRename,
			Source:    source,
			TargetDir: dir,
			NewName:   a.FinalName,
			Slot:      slot,
			Version:   a.Version,
			Size:      file.Size,
		})
	}
	return append(ops, finals...)
}

// existingNames lists files already present in the group's target
// directories, excluding files that belong to the current batch. These
// names feed the version counter so numbers are never reissued.
func (b *Builder) existingNames(root string, slot analyzer.Slot, group []analyzer.FileState, batch map[string]bool, opts Options) []string {
	dirs := make(map[string]bool)
	for _, state := range group {
		dirs[b.targetDir(root, slot.Season, state.File, opts)] = true
	}

	var names []string
	for dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// target directory may not exist yet
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if batch[filepath.Join(dir, entry.Name())] {
				continue
			}
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (b *Builder) targetDir(root string, season int, file scanner.DiscoveredFile, opts Options) string {
	if !opts.Reorganize {
		return filepath.Dir(file.Path)
	}
	return filepath.Join(root, naming.SeasonFolder(season))
}

func batchPaths(result analyzer.Result) map[string]bool {
	paths := make(map[string]bool)
	for _, state := range result.Skip {
		paths[state.File.Path] = true
	}
	for _, state := range result.Rename {
		paths[state.File.Path] = true
	}
	for _, group := range result.Duplicates {
		for _, state := range group {
			paths[state.File.Path] = true
		}
	}
	return paths
}

func sortedSlots(groups map[analyzer.Slot][]analyzer.FileState) []analyzer.Slot {
	slots := make([]analyzer.Slot, 0, len(groups))
	for slot := range groups {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Season != slots[j].Season {
			return slots[i].Season < slots[j].Season
		}
		return slots[i].Episode < slots[j].Episode
	})
	return slots
}

func buildStats(result analyzer.Result, ops []Operation) Stats {
	stats := Stats{
		DuplicateSlots: len(result.Duplicates),
		Unparsed:       len(result.Unparsed),
		Unresolved:     len(result.Unresolved),
	}
	stats.Files = len(result.Skip) + len(result.Rename) + len(result.Unparsed) + len(result.Unresolved)
	for _, group := range result.Duplicates {
		stats.Files += len(group)
	}
	for _, op := range ops {
		switch op.Kind {
		case KindSkip:
			stats.Skips++
		case KindRename:
			stats.Renames++
			stats.BytesTouched += op.Size
		case KindMove:
			stats.Moves++
			stats.BytesTouched += op.Size
		case KindVersionedRename:
			stats.Versioned++
			stats.BytesTouched += op.Size
		}
	}
	return stats
}
