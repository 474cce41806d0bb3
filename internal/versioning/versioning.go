// Package versioning assigns deterministic version suffixes to duplicate
// files sharing one episode slot.
package versioning

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Nomadcxx/anirename/internal/analyzer"
	"github.com/Nomadcxx/anirename/internal/naming"
)

// Mode selects how duplicate groups reach their final names.
type Mode int

const (
	// Temporary renames every member to a throwaway .zK name first, then
	// to its final name. The hop guarantees no member's current name can
	// collide with another member's final name mid-batch.
	Temporary Mode = iota
	// Direct computes final names in one pass. Only safe when the caller
	// has verified no intra-batch collision is possible.
	Direct
)

func (m Mode) String() string {
	if m == Direct {
		return "direct"
	}
	return "temporary"
}

// ParseMode reads a mode from configuration. The empty string selects
// Temporary, the safe default.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "temporary", "temp":
		return Temporary, nil
	case "direct":
		return Direct, nil
	default:
		return Temporary, fmt.Errorf("unknown versioning mode %q", s)
	}
}

// versionTagRegex finds a .vN or .zN tag inside a filename stem, whether
// mid-stem or at its end.
var versionTagRegex = regexp.MustCompile(`(?i)\.[vz](\d{1,3})(\.|$)`)

// tempTagRegex finds only .zN temp tags, for the separate temp-key axis.
var tempTagRegex = regexp.MustCompile(`(?i)\.z(\d{1,3})(\.|$)`)

// Assignment is the versioning decision for one duplicate-group member.
type Assignment struct {
	State     analyzer.FileState
	Version   int
	TempName  string // intermediate .zK name, Temporary mode only
	FinalName string
	Skip      bool // already carries its final name
}

// Assign orders one duplicate group by original filename and gives each
// member a version number in that order. Version one receives the
// unsuffixed canonical name; later versions receive .vN tags. existing
// holds target-directory filenames from previous runs (current batch
// members excluded): version numbering continues above anything found
// there so a number is never reused.
func Assign(group []analyzer.FileState, formatter naming.Formatter, series string, existing []string, mode Mode) []Assignment {
	if len(group) == 0 {
		return nil
	}

	members := make([]analyzer.FileState, len(group))
	copy(members, group)
	sort.Slice(members, func(i, j int) bool {
		return members[i].File.Name < members[j].File.Name
	})

	slot := members[0].Slot
	canonicalStem := formatter.FormatVersion(series, slot.Season, slot.Episode, members[0].Episode.Title, "", 1)
	base := highestExisting(existing, canonicalStem)

	// Temp keys live on their own axis: a member may itself still carry a
	// .zK name from an interrupted run, so keys start above every .zK seen
	// in the directory or among the members' current names. Otherwise a
	// sibling's phase-one target can collide with that leftover.
	tempBase := 0
	if mode == Temporary {
		names := make([]string, 0, len(existing)+len(members))
		names = append(names, existing...)
		for _, m := range members {
			names = append(names, m.File.Name)
		}
		tempBase = highestTempKey(names, canonicalStem)
	}

	assignments := make([]Assignment, 0, len(members))
	for i, m := range members {
		version := base + i + 1
		final := formatter.FormatVersion(series, m.Slot.Season, m.Slot.Episode, m.Episode.Title, m.File.Ext, version)

		a := Assignment{State: m, Version: version, FinalName: final}
		if m.File.Name == final {
			a.Skip = true
		} else if mode == Temporary {
			a.TempName = formatter.FormatTemp(series, m.Slot.Season, m.Slot.Episode, m.Episode.Title, m.File.Ext, tempBase+i+1)
		}
		assignments = append(assignments, a)
	}
	return assignments
}

// highestExisting scans directory listings for names belonging to the same
// slot as canonicalStem and returns the highest version number present.
// The unsuffixed canonical name counts as version 1; stale .zK names from
// an interrupted run count like .vK so their numbers are never reissued.
func highestExisting(existing []string, canonicalStem string) int {
	highest := 0
	for _, name := range existing {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem == canonicalStem {
			if highest < 1 {
				highest = 1
			}
			continue
		}

		m := versionTagRegex.FindStringSubmatch(stem)
		if m == nil {
			continue
		}
		if versionTagRegex.ReplaceAllString(stem, "$2") != canonicalStem {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// highestTempKey returns the highest .zK key among names belonging to the
// same slot as canonicalStem, zero when none carries one.
func highestTempKey(names []string, canonicalStem string) int {
	highest := 0
	for _, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		m := tempTagRegex.FindStringSubmatch(stem)
		if m == nil {
			continue
		}
		if tempTagRegex.ReplaceAllString(stem, "$2") != canonicalStem {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}
