// Package analyzer matches discovered files against the catalog episode
// list and classifies them by the work each needs.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/Nomadcxx/anirename/internal/catalog"
	"github.com/Nomadcxx/anirename/internal/logging"
	"github.com/Nomadcxx/anirename/internal/naming"
	"github.com/Nomadcxx/anirename/internal/scanner"
)

// Slot is the (season, episode) position a file should occupy in the
// library. Files sharing a slot are duplicates of one another.
type Slot struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

func (s Slot) String() string {
	return fmt.Sprintf("S%02dE%02d", s.Season, s.Episode)
}

// FileState is one discovered file after parsing and resolution.
type FileState struct {
	File           scanner.DiscoveredFile
	Episode        catalog.EpisodeRecord
	Slot           Slot
	TargetName     string
	AlreadyCorrect bool
}

// Result buckets every discovered file. Unparsed and Unresolved files are
// reported but take no further part in planning.
type Result struct {
	Skip       []FileState
	Rename     []FileState
	Duplicates map[Slot][]FileState
	Unparsed   []scanner.DiscoveredFile
	Unresolved []scanner.DiscoveredFile
}

type Analyzer struct {
	formatter naming.Formatter
	log       *logging.Logger
}

func New(formatter naming.Formatter, log *logging.Logger) *Analyzer {
	if log == nil {
		log = logging.Nop()
	}
	return &Analyzer{formatter: formatter, log: log}
}

// Analyze parses and resolves each file, computes its canonical target
// name, and groups files by episode slot. Slots with one member land in
// Skip or Rename depending on whether the file already carries its target
// name; slots with several members land in Duplicates for versioning.
func (a *Analyzer) Analyze(files []scanner.DiscoveredFile, episodes []catalog.EpisodeRecord, seriesName string) Result {
	result := Result{Duplicates: make(map[Slot][]FileState)}
	groups := make(map[Slot][]FileState)

	for _, f := range files {
		parsed, ok := naming.Parse(f.Name)
		if !ok {
			a.log.Debug("analyzer", "no pattern matched", logging.F("file", f.Name))
			result.Unparsed = append(result.Unparsed, f)
			continue
		}

		episode, mismatch, ok := Resolve(parsed, f.Special, episodes)
		if !ok {
			a.log.Warn("analyzer", "no catalog episode for number",
				logging.F("file", f.Name), logging.F("episode", parsed.Episode))
			result.Unresolved = append(result.Unresolved, f)
			continue
		}
		if mismatch {
			a.log.Warn("analyzer", "season mismatch, using first catalog match",
				logging.F("file", f.Name),
				logging.F("parsed_season", parsed.Season),
				logging.F("resolved_season", episode.Season))
		}

		slot := Slot{Season: episode.Season, Episode: episode.Number}
		targetName := a.formatter.Format(seriesName, episode.Season, episode.Number, episode.Title, f.Ext)

		groups[slot] = append(groups[slot], FileState{
			File:           f,
			Episode:        episode,
			Slot:           slot,
			TargetName:     targetName,
			AlreadyCorrect: f.Name == targetName,
		})
	}

	slots := make([]Slot, 0, len(groups))
	for slot := range groups {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Season != slots[j].Season {
			return slots[i].Season < slots[j].Season
		}
		return slots[i].Episode < slots[j].Episode
	})

	for _, slot := range slots {
		members := groups[slot]
		if len(members) > 1 {
			result.Duplicates[slot] = members
			continue
		}
		state := members[0]
		if state.AlreadyCorrect {
			result.Skip = append(result.Skip, state)
		} else {
			result.Rename = append(result.Rename, state)
		}
	}

	a.log.Info("analyzer", "analysis complete",
		logging.F("skip", len(result.Skip)),
		logging.F("rename", len(result.Rename)),
		logging.F("duplicate_slots", len(result.Duplicates)),
		logging.F("unparsed", len(result.Unparsed)),
		logging.F("unresolved", len(result.Unresolved)))

	return result
}
