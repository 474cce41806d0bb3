package analyzer

import (
	"github.com/Nomadcxx/anirename/internal/catalog"
	"github.com/Nomadcxx/anirename/internal/naming"
)

// Resolve selects the catalog episode a parsed filename refers to.
//
// Candidates are all episodes sharing the parsed episode number. A single
// candidate wins regardless of season. Among multiple candidates, files
// from special-content folders prefer the season 0 record, regular files
// prefer the record matching the parsed season, and both fall back to the
// first candidate in catalog order rather than failing: a season mismatch
// is recoverable, a non-match is not. The second return reports that
// fallback so callers can warn.
func Resolve(parsed naming.ParsedFilename, special bool, episodes []catalog.EpisodeRecord) (catalog.EpisodeRecord, bool, bool) {
	var candidates []catalog.EpisodeRecord
	for _, ep := range episodes {
		if ep.Number == parsed.Episode {
			candidates = append(candidates, ep)
		}
	}
	if len(candidates) == 0 {
		return catalog.EpisodeRecord{}, false, false
	}
	if len(candidates) == 1 {
		return candidates[0], false, true
	}

	if special {
		for _, c := range candidates {
			if c.Season == 0 {
				return c, false, true
			}
		}
		return candidates[0], false, true
	}

	for _, c := range candidates {
		if c.Season == parsed.Season {
			return c, false, true
		}
	}
	return candidates[0], true, true
}
