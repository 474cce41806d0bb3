// Package naming implements filename parsing, sanitization, and
// template-driven episode filename construction.
package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownSeries is the placeholder used when a pattern captures no usable
// series name. The catalog's series name always supersedes the guess, so
// this value is never written to disk.
const UnknownSeries = "Unknown Series"

// Pattern identifiers reported in ParsedFilename.Pattern.
const (
	PatternHash            = "hash"
	PatternSeasonEpisode   = "season-episode"
	PatternNumberDashTitle = "number-dash-title"
	PatternTitleDashNumber = "title-dash-number"
	PatternEpisodeKeyword  = "episode-keyword"
	PatternTrailingNumber  = "trailing-number"
	PatternSpecial         = "special"
	PatternBracketedNumber = "bracketed-number"
)

// ParsedFilename is the structured result of parsing one release filename.
// Episode is always >= 1; a parse either fully succeeds or reports no match.
type ParsedFilename struct {
	SeriesGuess string
	Season      int
	Episode     int
	Pattern     string
}

// patternRule pairs a compiled expression with a constructor that knows,
// statically, which fields its captures produce. Rules never infer shape
// from how many groups happened to match.
type patternRule struct {
	id    string
	re    *regexp.Regexp
	build func(m []string) (ParsedFilename, bool)
}

var (
	hashRegex           = regexp.MustCompile(`^#(\d{1,4})\b`)
	seasonEpisodeRegex  = regexp.MustCompile(`(?i)^(?:(.+?)[ ._-]+)?s(\d{1,2})[ ._]?e(\d{1,4})\b`)
	seasonXEpisodeRegex = regexp.MustCompile(`(?i)^(?:(.+?)[ ._-]+)?\b(\d{1,2})x(\d{1,4})\b`)
	numberDashRegex     = regexp.MustCompile(`^(\d{1,4})\s*-\s*\S.*$`)
	titleDashRegex      = regexp.MustCompile(`^(.+?)\s*-\s*(\d{1,4})(?:[ ._]*[\[(].*)?$`)
	episodeKeywordRegex = regexp.MustCompile(`(?i)^(.+?)[ ._]+(?:episode|ep\.?|e)[ ._]*(\d{1,4})\b`)
	titleNumberRegex    = regexp.MustCompile(`^(.+?)[ ._]+(\d{1,4})(?:[ ._]*[\[(].*)?$`)
	bareNumberRegex     = regexp.MustCompile(`^(\d{1,4})$`)
	subEpisodeRegex     = regexp.MustCompile(`^(\d{1,4})[A-Za-z]$`)
	specialRegex        = regexp.MustCompile(`(?i)^(.*?)[ ._-]*\b(?:ova|oad|special)s?\b[ ._-]*(\d{1,4})?`)
	bracketNumberRegex  = regexp.MustCompile(`^(.+?)[ ._]*([\[(])(\d{1,4})[\])]`)

	bracketGroupRegexps = []*regexp.Regexp{
		regexp.MustCompile(`\[[^\]]*\]`),
		regexp.MustCompile(`\([^)]*\)`),
		regexp.MustCompile(`【[^】]*】`),
		regexp.MustCompile(`『[^』]*』`),
		regexp.MustCompile(`「[^」]*」`),
	}
	separatorRunRegex = regexp.MustCompile(`[._\s]+`)
	ordinalFixRegex   = regexp.MustCompile(`\b(\d+)(St|Nd|Rd|Th)\b`)
)

// patternRules is tried in priority order; the first rule whose expression
// matches and whose constructor accepts the captures wins outright.
var patternRules []patternRule

func init() {
	patternRules = []patternRule{
		{PatternHash, hashRegex, func(m []string) (ParsedFilename, bool) {
			return episodeOnly(m[1])
		}},
		{PatternSeasonEpisode, seasonEpisodeRegex, func(m []string) (ParsedFilename, bool) {
			return seriesSeasonEpisode(m[1], m[2], m[3])
		}},
		{PatternSeasonEpisode, seasonXEpisodeRegex, func(m []string) (ParsedFilename, bool) {
			return seriesSeasonEpisode(m[1], m[2], m[3])
		}},
		{PatternNumberDashTitle, numberDashRegex, func(m []string) (ParsedFilename, bool) {
			// A purely numeric leading token is always the episode number,
			// never a series name that happens to start with digits.
			return episodeOnly(m[1])
		}},
		{PatternTitleDashNumber, titleDashRegex, func(m []string) (ParsedFilename, bool) {
			return seriesEpisode(m[1], m[2], true)
		}},
		{PatternEpisodeKeyword, episodeKeywordRegex, func(m []string) (ParsedFilename, bool) {
			return seriesEpisode(m[1], m[2], false)
		}},
		{PatternTrailingNumber, titleNumberRegex, func(m []string) (ParsedFilename, bool) {
			return seriesEpisode(m[1], m[2], true)
		}},
		{PatternTrailingNumber, bareNumberRegex, func(m []string) (ParsedFilename, bool) {
			return episodeOnlyGuarded(m[1])
		}},
		{PatternTrailingNumber, subEpisodeRegex, func(m []string) (ParsedFilename, bool) {
			// Sub-episode letters (13a, 13b) collapse to the numeric part.
			return episodeOnlyGuarded(m[1])
		}},
		{PatternSpecial, specialRegex, func(m []string) (ParsedFilename, bool) {
			return specialEpisode(m[1], m[2])
		}},
		{PatternBracketedNumber, bracketNumberRegex, func(m []string) (ParsedFilename, bool) {
			if m[2] == "(" && looksLikeYear(m[3]) {
				return ParsedFilename{}, false
			}
			return seriesEpisode(m[1], m[3], false)
		}},
	}
}

// Parse extracts series/season/episode information from a single filename.
// Patterns run in a fixed priority order and the first match wins; there is
// no scoring or backtracking across rules. Returns false when nothing fires.
func Parse(fileName string) (ParsedFilename, bool) {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	base = strings.TrimSpace(base)
	if base == "" {
		return ParsedFilename{}, false
	}

	for _, rule := range patternRules {
		m := rule.re.FindStringSubmatch(base)
		if m == nil {
			continue
		}
		parsed, ok := rule.build(m)
		if !ok {
			continue
		}
		parsed.Pattern = rule.id
		return parsed, true
	}

	return ParsedFilename{}, false
}

func episodeOnly(digits string) (ParsedFilename, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return ParsedFilename{}, false
	}
	return ParsedFilename{SeriesGuess: UnknownSeries, Season: 1, Episode: n}, true
}

// episodeOnlyGuarded rejects year-like numbers; a bare 1900-2099 is far more
// likely a year than an episode.
func episodeOnlyGuarded(digits string) (ParsedFilename, bool) {
	if looksLikeYear(digits) {
		return ParsedFilename{}, false
	}
	return episodeOnly(digits)
}

func seriesSeasonEpisode(series, season, episode string) (ParsedFilename, bool) {
	e, err := strconv.Atoi(episode)
	if err != nil || e < 1 {
		return ParsedFilename{}, false
	}
	s, err := strconv.Atoi(season)
	if err != nil || s < 0 {
		return ParsedFilename{}, false
	}
	return ParsedFilename{SeriesGuess: cleanSeriesGuess(series), Season: s, Episode: e}, true
}

func seriesEpisode(series, episode string, yearGuard bool) (ParsedFilename, bool) {
	if yearGuard && looksLikeYear(episode) {
		return ParsedFilename{}, false
	}
	e, err := strconv.Atoi(episode)
	if err != nil || e < 1 {
		return ParsedFilename{}, false
	}
	return ParsedFilename{SeriesGuess: cleanSeriesGuess(series), Season: 1, Episode: e}, true
}

// specialEpisode handles OVA/OAD/Special markers. Season 0 is the specials
// convention; a missing number defaults to episode 1, never 0.
func specialEpisode(series, digits string) (ParsedFilename, bool) {
	e := 1
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			return ParsedFilename{}, false
		}
		e = n
	}
	return ParsedFilename{SeriesGuess: cleanSeriesGuess(series), Season: 0, Episode: e}, true
}

func looksLikeYear(digits string) bool {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return false
	}
	return n >= 1900 && n <= 2099
}

// cleanSeriesGuess normalizes a captured series-name candidate: bracket
// groups (including the paired Japanese styles) are stripped, separator runs
// collapse to single spaces, and the result is title-cased.
func cleanSeriesGuess(raw string) string {
	s := raw
	for _, re := range bracketGroupRegexps {
		s = re.ReplaceAllString(s, " ")
	}
	s = separatorRunRegex.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "-")
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownSeries
	}
	return titleCase(s)
}

// titleCase applies English title casing and repairs ordinal suffixes the
// caser uppercases (1St -> 1st).
func titleCase(s string) string {
	s = cases.Title(language.English).String(s)
	return ordinalFixRegex.ReplaceAllStringFunc(s, strings.ToLower)
}
