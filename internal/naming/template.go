package naming

import (
	"fmt"
	"regexp"
	"strconv"
)

// Default templates. Specials always render under season zero so that
// media servers group them into the Specials folder.
const (
	DefaultRegularTemplate = "{series}.S{season:02}E{episode:02}.{title}"
	DefaultSpecialTemplate = "{series}.S00E{episode:02}.{title}"
)

var (
	placeholderRegex  = regexp.MustCompile(`\{(\w+)(?::(\d+))?\}`)
	episodeTokenRegex = regexp.MustCompile(`(?i)\bS\d+E\d+\b`)
)

// Formatter renders target filenames from naming templates. Placeholders
// take the form {name} or {name:width}; integer values are zero padded to
// the requested width. Unknown placeholders pass through untouched so a
// typo in a template is visible in the output instead of silently eaten.
type Formatter struct {
	Regular string
	Special string
}

// NewFormatter returns a Formatter using the given templates, falling back
// to the defaults for any empty template.
func NewFormatter(regular, special string) Formatter {
	if regular == "" {
		regular = DefaultRegularTemplate
	}
	if special == "" {
		special = DefaultSpecialTemplate
	}
	return Formatter{Regular: regular, Special: special}
}

// Format renders the canonical filename for an episode. Season zero
// selects the special template. The extension is appended as given.
func (f Formatter) Format(series string, season, episode int, title, ext string) string {
	return f.stem(series, season, episode, title) + ext
}

// FormatVersion renders a versioned filename. Version one is the canonical
// name and carries no suffix; higher versions insert a ".vN" tag after the
// episode token.
func (f Formatter) FormatVersion(series string, season, episode int, title, ext string, version int) string {
	stem := f.stem(series, season, episode, title)
	if version > 1 {
		stem = insertTag(stem, fmt.Sprintf(".v%d", version))
	}
	return stem + ext
}

// FormatTemp renders the intermediate ".zK" name used while a group of
// duplicates is renamed in two phases.
func (f Formatter) FormatTemp(series string, season, episode int, title, ext string, key int) string {
	return insertTag(f.stem(series, season, episode, title), fmt.Sprintf(".z%d", key)) + ext
}

func (f Formatter) stem(series string, season, episode int, title string) string {
	tpl := f.Regular
	if season == 0 {
		tpl = f.Special
	}
	rendered := renderTemplate(tpl, map[string]interface{}{
		"series":  series,
		"season":  season,
		"episode": episode,
		"title":   title,
	})
	return Sanitize(rendered)
}

func renderTemplate(tpl string, values map[string]interface{}) string {
	return placeholderRegex.ReplaceAllStringFunc(tpl, func(m string) string {
		parts := placeholderRegex.FindStringSubmatch(m)
		value, ok := values[parts[1]]
		if !ok {
			return m
		}
		switch v := value.(type) {
		case int:
			width := 2
			if parts[2] != "" {
				if w, err := strconv.Atoi(parts[2]); err == nil {
					width = w
				}
			}
			return fmt.Sprintf("%0*d", width, v)
		case string:
			return v
		}
		return m
	})
}

// insertTag places a version or temp tag directly after the SxxEyy token
// so the tag sorts with the episode rather than with the title. Templates
// without an episode token get the tag at the end of the stem.
func insertTag(stem, tag string) string {
	if loc := episodeTokenRegex.FindStringIndex(stem); loc != nil {
		return stem[:loc[1]] + tag + stem[loc[1]:]
	}
	return stem + tag
}

// SeasonFolder returns the library folder name for a season number.
func SeasonFolder(season int) string {
	if season == 0 {
		return "Specials"
	}
	return fmt.Sprintf("Season %02d", season)
}
