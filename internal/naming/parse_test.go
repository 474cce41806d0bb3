package naming

import (
	"testing"
)

func TestParsePatternPriority(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     ParsedFilename
		wantOK   bool
	}{
		// Hash-prefixed episode numbers
		{
			name:     "hash episode with title",
			filename: "#02. Title.mkv",
			want:     ParsedFilename{SeriesGuess: UnknownSeries, Season: 1, Episode: 2, Pattern: PatternHash},
			wantOK:   true,
		},
		{
			name:     "hash episode bare",
			filename: "#113.mkv",
			want:     ParsedFilename{SeriesGuess: UnknownSeries, Season: 1, Episode: 113, Pattern: PatternHash},
			wantOK:   true,
		},

		// Explicit season/episode markers
		{
			name:     "SxxEyy without series",
			filename: "S01E05 Title.mkv",
			want:     ParsedFilename{SeriesGuess: UnknownSeries, Season: 1, Episode: 5, Pattern: PatternSeasonEpisode},
			wantOK:   true,
		},
		{
			name:     "SxxEyy with series prefix",
			filename: "Show Name S02E07.mkv",
			want:     ParsedFilename{SeriesGuess: "Show Name", Season: 2, Episode: 7, Pattern: PatternSeasonEpisode},
			wantOK:   true,
		},
		{
			name:     "SxxEyy with release group bracket",
			filename: "[Judas] Mushoku Tensei S02E11.mkv",
			want:     ParsedFilename{SeriesGuess: "Mushoku Tensei", Season: 2, Episode: 11, Pattern: PatternSeasonEpisode},
			wantOK:   true,
		},
		{
			name:     "explicit season zero",
			filename: "Show.S00E03.mkv",
			want:     ParsedFilename{SeriesGuess: "Show", Season: 0, Episode: 3, Pattern: PatternSeasonEpisode},
			wantOK:   true,
		},
		{
			name:     "NxM form",
			filename: "Show.1x05.Title.mkv",
			want:     ParsedFilename{SeriesGuess: "Show", Season: 1, Episode: 5, Pattern: PatternSeasonEpisode},
			wantOK:   true,
		},
		{
			name:     "ordinal in series name survives title casing",
			filename: "classroom of the elite 3rd season S03E01.mkv",
			want:     ParsedFilename{SeriesGuess: "Classroom Of The Elite 3rd Season", Season: 3, Episode: 1, Pattern: PatternSeasonEpisode},
			wantOK:   true,
		},

		// Leading number, dash, title
		{
			name:     "number dash title",
			filename: "10 - Final Battle.mkv",
			want:     ParsedFilename{SeriesGuess: UnknownSeries, Season: 1, Episode: 10, Pattern: PatternNumberDashTitle},
			wantOK:   true,
		},

		// Title, dash, trailing number
		{
			name:     "title dash number",
			filename: "Show - 05.mkv",
			want:     ParsedFilename{SeriesGuess: "Show", Season: 1, Episode: 5, Pattern: PatternTitleDashNumber},
			wantOK:   true,
		},
		{
			name:     "title dash number with quality tail",
			filename: "Show - 05 [1080p].mkv",
			want:     ParsedFilename{SeriesGuess: "Show", Season: 1, Episode: 5, Pattern: PatternTitleDashNumber},
			wantOK:   true,
		},
		{
			name:     "fansub release with group and hash tail",
			filename: "[SubsPlease] Frieren - 28 (1080p) [F02B9CEE].mkv",
			want:     ParsedFilename{SeriesGuess: "Frieren", Season: 1, Episode: 28, Pattern: PatternTitleDashNumber},
			wantOK:   true,
		},

		// Episode keyword
		{
			name:     "episode keyword full word",
			filename: "Show Episode 12.mkv",
			want:     ParsedFilename{SeriesGuess: "Show", Season: 1, Episode: 12, Pattern: PatternEpisodeKeyword},
			wantOK:   true,
		},
		{
			name:     "episode keyword ep abbreviation",
			filename: "Show ep12.mkv",
			want:     ParsedFilename{SeriesGuess: "Show", Season: 1, Episode: 12, Pattern: PatternEpisodeKeyword},
			wantOK:   true,
		},

		// Trailing number
		{
			name:     "title trailing number",
			filename: "Witch Hat Atelier 03.mkv",
			want:     ParsedFilename{SeriesGuess: "Witch Hat Atelier", Season: 1, Episode: 3, Pattern: PatternTrailingNumber},
			wantOK:   true,
		},
		{
			name:     "bare number",
			filename: "05.mkv",
			want:     ParsedFilename{SeriesGuess: UnknownSeries, Season: 1, Episode: 5, Pattern: PatternTrailingNumber},
			wantOK:   true,
		},
		{
			name:     "sub-episode letter collapses to number",
			filename: "13a.mkv",
			want:     ParsedFilename{SeriesGuess: UnknownSeries, Season: 1, Episode: 13, Pattern: PatternTrailingNumber},
			wantOK:   true,
		},
		{
			name:     "trailing number beats special marker",
			filename: "Show Special 3.mkv",
			want:     ParsedFilename{SeriesGuess: "Show Special", Season: 1, Episode: 3, Pattern: PatternTrailingNumber},
			wantOK:   true,
		},

		// Special markers without a usable number
		{
			name:     "ova marker maps to season zero",
			filename: "Show.OVA.mkv",
			want:     ParsedFilename{SeriesGuess: "Show", Season: 0, Episode: 1, Pattern: PatternSpecial},
			wantOK:   true,
		},
		{
			name:     "oad marker maps to season zero",
			filename: "Show OAD.mkv",
			want:     ParsedFilename{SeriesGuess: "Show", Season: 0, Episode: 1, Pattern: PatternSpecial},
			wantOK:   true,
		},

		// Bracketed episode numbers
		{
			name:     "bracketed episode number",
			filename: "Show [05].mkv",
			want:     ParsedFilename{SeriesGuess: "Show", Season: 1, Episode: 5, Pattern: PatternBracketedNumber},
			wantOK:   true,
		},

		// Year guards and failures
		{
			name:     "trailing year is not an episode",
			filename: "Show 2024.mkv",
			wantOK:   false,
		},
		{
			name:     "dashed year is not an episode",
			filename: "Show - 1999.mkv",
			wantOK:   false,
		},
		{
			name:     "parenthesized year is not an episode",
			filename: "Show (2020).mkv",
			wantOK:   false,
		},
		{
			name:     "bare year is not an episode",
			filename: "2024.mkv",
			wantOK:   false,
		},
		{
			name:     "episode zero never parses",
			filename: "Show - 00.mkv",
			wantOK:   false,
		},
		{
			name:     "no pattern at all",
			filename: "completely-unparseable-name.txt",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.filename)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.filename, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestParseStripsDirectoryAndExtension(t *testing.T) {
	got, ok := Parse("/downloads/Show/Season 01/Show.S01E05.Alpha.mkv")
	if !ok {
		t.Fatal("expected a parse from a full path")
	}
	if got.Season != 1 || got.Episode != 5 {
		t.Errorf("got S%02dE%02d, want S01E05", got.Season, got.Episode)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	// The same input must always select the same rule and captures.
	for i := 0; i < 5; i++ {
		got, ok := Parse("Show - 05 [1080p].mkv")
		if !ok || got.Pattern != PatternTitleDashNumber || got.Episode != 5 {
			t.Fatalf("run %d: got %+v ok=%v", i, got, ok)
		}
	}
}
