package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/anirename/internal/naming"
	"github.com/Nomadcxx/anirename/internal/ui"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <filename>...",
		Short: "Show how filenames are parsed",
		Long: `Run the filename parser over the given names and print what each one
yields: the matching pattern, the series guess, and the season/episode
numbers. Useful for checking how a release will be matched before
planning.

Examples:
  anirename parse "[SubsPlease] Frieren - 05 (1080p).mkv"
  anirename parse "01 - Winter's End.mkv" "Frieren S01E02.mkv"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	var unmatched int

	for i, name := range args {
		if i > 0 {
			fmt.Println()
		}

		parsed, ok := naming.Parse(name)
		if !ok {
			fmt.Printf("%s %s\n", ui.Error("✗"), name)
			fmt.Println("  no pattern matched")
			unmatched++
			continue
		}

		fmt.Printf("%s %s\n", ui.Success("✓"), name)
		fmt.Printf("  pattern:  %s\n", parsed.Pattern)
		fmt.Printf("  series:   %s\n", describeSeriesGuess(parsed.SeriesGuess))
		fmt.Printf("  season:   %d\n", parsed.Season)
		fmt.Printf("  episode:  %d\n", parsed.Episode)
	}

	if unmatched > 0 {
		return fmt.Errorf("%d of %d name(s) did not parse", unmatched, len(args))
	}
	return nil
}

// describeSeriesGuess shows the guess alongside its sanitized form. The
// guess is diagnostic only; the catalog name is what ends up on disk.
func describeSeriesGuess(guess string) string {
	if guess == naming.UnknownSeries {
		return ui.Dim("(none)")
	}
	sanitized := naming.Sanitize(guess)
	if sanitized == guess {
		return guess
	}
	return fmt.Sprintf("%s %s", guess, ui.Dim("(as filename: "+sanitized+")"))
}
