package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/anirename/internal/analyzer"
	"github.com/Nomadcxx/anirename/internal/config"
	"github.com/Nomadcxx/anirename/internal/logging"
	"github.com/Nomadcxx/anirename/internal/planner"
	"github.com/Nomadcxx/anirename/internal/planstore"
	"github.com/Nomadcxx/anirename/internal/scanner"
	"github.com/Nomadcxx/anirename/internal/tvdb"
	"github.com/Nomadcxx/anirename/internal/ui"
)

func newPlanCmd() *cobra.Command {
	var (
		seriesID   int64
		renameOnly bool
		noSpecials bool
		savePlan   bool
	)

	cmd := &cobra.Command{
		Use:   "plan <directory>",
		Short: "Preview the renames for a series directory",
		Long: `Scan a series directory, match every video file against the TheTVDB
episode list, and print the resulting rename plan. Nothing is changed.

By default files are also moved into "Season NN" / "Specials" folders
under the directory; --rename-only keeps every file where it is.

Examples:
  anirename plan /media/Anime/Frieren --series-id 424536
  anirename plan . --series-id 424536 --rename-only
  anirename plan /media/Anime/Frieren --series-id 424536 --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(args[0], seriesID, renameOnly, noSpecials, savePlan)
		},
	}

	cmd.Flags().Int64Var(&seriesID, "series-id", 0, "TheTVDB series ID (required)")
	cmd.Flags().BoolVar(&renameOnly, "rename-only", false, "rename in place, do not move into season folders")
	cmd.Flags().BoolVar(&noSpecials, "no-specials", false, "ignore files in OVA/special/extra folders")
	cmd.Flags().BoolVar(&savePlan, "save", false, "persist the plan for a later 'apply --plan latest'")
	cmd.MarkFlagRequired("series-id")

	return cmd
}

func runPlan(dir string, seriesID int64, renameOnly, noSpecials, savePlan bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer log.Close()

	plan, result, err := buildPlan(cfg, log, dir, seriesID, renameOnly, noSpecials)
	if err != nil {
		return err
	}

	printPlan(plan)
	printLeftovers(result.Unparsed, result.Unresolved)

	if savePlan {
		store, err := planstore.New("")
		if err != nil {
			return fmt.Errorf("failed to open plan store: %w", err)
		}
		path, err := store.Save(plan)
		if err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
		fmt.Println()
		ui.SuccessMsg("Plan saved: %s", path)
		fmt.Println("Apply it with: anirename apply --plan latest")
	} else if plan.Stats.Renames+plan.Stats.Moves+plan.Stats.Versioned > 0 {
		fmt.Println("\nTo apply: anirename apply", dir, "--series-id", seriesID)
	}

	return nil
}

// buildPlan runs the full pipeline: catalog fetch, directory scan, episode
// matching, plan assembly. Catalog or filesystem failures abort before any
// plan exists.
func buildPlan(cfg *config.Config, log *logging.Logger, dir string, seriesID int64, renameOnly, noSpecials bool) (*planner.Plan, analyzer.Result, error) {
	var zero analyzer.Result

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, zero, fmt.Errorf("cannot resolve %s: %w", dir, err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, zero, fmt.Errorf("cannot access %s: %w", root, err)
	} else if !info.IsDir() {
		return nil, zero, fmt.Errorf("%s is not a directory", root)
	}

	if cfg.TVDB.APIKey == "" {
		return nil, zero, fmt.Errorf("no TheTVDB API key configured (run 'anirename setup' or set ANIRENAME_TVDB_API_KEY)")
	}

	ctx := context.Background()
	client := tvdb.NewClient(tvdb.Config{
		URL:      cfg.TVDB.URL,
		APIKey:   cfg.TVDB.APIKey,
		PIN:      cfg.TVDB.PIN,
		Language: cfg.TVDB.Language,
	})

	series, err := client.SeriesInfo(ctx, seriesID)
	if err != nil {
		return nil, zero, fmt.Errorf("catalog lookup failed: %w", err)
	}
	episodes, err := client.AllEpisodes(ctx, seriesID)
	if err != nil {
		return nil, zero, fmt.Errorf("episode listing failed: %w", err)
	}
	if len(episodes) == 0 {
		return nil, zero, fmt.Errorf("series %q has no episodes in the catalog", series.Name)
	}

	files, err := scanner.New(cfg.Library.VideoExtensions, log).Scan(root)
	if err != nil {
		return nil, zero, err
	}
	if noSpecials {
		files = dropSpecials(files)
	}

	result := analyzer.New(cfg.Formatter(), log).Analyze(files, episodes, series.Name)

	plan, err := planner.New(cfg.Formatter(), log).Build(root, series, result, planner.Options{
		Reorganize: !renameOnly,
		Mode:       cfg.VersioningMode(),
	})
	if err != nil {
		return nil, zero, err
	}

	return plan, result, nil
}

func dropSpecials(files []scanner.DiscoveredFile) []scanner.DiscoveredFile {
	kept := files[:0]
	for _, f := range files {
		if !f.Special {
			kept = append(kept, f)
		}
	}
	return kept
}
