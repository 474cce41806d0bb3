package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/anirename/internal/executor"
	"github.com/Nomadcxx/anirename/internal/logging"
	"github.com/Nomadcxx/anirename/internal/paths"
	"github.com/Nomadcxx/anirename/internal/planner"
	"github.com/Nomadcxx/anirename/internal/planstore"
	"github.com/Nomadcxx/anirename/internal/runlock"
	"github.com/Nomadcxx/anirename/internal/scanner"
	"github.com/Nomadcxx/anirename/internal/ui"
)

func newApplyCmd() *cobra.Command {
	var (
		seriesID   int64
		renameOnly bool
		noSpecials bool
		planRef    string
		yes        bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "apply [directory]",
		Short: "Apply a rename plan to the filesystem",
		Long: `Compute a rename plan (like 'plan') and carry it out. The plan is shown
first and applied only after confirmation; --yes skips the prompt.

Instead of recomputing, --plan applies a previously saved plan ('latest'
or a path printed by 'plan --save').

Existing files are never overwritten: an operation whose target already
exists is skipped and reported. Failed operations do not stop the run.

Examples:
  anirename apply /media/Anime/Frieren --series-id 424536
  anirename apply /media/Anime/Frieren --series-id 424536 --dry-run
  anirename apply --plan latest --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return runApply(dir, seriesID, renameOnly, noSpecials, planRef, yes, dryRun)
		},
	}

	cmd.Flags().Int64Var(&seriesID, "series-id", 0, "TheTVDB series ID (required unless --plan is given)")
	cmd.Flags().BoolVar(&renameOnly, "rename-only", false, "rename in place, do not move into season folders")
	cmd.Flags().BoolVar(&noSpecials, "no-specials", false, "ignore files in OVA/special/extra folders")
	cmd.Flags().StringVar(&planRef, "plan", "", "apply a saved plan: 'latest' or a plan file path")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "apply without asking for confirmation")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report what would happen without touching files")

	return cmd
}

func runApply(dir string, seriesID int64, renameOnly, noSpecials bool, planRef string, yes, dryRun bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer log.Close()

	var plan *planner.Plan
	var unparsed, unresolved []scanner.DiscoveredFile
	if planRef != "" {
		plan, err = loadSavedPlan(planRef)
		if err != nil {
			return err
		}
	} else {
		if dir == "" {
			return fmt.Errorf("directory argument required (or use --plan)")
		}
		if seriesID == 0 {
			return fmt.Errorf("--series-id required (or use --plan)")
		}
		freshPlan, result, err := buildPlan(cfg, log, dir, seriesID, renameOnly, noSpecials)
		if err != nil {
			return err
		}
		plan = freshPlan
		unparsed, unresolved = result.Unparsed, result.Unresolved
	}

	printPlan(plan)
	printLeftovers(unparsed, unresolved)

	pending := 0
	for _, op := range plan.Operations {
		if op.Kind != planner.KindSkip {
			pending++
		}
	}
	if pending == 0 {
		fmt.Println("\nEverything is already in place. Nothing to apply.")
		return nil
	}

	if dryRun || cfg.Options.DryRun {
		dryRun = true
	}

	if !dryRun && !yes {
		fmt.Println()
		if !ui.Confirm(fmt.Sprintf("Apply %d operation(s)", pending)) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Real runs hold the lock so two applies cannot interleave renames.
	if !dryRun {
		lock, err := runlock.Acquire("")
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	opts := []func(*executor.Executor){executor.WithDryRun(dryRun)}
	if cfg.Options.OperationLog {
		if logsDir, err := paths.LogsDir(); err == nil {
			opts = append(opts, executor.WithOperationLogDir(logsDir))
		} else {
			log.Warn("cli", "operation log disabled", logging.F("error", err))
		}
	}

	report, err := executor.New(log, opts...).Apply(context.Background(), plan)
	if err != nil {
		return err
	}

	printReport(report)

	if report.Failed > 0 {
		return fmt.Errorf("%d operation(s) failed", report.Failed)
	}
	return nil
}

func loadSavedPlan(planRef string) (*planner.Plan, error) {
	store, err := planstore.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to open plan store: %w", err)
	}

	if planRef == "latest" {
		plan, path, err := store.Latest()
		if err != nil {
			return nil, err
		}
		fmt.Printf("Loaded plan: %s (created %s)\n\n", path, plan.CreatedAt.Format("2006-01-02 15:04"))
		return plan, nil
	}

	plan, err := store.Load(planRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", planRef, err)
	}
	fmt.Printf("Loaded plan: %s (created %s)\n\n", planRef, plan.CreatedAt.Format("2006-01-02 15:04"))
	return plan, nil
}
