package main

import (
	_ "embed"
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Nomadcxx/anirename/internal/executor"
	"github.com/Nomadcxx/anirename/internal/planner"
	"github.com/Nomadcxx/anirename/internal/scanner"
	"github.com/Nomadcxx/anirename/internal/ui"
)

//go:embed assets/header.txt
var asciiHeader string

// printHeader displays the ASCII header with version info
func printHeader(version string) {
	fmt.Println(asciiHeader)
	fmt.Printf("Version: %s\n\n", version)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// actionLabel maps an operation kind to the short form shown in tables.
func actionLabel(op planner.Operation) string {
	switch op.Kind {
	case planner.KindSkip:
		return "skip"
	case planner.KindRename:
		return "rename"
	case planner.KindMove:
		return "move"
	case planner.KindTempRename:
		return "temp"
	case planner.KindVersionedRename:
		return fmt.Sprintf("version v%d", op.Version)
	default:
		return string(op.Kind)
	}
}

func printPlan(plan *planner.Plan) {
	fmt.Printf("Series: %s (TheTVDB %d)\n", ui.Header(plan.Series.Name), plan.Series.ID)
	fmt.Printf("Root:   %s\n\n", ui.Path(plan.Root))

	if len(plan.Operations) == 0 {
		fmt.Println("No video files matched. Nothing to do.")
		return
	}

	rows := make([][]string, 0, len(plan.Operations))
	for i, op := range plan.Operations {
		newName := op.NewName
		if op.Kind == planner.KindSkip {
			newName = ""
		}
		size := ""
		if op.Size > 0 {
			size = ui.FormatBytes(op.Size)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			actionLabel(op),
			op.Slot.String(),
			filepath.Base(op.Source),
			newName,
			size,
		})
	}

	fmt.Println(renderTable(
		[]string{"#", "Action", "Slot", "Current Name", "New Name", "Size"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	))

	s := plan.Stats
	fmt.Printf("\n%d files: %d settled, %d renames, %d moves, %d versioned across %d duplicate slots\n",
		s.Files, s.Skips, s.Renames, s.Moves, s.Versioned, s.DuplicateSlots)
	if s.BytesTouched > 0 {
		fmt.Printf("Touching %s on disk\n", ui.FormatBytes(s.BytesTouched))
	}
}

// printLeftovers reports files the plan could not account for.
func printLeftovers(unparsed, unresolved []scanner.DiscoveredFile) {
	if len(unparsed) > 0 {
		fmt.Println()
		ui.WarningMsg("%d file(s) did not match any filename pattern:", len(unparsed))
		for _, f := range unparsed {
			fmt.Printf("  - %s\n", f.Name)
		}
	}

	if len(unresolved) > 0 {
		fmt.Println()
		ui.WarningMsg("%d file(s) matched no catalog episode:", len(unresolved))
		for _, f := range unresolved {
			fmt.Printf("  - %s\n", f.Name)
		}
	}
}

func printReport(report *executor.Report) {
	fmt.Println()
	if report.DryRun {
		ui.InfoMsg("Dry run: no files were touched")
	}

	for _, r := range report.Results {
		name := filepath.Base(r.Operation.Source)
		switch {
		case r.Error != nil:
			ui.ErrorMsg("%s: %v", name, r.Error)
		case r.Applied:
			verb := "→"
			if report.DryRun {
				verb = "would →"
			}
			fmt.Printf("%s %s %s %s\n", ui.Success("✓"), name, verb, r.Operation.NewName)
		case verbose && r.Skipped:
			fmt.Printf("%s %s (%s)\n", ui.Dim("⊘"), name, r.SkipReason)
		}
	}

	fmt.Printf("\nSummary: %d applied, %d skipped, %d failed in %s\n",
		report.Applied, report.Skipped, report.Failed, ui.FormatDuration(report.Duration))

	if report.LogPath != "" {
		fmt.Printf("Operation log: %s\n", ui.Path(report.LogPath))
	}
}
