package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// writeOperationLog records every applied operation as a
// "source --> target" line, one log file per run. Paths are written
// relative to the plan root when possible. Runs that applied nothing
// produce no file.
func writeOperationLog(dir, runID, root string, results []OpResult) (string, error) {
	var b strings.Builder
	for _, r := range results {
		if !r.Applied {
			continue
		}
		fmt.Fprintf(&b, "%s --> %s\n", relTo(root, r.Operation.Source), relTo(root, r.Operation.TargetPath()))
	}
	if b.Len() == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create operation log directory: %w", err)
	}

	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	path := filepath.Join(dir, fmt.Sprintf("operations-%s-%s.log", time.Now().Format("20060102-150405"), short))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write operation log: %w", err)
	}
	return path, nil
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
