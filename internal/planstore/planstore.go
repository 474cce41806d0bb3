// Package planstore persists rename plans as JSON files in the
// anirename config directory.
package planstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nomadcxx/anirename/internal/paths"
	"github.com/Nomadcxx/anirename/internal/planner"
)

// ErrNoPlans indicates the store holds no plan files
var ErrNoPlans = errors.New("no plan files found")

// Store reads and writes plan files under a single directory
type Store struct {
	dir string
}

// New creates a Store rooted at dir. An empty dir resolves to the
// default plans directory under ~/.config/anirename.
func New(dir string) (*Store, error) {
	if dir == "" {
		d, err := paths.PlansDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the plan as a timestamped JSON file and returns its path
func (s *Store) Save(plan *planner.Plan) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create plans directory: %w", err)
	}

	stamp := plan.CreatedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	name := fmt.Sprintf("plan-%s-%s.json", stamp.Format("20060102-150405"), uuid.New().String()[:8])
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write plan file: %w", err)
	}
	return path, nil
}

// Load reads a plan file from the given path
func (s *Store) Load(path string) (*planner.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	var plan planner.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, err)
	}
	return &plan, nil
}

// List returns all plan file paths in the store, newest first
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list plans directory: %w", err)
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "plan-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		found = append(found, filepath.Join(s.dir, name))
	}

	// timestamped names sort chronologically
	sort.Sort(sort.Reverse(sort.StringSlice(found)))
	return found, nil
}

// Latest loads the most recently saved plan and returns it with its path
func (s *Store) Latest() (*planner.Plan, string, error) {
	found, err := s.List()
	if err != nil {
		return nil, "", err
	}
	if len(found) == 0 {
		return nil, "", ErrNoPlans
	}
	plan, err := s.Load(found[0])
	if err != nil {
		return nil, "", err
	}
	return plan, found[0], nil
}

// Delete removes a plan file
func (s *Store) Delete(path string) error {
	return os.Remove(path)
}
