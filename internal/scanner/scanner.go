// Package scanner discovers video files under a series directory and
// classifies each by the folder it lives in.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Nomadcxx/anirename/internal/logging"
)

// DefaultVideoExtensions is the extension filter applied when the
// configuration names none.
var DefaultVideoExtensions = []string{
	".mkv", ".mp4", ".avi", ".m4v", ".mov", ".wmv", ".ts", ".m2ts",
}

// Files smaller than this that carry a sample marker are preview clips,
// not episodes.
const sampleSizeThreshold = 100 * 1024 * 1024

var (
	specialFolderRegex = regexp.MustCompile(`(?i)^(?:season[ ._-]*\d+[ ._-]*)?(?:ova|oad|special|extra|movie)s?\b`)
	seasonZeroRegex    = regexp.MustCompile(`(?i)^season[ ._-]*0+$`)
	sampleFileRegex    = regexp.MustCompile(`(?i)(^|[.\-_])sample([.\-_]|$)`)
	trailerFileRegex   = regexp.MustCompile(`(?i)(^|[.\-_])(trailer|teaser)([.\-_]|$)`)
)

// DiscoveredFile is one video file found under the scan root.
type DiscoveredFile struct {
	Path    string // absolute path
	Name    string // base name including extension
	Ext     string // lowercased extension including the dot
	RelDir  string // containing directory relative to the scan root, "." at the root
	Size    int64
	Special bool // lives inside a special-content folder
}

type Scanner struct {
	exts map[string]bool
	log  *logging.Logger
}

// New returns a Scanner filtering on the given extensions (lowercased,
// leading dot required). An empty list selects the defaults.
func New(videoExtensions []string, log *logging.Logger) *Scanner {
	if len(videoExtensions) == 0 {
		videoExtensions = DefaultVideoExtensions
	}
	if log == nil {
		log = logging.Nop()
	}

	exts := make(map[string]bool, len(videoExtensions))
	for _, ext := range videoExtensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Scanner{exts: exts, log: log}
}

// Scan walks root recursively and returns every video file in walk order.
// Hidden entries are skipped entirely; sample clips and trailers are
// skipped with a debug line.
func (s *Scanner) Scan(root string) ([]DiscoveredFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	var files []DiscoveredFile
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.log.Warn("scanner", "unreadable entry", logging.F("path", path), logging.F("error", err))
			return nil
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(name))
		if !s.exts[ext] {
			return nil
		}
		if sampleFileRegex.MatchString(name) && info.Size() <= sampleSizeThreshold {
			s.log.Debug("scanner", "skipping sample clip", logging.F("file", name))
			return nil
		}
		if trailerFileRegex.MatchString(name) {
			s.log.Debug("scanner", "skipping trailer", logging.F("file", name))
			return nil
		}

		relDir, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			relDir = "."
		}

		files = append(files, DiscoveredFile{
			Path:    path,
			Name:    name,
			Ext:     ext,
			RelDir:  relDir,
			Size:    info.Size(),
			Special: IsSpecialDir(relDir),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	s.log.Info("scanner", "scan complete", logging.F("root", root), logging.F("files", len(files)))
	return files, nil
}

// IsSpecialDir reports whether any segment of the relative directory path
// names special content: OVA/OAD/Special/Extra/Movie markers (optionally
// season-prefixed, plural allowed) or a literal season zero folder.
func IsSpecialDir(relDir string) bool {
	if relDir == "." || relDir == "" {
		return false
	}
	for _, segment := range strings.Split(filepath.ToSlash(relDir), "/") {
		if specialFolderRegex.MatchString(segment) || seasonZeroRegex.MatchString(segment) {
			return true
		}
	}
	return false
}
