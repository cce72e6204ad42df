package themevariants

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// InputStats tracks input discovery
type InputStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually read (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

// loadGitIgnore loads .gitignore from the working directory.
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(".gitignore")
	if err != nil {
		return nil
	}
	return gi
}

// inputFilter decides which discovered files are read.
//
// Two-layer filtering:
// 1. The generated stylesheet is never read back as an input
// 2. Gitignored files are skipped (only for relative paths)
type inputFilter struct {
	output string // absolute path of the generated file, "" if none
	ignore *ignore.GitIgnore
}

func newInputFilter(output string) *inputFilter {
	f := &inputFilter{ignore: loadGitIgnore()}
	if output != "" && output != "-" {
		if abs, err := filepath.Abs(output); err == nil {
			f.output = abs
		}
	}
	return f
}

func (f *inputFilter) skip(path string) bool {
	if f.output != "" {
		if abs, err := filepath.Abs(path); err == nil && abs == f.output {
			return true
		}
	}

	// Absolute paths (like /tmp/...) should not be affected by project gitignore
	if !filepath.IsAbs(path) && f.ignore != nil && f.ignore.MatchesPath(path) {
		return true
	}
	return false
}

// expandInputs expands glob patterns to files in pattern order, without
// duplicates.
func expandInputs(patterns []string, filter *inputFilter) ([]string, InputStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := InputStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if filter.skip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// groupName derives the utility group of an input file from its stem:
// "styles/backgroundColor.css" -> "backgroundColor".
func groupName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
