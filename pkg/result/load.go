package result

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ccollicutt/capreport/internal/logging"
)

// Load reads a result document from disk. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Load(_ context.Context, path string) (Document, error) {
	log := logging.GetLogger("result")

	f, err := os.Open(path) // #nosec G304 -- user-provided document path is expected
	if err != nil {
		return nil, fmt.Errorf("opening result document: %w", err)
	}
	defer f.Close()

	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = DecodeYAML(f)
	default:
		doc, err = DecodeJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("rules", len(doc)).Msg("Loaded result document")
	return doc, nil
}

// ExpandGlobs expands document paths and glob patterns into a sorted, deduplicated
// list. A pattern matching nothing is kept as a literal path so that opening it
// later reports a useful error.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	slices.Sort(paths)
	return paths, nil
}
