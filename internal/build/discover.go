package build

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/output"
)

// Discover expands patterns into source files, sorted by path. A file
// matched by several patterns is reported once, with the first base that
// matched it.
func Discover(patterns []string) ([]Source, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)
	var sources []Source
	for _, pattern := range patterns {
		clean := filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(clean) {
			return nil, oerrors.NewValidationError(
				fmt.Sprintf("invalid source pattern %q", pattern), "", "check the brackets and braces in the pattern")
		}

		base, pat := doublestar.SplitPattern(clean)
		matches, err := doublestar.Glob(os.DirFS(filepath.FromSlash(base)), pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		output.Debug("expanded source pattern", "pattern", pattern, "base", base, "matches", len(matches))

		for _, m := range matches {
			p := path.Join(base, m)
			if seen[p] {
				continue
			}
			seen[p] = true
			sources = append(sources, Source{
				Path:     filepath.FromSlash(p),
				Base:     filepath.FromSlash(base),
				Relative: m,
			})
		}
	}

	if len(sources) == 0 {
		return nil, oerrors.NewNotFoundError("no component files matched", fmt.Sprint(patterns),
			"pass source globs as arguments or set src in vuec.yaml")
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Path < sources[j].Path
	})
	return sources, nil
}
