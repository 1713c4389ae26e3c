package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vuesfc/vuec/internal/pipeline"
)

// artifacts returns the artifacts of a compiled file, module first.
func artifacts(res *pipeline.Result) []*pipeline.Artifact {
	if res == nil {
		return nil
	}
	out := []*pipeline.Artifact{res.Module}
	if res.Style != nil {
		out = append(out, res.Style)
	}
	return out
}

// ArtifactPath is where an artifact is written below dest.
func ArtifactPath(dest string, a *pipeline.Artifact) string {
	return filepath.Join(dest, filepath.FromSlash(a.Relative))
}

// writeArtifacts writes the artifacts of every compiled file below dest and
// records the written paths on the results. With dryRun the paths are
// recorded but nothing is written.
func writeArtifacts(dest string, results []*FileResult, dryRun bool) {
	for _, r := range results {
		if r == nil || r.Failed() || r.Result == nil {
			continue
		}
		for _, a := range artifacts(r.Result) {
			target := ArtifactPath(dest, a)
			if !dryRun {
				if err := writeFile(target, a.Contents); err != nil {
					r.fail(err)
					break
				}
			}
			r.Artifacts = append(r.Artifacts, target)
		}
	}
}

func writeFile(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
