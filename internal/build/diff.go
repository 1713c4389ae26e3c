package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/vuesfc/vuec/internal/output"
)

// ArtifactDiff compares a freshly compiled artifact with the file on disk.
type ArtifactDiff struct {
	Path   string
	Status string

	// Unified is the unified diff, empty when unchanged.
	Unified string
}

// Diff compares the artifacts of compiled results with the files under dest.
func Diff(dest string, results []*FileResult) ([]ArtifactDiff, error) {
	var diffs []ArtifactDiff
	for _, r := range results {
		if r == nil || r.Failed() || r.Result == nil {
			continue
		}
		for _, a := range artifacts(r.Result) {
			target := ArtifactPath(dest, a)
			d, err := diffArtifact(target, string(a.Contents))
			if err != nil {
				return nil, err
			}
			diffs = append(diffs, d)
		}
	}
	return diffs, nil
}

func diffArtifact(path, fresh string) (ArtifactDiff, error) {
	current, err := os.ReadFile(path)
	status := output.StatusModified
	switch {
	case errors.Is(err, fs.ErrNotExist):
		status = output.StatusAdded
	case err != nil:
		return ArtifactDiff{}, fmt.Errorf("reading %s: %w", path, err)
	case string(current) == fresh:
		return ArtifactDiff{Path: path, Status: output.StatusUnchanged}, nil
	}

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(fresh),
		FromFile: path,
		ToFile:   path + " (compiled)",
		Context:  3,
	})
	if err != nil {
		return ArtifactDiff{}, fmt.Errorf("diffing %s: %w", path, err)
	}
	return ArtifactDiff{Path: path, Status: status, Unified: unified}, nil
}
