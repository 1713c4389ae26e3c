package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDiff(t *testing.T) {
	t.Run("renders no changes message", func(t *testing.T) {
		assert.Equal(t, "No changes detected.", RenderDiff(nil, nil, 3))
	})

	t.Run("renders added artifacts", func(t *testing.T) {
		result := RenderDiff([]string{"output/App.js"}, nil, 0)

		assert.Contains(t, result, "Added:")
		assert.Contains(t, result, "+ output/App.js")
		assert.Contains(t, result, "Summary: 1 added")
	})

	t.Run("renders modified artifacts with their diff", func(t *testing.T) {
		modified := []ModifiedItem{
			{Name: "output/App.css", Diff: "@@ -1 +1 @@\n-.a{}\n+.b{}\n"},
		}
		result := RenderDiff(nil, modified, 2)

		assert.Contains(t, result, "Modified:")
		assert.Contains(t, result, "~ output/App.css")
		assert.Contains(t, result, "    -.a{}")
		assert.Contains(t, result, "    +.b{}")
		assert.Contains(t, result, "Summary: 1 modified, 2 unchanged")
	})
}
