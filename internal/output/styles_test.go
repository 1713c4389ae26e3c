package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "written returns green", status: StatusWritten, wantFG: colorGreen},
		{name: "added returns green", status: StatusAdded, wantFG: colorGreen},
		{name: "modified returns yellow", status: StatusModified, wantFG: ColorYellow},
		{name: "unchanged returns faint", status: StatusUnchanged, wantDim: true},
		{name: "failed returns bold red", status: StatusFailed, wantBold: true, wantFG: colorBoldRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
		})
	}
}

func TestStatusStyle_Unknown(t *testing.T) {
	style := StatusStyle("bogus")
	assert.False(t, style.GetBold())
	assert.False(t, style.GetFaint())
}

func TestFormatArtifactLine(t *testing.T) {
	line := FormatArtifactLine("output/App.js", StatusWritten)

	assert.Contains(t, line, "a:")
	assert.Contains(t, line, "output/App.js")
	assert.Contains(t, line, "written")
}

func TestFormatArtifactLine_LongPathKeepsSeparator(t *testing.T) {
	path := strings.Repeat("x", 60) + ".js"
	line := FormatArtifactLine(path, StatusWritten)
	assert.Contains(t, line, path+"  ")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
	assert.Contains(t, FormatCheckmark("done"), "✔")
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(3, 4, 1, 0)
	assert.Contains(t, out, "compiled 3 file(s) into 4 artifact(s), 1 warning(s), 0 error(s)")
}
