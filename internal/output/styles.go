package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: source paths, artifact paths.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for written artifacts and diff additions.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings and modified artifacts.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for diff removals.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for failed files (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (source and artifact paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Artifact status constants.
const (
	StatusWritten   = "written"
	StatusModified  = "modified"
	StatusUnchanged = "unchanged"
	StatusAdded     = "added"
	StatusSkipped   = "skipped"
	statusFailed    = "failed"
)

// StatusFailed is exported for callers that report failed files.
const StatusFailed = statusFailed

// StatusStyle returns the style for a given artifact status.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusWritten, StatusAdded:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusModified:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged, StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minArtifactColumnWidth is the minimum width of the path column so status
// words align.
const minArtifactColumnWidth = 48

// FormatArtifactLine renders an artifact path with a right-aligned,
// color-coded status suffix.
//
// Format: a:<path>  <status>
func FormatArtifactLine(path, status string) string {
	padding := minArtifactColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("a:")
	styledPath := StyleNoun.Render(path)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledPath + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatSummary renders the one-line build summary.
func FormatSummary(files, artifacts, warnings, errors int) string {
	return StyleSummary.Render(fmt.Sprintf(
		"compiled %d file(s) into %d artifact(s), %d warning(s), %d error(s)",
		files, artifacts, warnings, errors))
}

// DiffLineStyle returns the style for a unified diff line.
func DiffLineStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return StyleSummary
	case strings.HasPrefix(line, "+"):
		return lipgloss.NewStyle().Foreground(colorGreen)
	case strings.HasPrefix(line, "-"):
		return lipgloss.NewStyle().Foreground(colorRed)
	case strings.HasPrefix(line, "@@"):
		return lipgloss.NewStyle().Foreground(ColorCyan)
	default:
		return lipgloss.NewStyle()
	}
}
