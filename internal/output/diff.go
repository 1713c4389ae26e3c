package output

import (
	"strconv"
	"strings"
)

// ModifiedItem is a changed artifact and its unified diff.
type ModifiedItem struct {
	Name string
	Diff string
}

// RenderDiff renders the difference between fresh artifacts and those on
// disk: new artifacts, modified artifacts with their diffs, and a summary.
func RenderDiff(added []string, modified []ModifiedItem, unchanged int) string {
	if len(added) == 0 && len(modified) == 0 {
		return "No changes detected."
	}

	addedStyle := StatusStyle(StatusAdded)
	modifiedStyle := StatusStyle(StatusModified)

	var sb strings.Builder
	if len(added) > 0 {
		sb.WriteString(addedStyle.Render("Added:"))
		sb.WriteString("\n")
		for _, name := range added {
			sb.WriteString("  + ")
			sb.WriteString(addedStyle.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(modified) > 0 {
		sb.WriteString(modifiedStyle.Render("Modified:"))
		sb.WriteString("\n")
		for _, mod := range modified {
			sb.WriteString("  ~ ")
			sb.WriteString(modifiedStyle.Render(mod.Name))
			sb.WriteString("\n")
			for _, line := range strings.Split(mod.Diff, "\n") {
				if line == "" {
					continue
				}
				sb.WriteString("    ")
				sb.WriteString(DiffLineStyle(line).Render(line))
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Summary: ")
	sb.WriteString(diffSummary(len(added), len(modified), unchanged))
	sb.WriteString("\n")
	return sb.String()
}

func diffSummary(added, modified, unchanged int) string {
	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, pluralize(added, "added"))
	}
	if modified > 0 {
		parts = append(parts, pluralize(modified, "modified"))
	}
	if unchanged > 0 {
		parts = append(parts, pluralize(unchanged, "unchanged"))
	}
	return strings.Join(parts, ", ")
}

func pluralize(count int, label string) string {
	return strconv.Itoa(count) + " " + label
}
