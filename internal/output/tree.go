package output

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "
)

// TreeEntry is one artifact in a tree. Path is slash-separated and
// relative to the tree root.
type TreeEntry struct {
	Path   string
	Status string

	// Note is printed dimmed after the status, e.g. the scope id of the
	// component that produced the artifact.
	Note string
}

type treeLine struct {
	text  string
	entry *TreeEntry
}

// RenderArtifactTree renders entries as a directory tree below root.
// Directories sort before files. Statuses line up two columns past the
// widest name.
func RenderArtifactTree(root string, entries []TreeEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var lines []treeLine
	walkTree(&lines, entries, "")

	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l.text))
	}

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(strings.TrimSuffix(root, "/") + "/"))
	sb.WriteByte('\n')
	for _, l := range lines {
		sb.WriteString(l.text)
		if e := l.entry; e != nil && e.Status != "" {
			sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(l.text)+2))
			sb.WriteString(StatusStyle(e.Status).Render(e.Status))
			if e.Note != "" {
				sb.WriteString("  " + StyleDim.Render(e.Note))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// walkTree appends the lines of one directory level. entries are relative
// to that directory.
func walkTree(lines *[]treeLine, entries []TreeEntry, prefix string) {
	dirs := map[string][]TreeEntry{}
	var (
		dirNames []string
		files    []TreeEntry
	)
	for _, e := range entries {
		head, rest, nested := strings.Cut(e.Path, "/")
		if !nested {
			files = append(files, e)
			continue
		}
		if _, seen := dirs[head]; !seen {
			dirNames = append(dirNames, head)
		}
		e.Path = rest
		dirs[head] = append(dirs[head], e)
	}
	sort.Strings(dirNames)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	remaining := len(dirNames) + len(files)
	next := func() (connector, indent string) {
		remaining--
		if remaining == 0 {
			return treeLast, treeSpace
		}
		return treeEdge, treeVert
	}

	for _, d := range dirNames {
		connector, indent := next()
		*lines = append(*lines, treeLine{text: prefix + connector + d + "/"})
		walkTree(lines, dirs[d], prefix+indent)
	}
	for _, f := range files {
		connector, _ := next()
		*lines = append(*lines, treeLine{text: prefix + connector + f.Path, entry: &f})
	}
}
