package diagnostics

import (
	"regexp"
	"strings"

	"github.com/vuesfc/vuec/internal/compiler"
)

var lineBreakRE = regexp.MustCompile(`\r?\n`)

// Pad indents every line of s by two spaces.
func Pad(s string) string {
	lines := lineBreakRE.Split(s, -1)
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

// FormatTemplateErrors renders a batch of template errors as one message.
// With a framer, every error that has a source range is followed by a code
// frame of source. Without one, the errors are listed beneath the whole
// template source.
func FormatTemplateErrors(errs []compiler.Message, source string, framer compiler.CodeFramer) string {
	var b strings.Builder
	if framer != nil {
		b.WriteString("\n\n  Errors compiling template:\n\n")
		for i, e := range errs {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString("  " + e.Msg)
			if e.HasRange {
				b.WriteString("\n\n")
				b.WriteString(Pad(framer.CodeFrame(source, e.Start, e.End)))
			}
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n  Error compiling template:\n")
	b.WriteString(Pad(source))
	b.WriteString("\n")
	writeList(&b, errs)
	return b.String()
}

// FormatStyleErrors renders a batch of style errors as one message.
func FormatStyleErrors(errs []compiler.Message) string {
	var b strings.Builder
	b.WriteString("\n  Error compiling style:\n")
	writeList(&b, errs)
	return b.String()
}

func writeList(b *strings.Builder, errs []compiler.Message) {
	for i, e := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  - " + e.Msg)
	}
	b.WriteString("\n")
}
