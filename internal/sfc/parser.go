package sfc

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"

	"golang.org/x/net/html"
)

// PadMode controls how script and style content is padded so that line
// (or column) numbers inside a block match the original file.
type PadMode string

const (
	// PadNone leaves block content untouched.
	PadNone PadMode = ""

	// PadLine prefixes content with one newline per preceding source line.
	PadLine PadMode = "line"

	// PadSpace replaces everything before the block with spaces.
	PadSpace PadMode = "space"
)

// ParseOptions configures Parse.
type ParseOptions struct {
	Pad PadMode

	// NoDeindent disables removal of common leading indentation.
	NoDeindent bool
}

// DefaultParseOptions returns the options used by the compile pipeline.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Pad: PadLine}
}

// voidElements never take an end tag and are never pushed on the stack.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

type openBlock struct {
	tag          string
	attrs        Attrs
	contentStart int
}

// Parse splits raw component source into a descriptor. It never fails:
// structural problems are reported as descriptor warnings.
//
// Elements are tracked on a stack. An end tag closes the nearest open
// element with the same name and everything opened after it; an end tag
// with no open match is ignored. A top-level block ends when its own
// entry is popped, or at the end of the source when it is never closed.
func Parse(source, filename string, opts ParseOptions) *Descriptor {
	d := &Descriptor{
		Filename: filename,
		Styles:   []*StyleBlock{},
	}

	z := html.NewTokenizer(strings.NewReader(source))
	offset := 0
	var (
		stack []string
		cur   *openBlock
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tokenStart := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			unary := tt == html.SelfClosingTagToken || voidElements[tag]
			if len(stack) == 0 {
				if unary {
					continue
				}
				cur = &openBlock{
					tag:          tag,
					attrs:        readAttrs(z, hasAttr),
					contentStart: offset,
				}
			}
			if !unary {
				stack = append(stack, tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			pos := lastIndex(stack, string(name))
			if pos < 0 {
				continue
			}
			stack = stack[:pos]
			if pos == 0 && cur != nil {
				d.addBlock(source, cur, tokenStart, opts)
				cur = nil
			}
		}
	}

	if cur != nil {
		d.Warnings = append(d.Warnings,
			fmt.Sprintf("tag <%s> has no matching end tag.", cur.tag))
		d.addBlock(source, cur, len(source), opts)
	}

	return d
}

func lastIndex(stack []string, tag string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == tag {
			return i
		}
	}
	return -1
}

func readAttrs(z *html.Tokenizer, hasAttr bool) Attrs {
	attrs := Attrs{}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return attrs
}

func (d *Descriptor) addBlock(source string, open *openBlock, end int, opts ParseOptions) {
	block := Block{
		Type:  open.tag,
		Attrs: open.attrs,
		Lang:  open.attrs["lang"],
		Src:   open.attrs["src"],
		Start: open.contentStart,
		End:   end,
	}

	content := source[open.contentStart:end]
	if !opts.NoDeindent {
		content = deindent(content)
	}
	if open.tag != BlockTemplate && opts.Pad != PadNone {
		content = padContent(source[:open.contentStart], open.tag, block.Lang, opts.Pad) + content
	}
	block.Content = content

	// A later <template> or <script> replaces the earlier one.
	switch open.tag {
	case BlockTemplate:
		if d.Template != nil {
			d.Warnings = append(d.Warnings, "Single file component can contain only one <template> element; the last one is used.")
		}
		d.Template = &TemplateBlock{Block: block}
	case BlockScript:
		if d.Script != nil {
			d.Warnings = append(d.Warnings, "Single file component can contain only one <script> element; the last one is used.")
		}
		d.Script = &ScriptBlock{Block: block}
	case BlockStyle:
		style := &StyleBlock{Block: block, Scoped: block.Attrs.Has("scoped")}
		if mod, ok := block.Attrs["module"]; ok {
			style.Module = &mod
		}
		d.Styles = append(d.Styles, style)
	default:
		d.CustomBlocks = append(d.CustomBlocks, &block)
	}
}

func padContent(before, blockType, lang string, mode PadMode) string {
	if mode == PadSpace {
		return padSpace(before)
	}

	padChar := "\n"
	if blockType == BlockScript && lang == "" {
		padChar = "//\n"
	}
	return strings.Repeat(padChar, strings.Count(before, "\n"))
}

// padSpace blanks every character except line terminators. Characters
// outside the BMP take two columns, one per UTF-16 code unit.
func padSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029':
			b.WriteRune(r)
		case utf16.RuneLen(r) == 2:
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// deindent removes the indentation shared by all non-blank lines, provided
// the first non-blank line starts with a space or a tab.
func deindent(s string) string {
	if !needsDeindent(s) {
		return s
	}

	lines := splitLines(s)
	minIndent := -1
	var indentChar byte
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indentChar == 0 {
			c := line[0]
			if c != ' ' && c != '\t' {
				return s
			}
			indentChar = c
		}
		n := countLeading(line, indentChar)
		if minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		return strings.Repeat("\n", len(lines)-1)
	}

	for i, line := range lines {
		if len(line) <= minIndent {
			lines[i] = ""
		} else {
			lines[i] = line[minIndent:]
		}
	}
	return strings.Join(lines, "\n")
}

func needsDeindent(s string) bool {
	trimmed := strings.TrimLeft(s, "\r\n")
	if trimmed == "" {
		return false
	}
	return unicode.IsSpace(rune(trimmed[0]))
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func countLeading(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
