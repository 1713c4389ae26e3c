package template

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/vuesfc/vuec/internal/compiler"
)

// parser builds the element tree of a template from the HTML tokenizer and
// records structural errors against byte ranges of the template source.
type parser struct {
	src           string
	root          *node
	stack         []*node
	currentParent *node

	errors   []compiler.Message
	tips     []compiler.Message
	warnedAt map[string]bool
}

func parse(src string) *parser {
	p := &parser{src: src, warnedAt: map[string]bool{}}

	z := html.NewTokenizer(strings.NewReader(src))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		start := offset
		offset += len(raw)

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := originalCase(raw, 1, string(name))
			attrs := readAttrs(z, hasAttr, raw, start, len(tag))
			p.start(tag, attrs, tt == html.SelfClosingTagToken || unaryTags[tag], start, offset)
		case html.EndTagToken:
			name, _ := z.TagName()
			p.end(originalCase(raw, 2, string(name)), start, offset)
		case html.TextToken:
			p.chars(string(z.Text()))
		}
	}

	for len(p.stack) > 0 {
		el := p.stack[len(p.stack)-1]
		p.errorf(el.start, el.end, "tag <%s> has no matching end tag.", el.tag)
		p.pop()
	}
	return p
}

// originalCase recovers the author's spelling of a tokenizer-lowercased
// name found at raw[at:].
func originalCase(raw string, at int, lower string) string {
	if at+len(lower) <= len(raw) && strings.EqualFold(raw[at:at+len(lower)], lower) {
		return raw[at : at+len(lower)]
	}
	return lower
}

func readAttrs(z *html.Tokenizer, hasAttr bool, raw string, base, tagLen int) []attr {
	var attrs []attr
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs = append(attrs, attr{name: string(key), value: string(val)})
	}

	lower := asciiLower(raw)
	pos := 1 + tagLen
	for i := range attrs {
		attrs[i].start, attrs[i].end = base, base+len(raw)
		idx := strings.Index(lower[pos:], attrs[i].name)
		if idx < 0 {
			continue
		}
		s := pos + idx
		e := s + len(attrs[i].name)
		attrs[i].name = raw[s:e]

		j := skipSpace(raw, e)
		if j < len(raw) && raw[j] == '=' {
			j = skipSpace(raw, j+1)
			if j < len(raw) && (raw[j] == '"' || raw[j] == '\'') {
				if k := strings.IndexByte(raw[j+1:], raw[j]); k >= 0 {
					e = j + k + 2
				} else {
					e = len(raw)
				}
			} else {
				for j < len(raw) && !isSpace(raw[j]) && raw[j] != '>' {
					j++
				}
				e = j
			}
		}
		attrs[i].start, attrs[i].end = base+s, base+e
		pos = e
	}
	return attrs
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func (p *parser) errorf(start, end int, format string, args ...any) {
	p.errors = append(p.errors, compiler.RangeErrorf(start, end, format, args...))
}

func (p *parser) errorOnce(start, end int, msg string) {
	if p.warnedAt[msg] {
		return
	}
	p.warnedAt[msg] = true
	p.errorf(start, end, "%s", msg)
}

func (p *parser) start(tag string, attrs []attr, unary bool, start, end int) {
	el := &node{
		kind:      kindElement,
		tag:       tag,
		rawAttrs:  attrs,
		attrsList: append([]attr(nil), attrs...),
		attrsMap:  map[string]string{},
		start:     start,
		end:       end,
		parent:    p.currentParent,
	}
	for _, a := range attrs {
		if _, dup := el.attrsMap[a.name]; dup {
			p.errorf(a.start, a.end, "duplicate attribute: %s", a.name)
		}
		el.attrsMap[a.name] = a.value
	}

	if isForbiddenTag(el) {
		el.forbidden = true
		p.errorf(start, end, "Templates should only be responsible for mapping the state to the UI. "+
			"Avoid placing tags with side-effects in your templates, such as <%s>, as they will not be parsed.", tag)
	}

	p.processFor(el)
	p.processIf(el)
	if _, ok := el.takeAttr("v-once"); ok {
		el.once = true
	}

	if p.root == nil {
		p.root = el
		p.checkRootConstraints(el)
	}

	if unary {
		p.closeElement(el)
		return
	}
	p.currentParent = el
	p.stack = append(p.stack, el)
}

func (p *parser) end(tag string, start, end int) {
	pos := -1
	for i := len(p.stack) - 1; i >= 0; i-- {
		if strings.EqualFold(p.stack[i].tag, tag) {
			pos = i
			break
		}
	}

	if pos < 0 {
		switch strings.ToLower(tag) {
		case "br":
			p.start(tag, nil, true, start, end)
		case "p":
			p.start(tag, nil, false, start, end)
			p.pop()
		}
		return
	}

	for i := len(p.stack) - 1; i > pos; i-- {
		el := p.stack[i]
		p.errorf(el.start, el.end, "tag <%s> has no matching end tag.", el.tag)
	}
	for len(p.stack) > pos {
		p.pop()
	}
}

func (p *parser) pop() {
	el := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.currentParent = nil
	if len(p.stack) > 0 {
		p.currentParent = p.stack[len(p.stack)-1]
	}
	p.closeElement(el)
}

func (p *parser) closeElement(el *node) {
	for len(el.children) > 0 {
		last := el.children[len(el.children)-1]
		if last.kind != kindText || last.text != " " {
			break
		}
		el.children = el.children[:len(el.children)-1]
	}

	p.processElement(el)

	if len(p.stack) == 0 && el != p.root {
		if p.root.hasIf && (el.hasElseIf || el.isElse) {
			p.checkRootConstraints(el)
			p.root.ifConditions = append(p.root.ifConditions, ifCondition{exp: el.elseIfExp, block: el})
		} else {
			p.errorOnce(el.start, el.end, "Component template should contain exactly one root element. "+
				"If you are using v-if on multiple elements, use v-else-if to chain them instead.")
		}
	}

	parent := p.currentParent
	if parent == nil || el.forbidden {
		return
	}
	switch {
	case el.hasElseIf || el.isElse:
		p.processIfConditions(el, parent)
	case el.slotScope != "":
		el.parent = parent
		parent.scopedSlots = append(parent.scopedSlots, el)
	default:
		el.parent = parent
		parent.children = append(parent.children, el)
	}
}

func (p *parser) chars(text string) {
	parent := p.currentParent
	if parent == nil {
		trimmed := strings.TrimSpace(text)
		switch {
		case trimmed == "":
		case trimmed == strings.TrimSpace(p.src):
			p.errorOnce(0, len(p.src), "Component template requires a root element, rather than just text.")
		default:
			p.errorOnce(0, len(p.src), fmt.Sprintf("text %q outside root element will be ignored.", trimmed))
		}
		return
	}

	if strings.TrimSpace(text) == "" {
		if len(parent.children) == 0 {
			return
		}
		text = " "
	}

	if text != " " {
		if exp, ok := parseText(text); ok {
			for _, raw := range interpolations(text) {
				if reason := checkExpression(raw); reason != "" {
					p.errorf(parent.start, parent.end, "%s", expressionError(reason, raw, "{{"+raw+"}}"))
				}
			}
			parent.children = append(parent.children, &node{kind: kindExpression, expression: exp, text: text, parent: parent})
			return
		}
	}

	if text != " " || len(parent.children) == 0 || parent.children[len(parent.children)-1].text != " " {
		parent.children = append(parent.children, &node{kind: kindText, text: text, parent: parent})
	}
}

func (p *parser) checkRootConstraints(el *node) {
	if el.tag == "slot" || el.tag == "template" {
		p.errorOnce(el.start, el.end, fmt.Sprintf(
			"Cannot use <%s> as component root element because it may contain multiple nodes.", el.tag))
	}
	if _, ok := el.attrsMap["v-for"]; ok {
		s, e := el.attrRange("v-for")
		p.errorOnce(s, e, "Cannot use v-for on stateful component root element because it renders multiple elements.")
	}
}

func (p *parser) processIfConditions(el, parent *node) {
	var prev *node
	for i := len(parent.children) - 1; i >= 0; i-- {
		child := parent.children[i]
		if child.isElement() {
			prev = child
			break
		}
		if child.text != " " {
			p.errorf(el.start, el.end, "text %q between v-if and v-else(-if) will be ignored.", strings.TrimSpace(child.text))
		}
		parent.children = parent.children[:i]
	}

	if prev != nil && prev.hasIf {
		prev.ifConditions = append(prev.ifConditions, ifCondition{exp: el.elseIfExp, block: el})
		el.parent = parent
		return
	}

	if el.hasElseIf {
		s, e := el.attrRange("v-else-if")
		p.errorf(s, e, "v-else-if=%q used on element <%s> without corresponding v-if.", el.elseIfExp, el.tag)
		return
	}
	s, e := el.attrRange("v-else")
	p.errorf(s, e, "v-else used on element <%s> without corresponding v-if.", el.tag)
}
