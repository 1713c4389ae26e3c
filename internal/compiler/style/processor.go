package style

import (
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/vuesfc/vuec/internal/compiler"
)

type token struct {
	tt     css.TokenType
	text   string
	offset int
}

func tokenize(src string) []token {
	l := css.NewLexer(parse.NewInputString(src))
	var toks []token
	offset := 0
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return toks
		}
		toks = append(toks, token{tt: tt, text: string(data), offset: offset})
		offset += len(data)
	}
}

var (
	animationNameRE = regexp.MustCompile(`^(-\w+-)?animation-name$`)
	animationRE     = regexp.MustCompile(`^(-\w+-)?animation$`)
	keyframesRE     = regexp.MustCompile(`-?keyframes$`)
)

// processor rewrites one stylesheet in a single pass over its tokens.
// Only the first syntax error is reported; output continues past it.
type processor struct {
	src      string
	filename string
	toks     []token
	pos      int

	id     string
	scoped bool
	trim   bool

	// keyframes maps declared keyframes names to their scoped names.
	keyframes map[string]string

	errs []compiler.Message
}

func process(in compiler.StyleInput) (string, []compiler.Message) {
	p := &processor{
		src:       in.Source,
		filename:  in.Filename,
		toks:      tokenize(in.Source),
		id:        in.ID,
		scoped:    in.Scoped,
		trim:      in.Trim,
		keyframes: map[string]string{},
	}
	if p.scoped {
		p.scanKeyframes()
	}

	var b strings.Builder
	p.rules(&b, true, false)
	out := b.String()
	if p.trim {
		out = strings.TrimSpace(out)
	}
	return out, p.errs
}

// scanKeyframes registers the keyframes declared at the top level or
// inside @media and @supports so that declarations preceding them are
// rewritten too.
func (p *processor) scanKeyframes() {
	chain := []bool{true}
	pending := false
	for i := 0; i < len(p.toks); i++ {
		t := p.toks[i]
		switch t.tt {
		case css.AtKeywordToken:
			name := t.text[1:]
			top := chain[len(chain)-1]
			if top && keyframesRE.MatchString(name) {
				j := i + 1
				for j < len(p.toks) && !isStatementEnd(p.toks[j].tt) {
					j++
				}
				if params := strings.TrimSpace(joinTokens(p.toks[i+1 : j])); params != "" {
					p.keyframes[params] = params + "-" + p.id
				}
			}
			pending = top && (name == "media" || name == "supports")
		case css.LeftBraceToken:
			chain = append(chain, pending)
			pending = false
		case css.RightBraceToken:
			if len(chain) > 1 {
				chain = chain[:len(chain)-1]
			}
			pending = false
		case css.SemicolonToken:
			pending = false
		}
	}
}

func isStatementEnd(tt css.TokenType) bool {
	return tt == css.LeftBraceToken || tt == css.SemicolonToken || tt == css.RightBraceToken
}

// rules writes a list of rules and at-rules until the closing brace of
// the enclosing block or the end of input. It reports whether the closing
// brace was found.
func (p *processor) rules(b *strings.Builder, scope, nested bool) bool {
	var space strings.Builder
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch t.tt {
		case css.WhitespaceToken:
			space.WriteString(t.text)
			p.pos++
			continue
		case css.CommentToken, css.SemicolonToken, css.CDOToken, css.CDCToken:
			p.checkToken(t)
			b.WriteString(space.String())
			space.Reset()
			b.WriteString(t.text)
			p.pos++
			continue
		case css.RightBraceToken:
			p.pos++
			if !nested {
				p.fail(t.offset, "Unexpected }")
				continue
			}
			b.WriteString(p.around(space.String()))
			b.WriteByte('}')
			return true
		}

		b.WriteString(p.around(space.String()))
		space.Reset()
		if t.tt == css.AtKeywordToken {
			p.atRule(b, scope)
		} else {
			p.rule(b, scope)
		}
	}
	b.WriteString(space.String())
	return false
}

// around returns the whitespace written before a rule or before the
// closing brace of a block.
func (p *processor) around(space string) string {
	if p.trim {
		return "\n"
	}
	return space
}

func (p *processor) rule(b *strings.Builder, scope bool) {
	sel := p.prelude()
	if p.pos >= len(p.toks) || p.toks[p.pos].tt != css.LeftBraceToken {
		if len(sel) > 0 && !hasColon(sel) {
			p.fail(sel[0].offset, "Unknown word")
		}
		b.WriteString(joinTokens(sel))
		if p.pos < len(p.toks) && p.toks[p.pos].tt == css.SemicolonToken {
			b.WriteByte(';')
			p.pos++
		}
		return
	}

	if scope && p.scoped {
		b.WriteString(scopeSelectorList(sel, p.id))
	} else {
		b.WriteString(joinTokens(sel))
	}
	p.body(b)
}

func (p *processor) atRule(b *strings.Builder, scope bool) {
	kw := p.toks[p.pos]
	name := kw.text[1:]
	p.pos++
	params := p.prelude()

	b.WriteString(kw.text)
	if scope && p.scoped && keyframesRE.MatchString(name) {
		b.WriteString(p.renameKeyframes(params))
	} else {
		b.WriteString(joinTokens(params))
	}

	if p.pos >= len(p.toks) {
		return
	}
	switch p.toks[p.pos].tt {
	case css.SemicolonToken:
		b.WriteByte(';')
		p.pos++
		return
	case css.RightBraceToken:
		return
	}

	open := p.toks[p.pos]
	switch {
	case keyframesRE.MatchString(name):
		p.pos++
		b.WriteByte('{')
		if !p.rules(b, false, true) {
			p.fail(open.offset, "Unclosed block")
		}
	case name == "media" || name == "supports":
		p.pos++
		b.WriteByte('{')
		if !p.rules(b, scope, true) {
			p.fail(open.offset, "Unclosed block")
		}
	default:
		p.body(b)
	}
}

func (p *processor) renameKeyframes(params []token) string {
	text := joinTokens(params)
	name := strings.TrimSpace(text)
	scoped, ok := p.keyframes[name]
	if !ok {
		return text
	}
	i := strings.Index(text, name)
	return text[:i] + scoped + text[i+len(name):]
}

// body writes a declaration block. p.pos is on its opening brace.
func (p *processor) body(b *strings.Builder) {
	open := p.toks[p.pos]
	p.pos++
	b.WriteByte('{')

	var space string
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch t.tt {
		case css.WhitespaceToken:
			space += t.text
			p.pos++
			continue
		case css.RightBraceToken:
			p.pos++
			b.WriteString(p.around(space))
			b.WriteByte('}')
			return
		case css.SemicolonToken, css.CommentToken:
			p.checkToken(t)
			b.WriteString(space)
			space = ""
			b.WriteString(t.text)
			p.pos++
			continue
		case css.AtKeywordToken:
			b.WriteString(p.around(space))
			space = ""
			p.atRule(b, false)
			continue
		}

		b.WriteString(space)
		decl := p.prelude()
		if p.pos < len(p.toks) && p.toks[p.pos].tt == css.LeftBraceToken {
			b.WriteString(joinTokens(decl))
			p.body(b)
			space = ""
			continue
		}
		decl, space = trimTrailingSpace(decl)
		b.WriteString(p.declaration(decl))
	}
	b.WriteString(space)
	p.fail(open.offset, "Unclosed block")
}

// prelude returns the tokens up to the next '{', ';' or '}' outside
// brackets and leaves p.pos on that token.
func (p *processor) prelude() []token {
	start := p.pos
	var open []int
	for ; p.pos < len(p.toks); p.pos++ {
		t := p.toks[p.pos]
		p.checkToken(t)
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			open = append(open, t.offset)
		case css.RightParenthesisToken, css.RightBracketToken:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		case css.LeftBraceToken, css.SemicolonToken, css.RightBraceToken:
			if len(open) == 0 {
				return p.toks[start:p.pos]
			}
		}
	}
	if len(open) > 0 {
		p.fail(open[0], "Unclosed bracket")
	}
	return p.toks[start:p.pos]
}

// declaration rewrites animation names to their scoped keyframes names.
func (p *processor) declaration(toks []token) string {
	text := joinTokens(toks)
	if len(p.keyframes) == 0 {
		return text
	}
	colon := -1
	for i, t := range toks {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon < 0 {
		return text
	}

	prop := strings.TrimSpace(joinTokens(toks[:colon]))
	lead, value, _ := splitSpace(toks[colon+1:])
	head := joinTokens(toks[:colon+1]) + lead
	v, important := splitImportant(joinTokens(value))

	switch {
	case animationNameRE.MatchString(prop):
		parts := strings.Split(v, ",")
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if name, ok := p.keyframes[part]; ok {
				part = name
			}
			parts[i] = part
		}
		return head + strings.Join(parts, ",") + important
	case animationRE.MatchString(prop):
		parts := strings.Split(v, ",")
		for i, part := range parts {
			vals := strings.Fields(part)
			for j, val := range vals {
				if name, ok := p.keyframes[val]; ok {
					vals[j] = name
					parts[i] = strings.Join(vals, " ")
					break
				}
			}
		}
		return head + strings.Join(parts, ",") + important
	}
	return text
}

func splitImportant(v string) (value, important string) {
	i := strings.LastIndex(v, "!")
	if i < 0 || !strings.EqualFold(strings.TrimSpace(v[i+1:]), "important") {
		return v, ""
	}
	j := len(strings.TrimRight(v[:i], " \t\r\n\f"))
	return v[:j], v[j:]
}

func trimTrailingSpace(toks []token) ([]token, string) {
	var space string
	for len(toks) > 0 && toks[len(toks)-1].tt == css.WhitespaceToken {
		space = toks[len(toks)-1].text + space
		toks = toks[:len(toks)-1]
	}
	return toks, space
}

func hasColon(toks []token) bool {
	for _, t := range toks {
		if t.tt == css.ColonToken {
			return true
		}
	}
	return false
}

func (p *processor) checkToken(t token) {
	switch t.tt {
	case css.BadStringToken:
		p.fail(t.offset, "Unclosed string")
	case css.StringToken:
		if !closedString(t.text) {
			p.fail(t.offset, "Unclosed string")
		}
	case css.BadURLToken:
		p.fail(t.offset, "Unclosed bracket")
	case css.URLToken:
		if !strings.HasSuffix(t.text, ")") {
			p.fail(t.offset, "Unclosed bracket")
		}
	case css.CommentToken:
		if len(t.text) < 4 || !strings.HasSuffix(t.text, "*/") {
			p.fail(t.offset, "Unclosed comment")
		}
	}
}

func closedString(s string) bool {
	if len(s) < 2 || s[len(s)-1] != s[0] {
		return false
	}
	escapes := 0
	for i := len(s) - 2; i > 0 && s[i] == '\\'; i-- {
		escapes++
	}
	return escapes%2 == 0
}

// fail records a syntax error as "file:line:column: reason".
func (p *processor) fail(offset int, reason string) {
	if len(p.errs) > 0 {
		return
	}
	line, col := position(p.src, offset)
	p.errs = append(p.errs, compiler.Errorf("%s:%d:%d: %s", p.filename, line, col, reason))
}

func position(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndexByte(before, '\n')
	return line, col
}
