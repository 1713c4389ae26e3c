package template

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	tdparse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

var interpolationRE = regexp.MustCompile(`\{\{((?:.|\r?\n)+?)\}\}`)

// parseText turns text containing {{ }} interpolations into a string
// concatenation expression. ok is false when text has no interpolation.
func parseText(text string) (string, bool) {
	matches := interpolationRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return "", false
	}

	var tokens []string
	last := 0
	for _, m := range matches {
		if m[0] > last {
			tokens = append(tokens, jsonString(text[last:m[0]]))
		}
		exp := parseFilters(strings.TrimSpace(text[m[2]:m[3]]))
		tokens = append(tokens, "_s("+exp+")")
		last = m[1]
	}
	if last < len(text) {
		tokens = append(tokens, jsonString(text[last:]))
	}
	return strings.Join(tokens, "+"), true
}

// interpolations returns the raw {{ }} expressions in text.
func interpolations(text string) []string {
	var out []string
	for _, m := range interpolationRE.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// parseFilters rewrites "exp | a | b(1)" into filter calls.
func parseFilters(exp string) string {
	parts := splitFilters(exp)
	if len(parts) == 1 {
		return exp
	}
	out := strings.TrimSpace(parts[0])
	for _, f := range parts[1:] {
		out = wrapFilter(out, strings.TrimSpace(f))
	}
	return out
}

func wrapFilter(exp, filter string) string {
	i := strings.IndexByte(filter, '(')
	if i < 0 {
		return fmt.Sprintf("_f(%s)(%s)", jsonString(filter), exp)
	}
	name, args := filter[:i], filter[i+1:]
	if args == ")" {
		return fmt.Sprintf("_f(%s)(%s%s", jsonString(name), exp, args)
	}
	return fmt.Sprintf("_f(%s)(%s,%s", jsonString(name), exp, args)
}

func splitFilters(exp string) []string {
	var parts []string
	var quote byte
	depth := 0
	last := 0
	for i := 0; i < len(exp); i++ {
		c := exp[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '|':
			if depth != 0 {
				continue
			}
			prevPipe := i > 0 && exp[i-1] == '|'
			nextPipe := i+1 < len(exp) && exp[i+1] == '|'
			if prevPipe || nextPipe {
				continue
			}
			parts = append(parts, exp[last:i])
			last = i + 1
		}
	}
	return append(parts, exp[last:])
}

// checkExpression parses exp as the operand of a return statement, the way
// the render function will evaluate it. It returns the parser's reason when
// exp is not valid JavaScript, or "".
func checkExpression(exp string) string {
	_, err := js.Parse(tdparse.NewInputString("return "+exp), js.Options{Inline: true})
	if err == nil {
		return ""
	}
	var perr *tdparse.Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}

func expressionError(reason, exp, raw string) string {
	return fmt.Sprintf("invalid expression: %s in\n\n    %s\n\n  Raw expression: %s\n",
		reason, exp, strings.TrimSpace(raw))
}
