package style

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

type unitKind int

const (
	unitNode unitKind = iota + 1
	unitPseudo
	unitCombinator
	unitDeepCombinator
	unitDeepPseudo
)

// unit is one piece of a compound selector: a simple selector, a pseudo
// class or element, or a combinator.
type unit struct {
	kind unitKind
	text string
}

func isWhitespaceUnit(u unit) bool {
	return u.kind == unitCombinator && strings.TrimSpace(u.text) == ""
}

// scopeSelectorList adds the scope attribute to every selector of a
// comma-separated selector list.
func scopeSelectorList(toks []token, id string) string {
	var b strings.Builder
	depth := 0
	start := 0
	for i, t := range toks {
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				b.WriteString(scopeSelector(toks[start:i], id))
				b.WriteString(t.text)
				start = i + 1
			}
		}
	}
	b.WriteString(scopeSelector(toks[start:], id))
	return b.String()
}

// scopeSelector inserts [id] after the last simple selector before any
// deep combinator (">>>", "/deep/" or "::v-deep"). Surrounding whitespace is
// kept as written.
func scopeSelector(toks []token, id string) string {
	lead, body, trail := splitSpace(toks)
	units := parseUnits(body)

	insertAt := -1
	for i := range units {
		u := &units[i]
		if u.kind == unitDeepCombinator {
			u.text = " "
			break
		}
		if u.kind == unitDeepPseudo {
			u.text = ""
			if i > 0 && isWhitespaceUnit(units[i-1]) && i+1 < len(units) && isWhitespaceUnit(units[i+1]) {
				units = append(units[:i+1], units[i+2:]...)
			}
			break
		}
		if u.kind == unitNode {
			insertAt = i
		}
	}

	attr := "[" + id + "]"
	var b strings.Builder
	b.WriteString(lead)
	if insertAt < 0 {
		b.WriteString(attr)
	}
	for i, u := range units {
		b.WriteString(u.text)
		if i == insertAt {
			b.WriteString(attr)
		}
	}
	b.WriteString(trail)
	return b.String()
}

func splitSpace(toks []token) (lead string, body []token, trail string) {
	i, j := 0, len(toks)
	for i < j && toks[i].tt == css.WhitespaceToken {
		lead += toks[i].text
		i++
	}
	for j > i && toks[j-1].tt == css.WhitespaceToken {
		trail = toks[j-1].text + trail
		j--
	}
	return lead, toks[i:j], trail
}

func isDelim(t token, s string) bool {
	return t.tt == css.DelimToken && t.text == s
}

func parseUnits(toks []token) []unit {
	var units []unit
	var pendingSpace string
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.tt == css.WhitespaceToken:
			if i+1 < len(toks) && isCombinatorStart(toks, i+1) {
				pendingSpace = t.text
				continue
			}
			if n := len(units); n > 0 && (units[n-1].kind == unitCombinator || units[n-1].kind == unitDeepCombinator) {
				units[n-1].text += t.text
				continue
			}
			units = append(units, unit{kind: unitCombinator, text: t.text})

		case isDelim(t, ">") && i+2 < len(toks) && isDelim(toks[i+1], ">") && isDelim(toks[i+2], ">"):
			units = append(units, unit{kind: unitDeepCombinator, text: pendingSpace + ">>>"})
			pendingSpace = ""
			i += 2

		case isDelim(t, "/") && i+2 < len(toks) && toks[i+1].tt == css.IdentToken &&
			strings.EqualFold(toks[i+1].text, "deep") && isDelim(toks[i+2], "/"):
			units = append(units, unit{kind: unitDeepCombinator, text: pendingSpace + "/deep/"})
			pendingSpace = ""
			i += 2

		case isDelim(t, ">") || isDelim(t, "+") || isDelim(t, "~"):
			units = append(units, unit{kind: unitCombinator, text: pendingSpace + t.text})
			pendingSpace = ""

		case t.tt == css.ColonToken:
			text, next := readPseudo(toks, i)
			kind := unitPseudo
			if text == "::v-deep" {
				kind = unitDeepPseudo
			}
			units = append(units, unit{kind: kind, text: text})
			i = next - 1

		case t.tt == css.LeftBracketToken:
			j := matchClose(toks, i)
			units = append(units, unit{kind: unitNode, text: joinTokens(toks[i:j])})
			i = j - 1

		case isDelim(t, ".") && i+1 < len(toks) && toks[i+1].tt == css.IdentToken:
			units = append(units, unit{kind: unitNode, text: "." + toks[i+1].text})
			i++

		default:
			units = append(units, unit{kind: unitNode, text: t.text})
		}
	}
	return units
}

func isCombinatorStart(toks []token, i int) bool {
	t := toks[i]
	return isDelim(t, ">") || isDelim(t, "+") || isDelim(t, "~") ||
		(isDelim(t, "/") && i+1 < len(toks) && toks[i+1].tt == css.IdentToken && strings.EqualFold(toks[i+1].text, "deep"))
}

// readPseudo reads ":name", "::name" or ":name(...)" starting at toks[i]
// and returns the text and the index after it.
func readPseudo(toks []token, i int) (string, int) {
	var b strings.Builder
	for i < len(toks) && toks[i].tt == css.ColonToken {
		b.WriteString(toks[i].text)
		i++
	}
	if i >= len(toks) {
		return b.String(), i
	}
	switch toks[i].tt {
	case css.IdentToken:
		b.WriteString(toks[i].text)
		i++
	case css.FunctionToken:
		j := matchClose(toks, i)
		b.WriteString(joinTokens(toks[i:j]))
		i = j
	}
	return b.String(), i
}

// matchClose returns the index just past the bracket or parenthesis that
// closes the one opened at toks[i].
func matchClose(toks []token, i int) int {
	depth := 0
	for j := i; j < len(toks); j++ {
		switch toks[j].tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(toks)
}

func joinTokens(toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.text)
	}
	return b.String()
}
