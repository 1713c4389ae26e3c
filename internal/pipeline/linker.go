package pipeline

import (
	"bytes"
	"encoding/json"
	"strings"
)

// fallbackScript is the module body used when a component has no script.
const fallbackScript = "module.exports = {};"

// optionsPreamble binds __vue__options__ to the component options,
// whichever export style the script used.
var optionsPreamble = []string{
	"var __vue__options__;",
	"if (exports && exports.__esModule && exports.default) {",
	"  __vue__options__ = exports.default;",
	"} else {",
	"  __vue__options__ = module.exports;",
	"}",
}

// linkInput is everything the linker needs from the other stages.
type linkInput struct {
	Filename string
	Script   *string

	// HasTemplate is set when the component has a template block.
	HasTemplate bool
	Runtime     bool

	// RenderCode binds render and staticRenderFns. Used when Runtime is set.
	RenderCode string

	// Template is the raw template. Used when Runtime is not set.
	Template string

	Functional bool
	Scoped     bool
	ScopeID    string
}

// linker assembles the module body. The order of fragments is fixed:
// script, export normalization, metadata, render code, flags.
type linker struct {
	lines []string
}

func (l *linker) add(lines ...string) {
	l.lines = append(l.lines, lines...)
}

func (l *linker) String() string {
	return strings.Join(l.lines, "\n")
}

func link(in linkInput) string {
	l := &linker{}

	if in.Script != nil {
		l.add(*in.Script)
	} else {
		l.add(fallbackScript)
	}

	l.add(optionsPreamble...)
	l.add("__vue__options__.__file = " + jsString(in.Filename) + ";")

	if in.HasTemplate {
		if in.Runtime {
			l.add(in.RenderCode)
			l.add(
				"__vue__options__.render = render;",
				"__vue__options__.staticRenderFns = staticRenderFns;",
				"__vue__options__._compiled = true;",
			)
		} else {
			l.add("__vue__options__.template = " + jsString(in.Template) + ";")
		}
	}

	if in.Functional {
		l.add("__vue__options__.functional = true;")
	}
	if in.Scoped {
		l.add("__vue__options__._scopeId = " + jsString(in.ScopeID) + ";")
	}
	return l.String()
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
