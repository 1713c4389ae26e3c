// Package template is the built-in template compiler. It turns template
// markup into render function code in three passes: parse the markup into
// an element tree, mark static subtrees, and generate code.
package template

import (
	"context"
	"strings"

	"github.com/vuesfc/vuec/internal/compiler"
)

// Compiler implements compiler.TemplateCompiler and compiler.CodeFramer.
type Compiler struct{}

var (
	_ compiler.TemplateCompiler = (*Compiler)(nil)
	_ compiler.CodeFramer       = (*Compiler)(nil)
)

// New returns a template compiler.
func New() *Compiler {
	return &Compiler{}
}

// CompileTemplate compiles in.Source into code that binds render and
// staticRenderFns. Template problems are returned as result errors and
// never abort compilation.
func (c *Compiler) CompileTemplate(ctx context.Context, in compiler.TemplateInput) (*compiler.TemplateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &compiler.TemplateResult{Source: in.Source}
	if in.Lang != "" && in.Lang != "html" {
		res.Code = "var render = function () {}\nvar staticRenderFns = []"
		res.Errors = []compiler.Message{compiler.Errorf(
			"Component %s uses lang %s for template. Please install the language preprocessor.", in.Filename, in.Lang)}
		return res, nil
	}

	p := parse(in.Source)
	optimize(p.root)
	g := &generator{p: p}
	render := g.generate(p.root)

	staticFns := make([]string, len(g.staticRenderFns))
	for i, fn := range g.staticRenderFns {
		staticFns[i] = toFunction(fn, in.IsFunctional)
	}
	res.Code = "var render = " + toFunction(render, in.IsFunctional) + "\n" +
		"var staticRenderFns = [" + strings.Join(staticFns, ",") + "]"
	res.Errors = p.errors
	res.Tips = p.tips
	return res, nil
}

// CodeFrame renders the template source around an error range.
func (c *Compiler) CodeFrame(source string, start, end int) string {
	return compiler.GenerateCodeFrame(source, start, end)
}

// toFunction wraps a "with(this){...}" body in a function expression.
// Functional components receive the render context as _vm.
func toFunction(body string, functional bool) string {
	if !functional {
		return "function () {" + body + "}"
	}
	body = strings.Replace(body, "with(this)", "with(_vm)", 1)
	return "function (_h,_vm) {var _c=_vm._c;" + body + "}"
}

func tipf(format string, args ...any) compiler.Message {
	return compiler.Errorf(format, args...)
}

func tipRange(start, end int, format string, args ...any) compiler.Message {
	return compiler.RangeErrorf(start, end, format, args...)
}
