// Package style is the built-in style compiler. It scopes selectors and
// keyframes to a component, normalizes whitespace, and reports syntax
// errors in "file:line:column: reason" form.
package style

import (
	"context"

	"github.com/vuesfc/vuec/internal/compiler"
)

// Compiler implements compiler.StyleCompiler for plain CSS.
type Compiler struct{}

var _ compiler.StyleCompiler = (*Compiler)(nil)

// New returns a style compiler.
func New() *Compiler {
	return &Compiler{}
}

// CompileStyle compiles one style block. Blocks in a language other than
// CSS are reported and then compiled as CSS.
func (c *Compiler) CompileStyle(ctx context.Context, in compiler.StyleInput) (*compiler.StyleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &compiler.StyleResult{}
	switch in.PreprocessLang {
	case "", "css", "postcss":
	default:
		res.Errors = append(res.Errors, compiler.Errorf(
			"Component %s uses lang %s for style. Please install the language preprocessor.", in.Filename, in.PreprocessLang))
	}

	code, errs := process(in)
	res.Code = code
	res.Errors = append(res.Errors, errs...)
	return res, nil
}
