// Package pipeline compiles one single-file component into a module and a
// stylesheet. It parses the file, runs the template and style compilers
// concurrently, and links the results into the module body.
package pipeline

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vuesfc/vuec/internal/compiler"
	"github.com/vuesfc/vuec/internal/diagnostics"
	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/output"
	"github.com/vuesfc/vuec/internal/sfc"
)

const (
	moduleExt = ".js"
	styleExt  = ".css"
)

// pipeline implements the Pipeline interface.
type pipeline struct {
	template compiler.TemplateCompiler
	style    compiler.StyleCompiler
	opts     Options
}

// New creates a Pipeline backed by the given capabilities.
func New(template compiler.TemplateCompiler, style compiler.StyleCompiler, opts Options) Pipeline {
	return &pipeline{
		template: template,
		style:    style,
		opts:     opts,
	}
}

// Compile executes the pipeline for one file.
//
// Phase sequence:
//  1. PARSE:    sfc.Parse() → *sfc.Descriptor, sfc.ScopeID()
//  2. GENERATE: template and every non-blank style block, concurrently
//  3. REPLAY:   stage diagnostics → sink (descriptor, template, styles)
//  4. LINK:     module body + joined CSS → artifacts
func (p *pipeline) Compile(ctx context.Context, file *SourceFile, sink diagnostics.Sink) (*Result, error) {
	if file.IsNull() {
		return nil, nil
	}
	if file.IsStream() {
		sink.Error(oerrors.ErrStreamingNotSupported.Error())
		return nil, &FileError{Path: file.Relative, Err: oerrors.ErrStreamingNotSupported}
	}

	// Phase 1: PARSE
	desc := sfc.Parse(string(file.Contents), file.Relative, p.opts.Parse)
	scopeID := sfc.ScopeID(file.Relative)
	scoped := desc.Scoped()
	functional := desc.Template.Functional()

	// Phase 2: GENERATE. Each stage records into its own recorder so the
	// sink sees a stable order whatever the scheduling.
	parseRec := &diagnostics.Recorder{}
	for _, w := range desc.Warnings {
		parseRec.Warn(w)
	}
	templateRec := &diagnostics.Recorder{}
	styleRecs := make([]*diagnostics.Recorder, len(desc.Styles))
	styleCode := make([]string, len(desc.Styles))
	var renderCode string

	g, gctx := errgroup.WithContext(ctx)
	if desc.Template != nil && p.opts.Runtime {
		g.Go(func() error {
			code, err := p.compileTemplate(gctx, desc, functional, templateRec)
			renderCode = code
			return err
		})
	}
	for i, style := range desc.Styles {
		if strings.TrimSpace(style.Content) == "" {
			continue
		}
		rec := &diagnostics.Recorder{}
		styleRecs[i] = rec
		g.Go(func() error {
			code, err := p.compileStyle(gctx, desc.Filename, style, scopeID, scoped, rec)
			styleCode[i] = code
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &FileError{Path: file.Relative, Err: err}
	}

	// Phase 3: REPLAY
	res := &Result{Descriptor: desc, ScopeID: scopeID}
	recorders := append([]*diagnostics.Recorder{parseRec, templateRec}, styleRecs...)
	for _, rec := range recorders {
		if rec == nil {
			continue
		}
		w, e := rec.Counts()
		res.Warnings += w
		res.Errors += e
		rec.Replay(sink)
	}

	// Phase 4: LINK
	in := linkInput{
		Filename:    desc.Filename,
		HasTemplate: desc.Template != nil,
		Runtime:     p.opts.Runtime,
		RenderCode:  renderCode,
		Functional:  functional,
		Scoped:      scoped,
		ScopeID:     scopeID,
	}
	if desc.Script != nil {
		in.Script = &desc.Script.Content
	}
	if desc.Template != nil {
		in.Template = desc.Template.Content
	}
	res.Module = derive(file, moduleExt, link(in))

	var css []string
	for _, code := range styleCode {
		if code != "" {
			css = append(css, code)
		}
	}
	if len(css) > 0 {
		res.Style = derive(file, styleExt, strings.Join(css, "\n"))
	}

	output.Debug("compiled component",
		"file", file.Relative,
		"scopeId", scopeID,
		"styles", len(css),
		"warnings", res.Warnings,
		"errors", res.Errors,
	)
	return res, nil
}

func (p *pipeline) compileTemplate(ctx context.Context, desc *sfc.Descriptor, functional bool, sink diagnostics.Sink) (string, error) {
	res, err := p.template.CompileTemplate(ctx, compiler.TemplateInput{
		Source:       desc.Template.Content,
		Filename:     desc.Filename,
		Lang:         desc.Template.Lang,
		IsFunctional: functional,
	})
	if err != nil {
		return "", err
	}

	for _, tip := range res.Tips {
		sink.Warn(tip.Msg)
	}
	if len(res.Errors) > 0 {
		var framer compiler.CodeFramer
		if p.opts.OutputSourceRange {
			framer, _ = p.template.(compiler.CodeFramer)
		}
		sink.Error(diagnostics.FormatTemplateErrors(res.Errors, res.Source, framer))
	}
	return res.Code, nil
}

func (p *pipeline) compileStyle(ctx context.Context, filename string, style *sfc.StyleBlock, scopeID string, scoped bool, sink diagnostics.Sink) (string, error) {
	lang := style.Lang
	if lang == "" {
		lang = "css"
	}
	res, err := p.style.CompileStyle(ctx, compiler.StyleInput{
		Source:         style.Content,
		Filename:       filename,
		ID:             scopeID,
		Scoped:         scoped,
		Trim:           true,
		PreprocessLang: lang,
	})
	if err != nil {
		return "", err
	}
	if len(res.Errors) > 0 {
		sink.Error(diagnostics.FormatStyleErrors(res.Errors))
	}
	return res.Code, nil
}
