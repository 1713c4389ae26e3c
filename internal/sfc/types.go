// Package sfc parses single-file components into a descriptor of their
// top-level blocks.
package sfc

// Block types recognized at the top level of a component file.
const (
	BlockTemplate = "template"
	BlockScript   = "script"
	BlockStyle    = "style"
)

// Attrs holds the attributes declared on a block's opening tag.
// Boolean attributes (e.g. scoped) map to the empty string.
type Attrs map[string]string

// Has reports whether the attribute is present.
func (a Attrs) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Block is one top-level element of a component file.
type Block struct {
	Type    string `json:"type" yaml:"type"`
	Content string `json:"content" yaml:"content"`
	Attrs   Attrs  `json:"attrs" yaml:"attrs"`
	Lang    string `json:"lang,omitempty" yaml:"lang,omitempty"`
	Src     string `json:"src,omitempty" yaml:"src,omitempty"`

	// Start and End are byte offsets of the raw content in the source.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// TemplateBlock is the component's <template> block.
type TemplateBlock struct {
	Block `yaml:",inline"`
}

// Functional reports whether the template declares a functional component.
func (t *TemplateBlock) Functional() bool {
	return t != nil && t.Attrs.Has("functional")
}

// ScriptBlock is the component's <script> block.
type ScriptBlock struct {
	Block `yaml:",inline"`
}

// StyleBlock is one <style> block.
type StyleBlock struct {
	Block  `yaml:",inline"`
	Scoped bool `json:"scoped,omitempty" yaml:"scoped,omitempty"`

	// Module is the value of the module attribute; nil when absent.
	Module *string `json:"module,omitempty" yaml:"module,omitempty"`
}

// Descriptor is the parsed structure of one component file.
type Descriptor struct {
	Filename     string         `json:"filename" yaml:"filename"`
	Template     *TemplateBlock `json:"template,omitempty" yaml:"template,omitempty"`
	Script       *ScriptBlock   `json:"script,omitempty" yaml:"script,omitempty"`
	Styles       []*StyleBlock  `json:"styles" yaml:"styles"`
	CustomBlocks []*Block       `json:"customBlocks,omitempty" yaml:"customBlocks,omitempty"`

	// Warnings are recoverable structural problems found while parsing.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Scoped reports whether any style block is scoped. Scoping applies to
// the whole file.
func (d *Descriptor) Scoped() bool {
	for _, s := range d.Styles {
		if s.Scoped {
			return true
		}
	}
	return false
}
