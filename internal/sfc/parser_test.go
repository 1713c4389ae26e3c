package sfc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullComponent = `<template functional>
  <div class="app">{{ msg }}</div>
</template>

<script>
export default {
  data() { return { msg: 'hi' } }
}
</script>

<style scoped lang="css">
.app { color: red; }
</style>
<style module>
.b { color: blue; }
</style>
<i18n>{"en": {}}</i18n>
`

func TestParse_AllBlocks(t *testing.T) {
	d := Parse(fullComponent, "App.vue", DefaultParseOptions())

	require.NotNil(t, d.Template)
	require.NotNil(t, d.Script)
	require.Len(t, d.Styles, 2)
	require.Len(t, d.CustomBlocks, 1)
	assert.Empty(t, d.Warnings)

	assert.Equal(t, "App.vue", d.Filename)
	assert.True(t, d.Template.Functional())
	assert.Equal(t, "\n<div class=\"app\">{{ msg }}</div>\n", d.Template.Content)

	assert.True(t, d.Styles[0].Scoped)
	assert.Equal(t, "css", d.Styles[0].Lang)
	assert.Nil(t, d.Styles[0].Module)

	assert.False(t, d.Styles[1].Scoped)
	require.NotNil(t, d.Styles[1].Module)
	assert.Equal(t, "", *d.Styles[1].Module)

	assert.Equal(t, "i18n", d.CustomBlocks[0].Type)
	assert.Equal(t, `{"en": {}}`, strings.TrimLeft(d.CustomBlocks[0].Content, "\n"))
	assert.True(t, d.Scoped())
}

func TestParse_Offsets(t *testing.T) {
	src := "<template><div>hi</div></template>"
	d := Parse(src, "a.vue", DefaultParseOptions())

	require.NotNil(t, d.Template)
	assert.Equal(t, len("<template>"), d.Template.Start)
	assert.Equal(t, len(src)-len("</template>"), d.Template.End)
	assert.Equal(t, "<div>hi</div>", src[d.Template.Start:d.Template.End])
}

func TestParse_PadLine(t *testing.T) {
	d := Parse(fullComponent, "App.vue", DefaultParseOptions())

	t.Run("plain script pads with comment lines", func(t *testing.T) {
		lines := strings.Split(d.Script.Content, "\n")
		// <script> opens on line 5, so four padding lines precede the content.
		assert.Equal(t, []string{"//", "//", "//", "//"}, lines[:4])
		assert.Equal(t, "", lines[4])
		assert.Equal(t, "export default {", lines[5])
	})

	t.Run("style pads with newlines", func(t *testing.T) {
		styleLine := strings.Index(d.Styles[0].Content, ".app")
		prefix := d.Styles[0].Content[:styleLine]
		assert.Equal(t, 11, strings.Count(prefix, "\n"), ".app sits on line 12 of the file")
		assert.Equal(t, "", strings.TrimLeft(prefix, "\n"))
	})

	t.Run("template is never padded", func(t *testing.T) {
		assert.False(t, strings.HasPrefix(d.Template.Content, "\n\n"))
	})
}

func TestParse_PadSpace(t *testing.T) {
	src := "<template><p/></template>\n<style>.a{}</style>"
	d := Parse(src, "a.vue", ParseOptions{Pad: PadSpace})

	require.Len(t, d.Styles, 1)
	want := strings.Repeat(" ", len("<template><p/></template>")) + "\n" + strings.Repeat(" ", len("<style>")) + ".a{}"
	assert.Equal(t, want, d.Styles[0].Content)
}

func TestParse_NoPad(t *testing.T) {
	src := "<template><p/></template>\n<script>module.exports = {}</script>"
	d := Parse(src, "a.vue", ParseOptions{})

	require.NotNil(t, d.Script)
	assert.Equal(t, "module.exports = {}", d.Script.Content)
}

func TestParse_LangScriptPadsWithNewlines(t *testing.T) {
	src := "<template><p/></template>\n<script lang=\"ts\">export default {}</script>"
	d := Parse(src, "a.vue", DefaultParseOptions())

	require.NotNil(t, d.Script)
	assert.Equal(t, "ts", d.Script.Lang)
	assert.Equal(t, "\nexport default {}", d.Script.Content)
}

func TestParse_Deindent(t *testing.T) {
	src := "<style>\n    .a {\n      color: red;\n    }\n</style>"

	t.Run("removes shared indentation", func(t *testing.T) {
		d := Parse(src, "a.vue", ParseOptions{})
		assert.Equal(t, "\n.a {\n  color: red;\n}\n", d.Styles[0].Content)
	})

	t.Run("can be disabled", func(t *testing.T) {
		d := Parse(src, "a.vue", ParseOptions{NoDeindent: true})
		assert.Equal(t, "\n    .a {\n      color: red;\n    }\n", d.Styles[0].Content)
	})
}

func TestParse_NestedTemplates(t *testing.T) {
	src := `<template><div><template v-if="ok"><span/></template><br></div></template>`
	d := Parse(src, "a.vue", DefaultParseOptions())

	require.NotNil(t, d.Template)
	assert.Equal(t, `<div><template v-if="ok"><span/></template><br></div>`, d.Template.Content)
}

func TestParse_RawTextBlocks(t *testing.T) {
	src := "<script>\nif (a < b && c > d) { s = '<div>' }\n</script>"
	d := Parse(src, "a.vue", ParseOptions{})

	require.NotNil(t, d.Script)
	assert.Equal(t, "\nif (a < b && c > d) { s = '<div>' }\n", d.Script.Content)
}

func TestParse_DuplicateBlocks(t *testing.T) {
	src := "<template><a/></template><template><b/></template><script>1</script><script>2</script>"
	d := Parse(src, "a.vue", ParseOptions{})

	require.NotNil(t, d.Template)
	assert.Equal(t, "<b/>", d.Template.Content)
	assert.Equal(t, "2", d.Script.Content)
	assert.Len(t, d.Warnings, 2)
	assert.Contains(t, d.Warnings[0], "only one <template>")
	assert.Contains(t, d.Warnings[1], "only one <script>")
}

func TestParse_UnclosedBlock(t *testing.T) {
	d := Parse("<template><div>hi</div>", "a.vue", DefaultParseOptions())

	require.NotNil(t, d.Template)
	assert.Equal(t, "<div>hi</div>", d.Template.Content)
	assert.Equal(t, 23, d.Template.End)
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, "tag <template> has no matching end tag.", d.Warnings[0])
}

func TestParse_UnbalancedTemplateMarkup(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"unclosed inner tag", "<div><span></div>"},
		{"implicitly closed list items", "<ul><li>a<li>b</ul>"},
		{"implicitly closed paragraph", "<div><p>x<div>y</div></div>"},
		{"stray end tag", "<div></span></div>"},
		{"stray end tag of the block name", "<div></script></div>"},
		{"less-than in interpolation", "<div>{{ a<b }}</div>"},
		{"self-closing and void elements", "<div><my-comp/><input><br/></div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "<template>" + tt.template + "</template>\n" +
				"<script>module.exports = {a: 1}</script>\n" +
				"<style>.a {}</style>\n"
			d := Parse(src, "a.vue", ParseOptions{})

			require.NotNil(t, d.Template)
			assert.Equal(t, tt.template, d.Template.Content)
			require.NotNil(t, d.Script)
			assert.Equal(t, "module.exports = {a: 1}", d.Script.Content)
			require.Len(t, d.Styles, 1)
			assert.Equal(t, ".a {}", d.Styles[0].Content)
			assert.Empty(t, d.Warnings)
		})
	}
}

func TestParse_StrayTopLevelEndTag(t *testing.T) {
	d := Parse("</div><template><p>x</p></template>", "a.vue", ParseOptions{})

	require.NotNil(t, d.Template)
	assert.Equal(t, "<p>x</p>", d.Template.Content)
	assert.Empty(t, d.CustomBlocks)
}

func TestPadSpace(t *testing.T) {
	assert.Equal(t, "   \n  ", padSpace("a\tb\ncd"))
	assert.Equal(t, "    ", padSpace("a\U0001F600b"), "astral characters take two columns")
	assert.Equal(t, " \u2028 ", padSpace("a\u2028b"))
}

func TestParse_Empty(t *testing.T) {
	d := Parse("", "a.vue", DefaultParseOptions())

	assert.Nil(t, d.Template)
	assert.Nil(t, d.Script)
	assert.NotNil(t, d.Styles)
	assert.Empty(t, d.Styles)
	assert.False(t, d.Scoped())
}

func TestDeindent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no indentation", "a\n  b", "a\n  b"},
		{"spaces", "\n  a\n    b\n", "\na\n  b\n"},
		{"tabs", "\t\ta\n\tb", "\ta\nb"},
		{"blank lines are emptied", "\n  a\n \n  b", "\na\n\nb"},
		{"crlf is normalized", "\r\n  a\r\n  b", "\na\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deindent(tt.in))
		})
	}
}
