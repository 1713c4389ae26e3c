package style

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuesfc/vuec/internal/compiler"
)

func compileScoped(t *testing.T, src string) string {
	t.Helper()
	res, err := New().CompileStyle(context.Background(), compiler.StyleInput{
		Source:   src,
		Filename: "App.vue",
		ID:       "data-v-1",
		Scoped:   true,
		Trim:     true,
	})
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	return res.Code
}

func TestCompileStyle_Scoped(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "descendant with pseudo",
			src:  ".a .b:hover { color: red; }",
			want: ".a .b[data-v-1]:hover { color: red;\n}",
		},
		{
			name: "deep combinator",
			src:  ".a >>> .b {}",
			want: ".a[data-v-1] .b {\n}",
		},
		{
			name: "deep slash",
			src:  ".a /deep/ .b {}",
			want: ".a[data-v-1] .b {\n}",
		},
		{
			name: "deep pseudo",
			src:  ".a ::v-deep .b {}",
			want: ".a[data-v-1] .b {\n}",
		},
		{
			name: "pseudo only",
			src:  ":hover {}",
			want: "[data-v-1]:hover {\n}",
		},
		{
			name: "selector list",
			src:  "a, b {}",
			want: "a[data-v-1], b[data-v-1] {\n}",
		},
		{
			name: "media",
			src:  "@media (max-width: 10px) { .a { color: red } }",
			want: "@media (max-width: 10px) {\n.a[data-v-1] { color: red\n}\n}",
		},
		{
			name: "keyframes",
			src:  ".a { animation: fade 1s; }\n@keyframes fade { from { opacity: 0 } }",
			want: ".a[data-v-1] { animation: fade-data-v-1 1s;\n}\n@keyframes fade-data-v-1 {\nfrom { opacity: 0\n}\n}",
		},
		{
			name: "animation name list",
			src:  "@keyframes fade {}\n.a { animation-name: fade, other }",
			want: "@keyframes fade-data-v-1 {\n}\n.a[data-v-1] { animation-name: fade-data-v-1,other\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compileScoped(t, tt.src))
		})
	}
}

func TestCompileStyle_Unscoped(t *testing.T) {
	src := "  .a { color: red }  "
	res, err := New().CompileStyle(context.Background(), compiler.StyleInput{Source: src, Filename: "App.vue"})
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, src, res.Code)
}

func TestCompileStyle_Trim(t *testing.T) {
	res, err := New().CompileStyle(context.Background(), compiler.StyleInput{
		Source:   "\n\n.a{color:red}\n\n\n.b{}\n",
		Filename: "App.vue",
		Trim:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, ".a{color:red\n}\n.b{\n}", res.Code)
}

func TestCompileStyle_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unclosed block", ".a {\n  color: red;\n", "App.vue:1:4: Unclosed block"},
		{"unexpected brace", "a {}\n}", "App.vue:2:1: Unexpected }"},
		{"unclosed string", `.a { content: "x; }`, "App.vue:1:15: Unclosed string"},
		{"unclosed comment", "/* x", "App.vue:1:1: Unclosed comment"},
		{"unclosed bracket", ".a:not(.b {}", "App.vue:1:4: Unclosed bracket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New().CompileStyle(context.Background(), compiler.StyleInput{
				Source:   tt.src,
				Filename: "App.vue",
				Trim:     true,
			})
			require.NoError(t, err)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.want, res.Errors[0].Msg)
		})
	}
}

func TestCompileStyle_PartialOutput(t *testing.T) {
	res, err := New().CompileStyle(context.Background(), compiler.StyleInput{
		Source:   ".a {\n  color: red;\n",
		Filename: "App.vue",
		Trim:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, ".a {\n  color: red;", res.Code)
}

func TestCompileStyle_UnknownLang(t *testing.T) {
	res, err := New().CompileStyle(context.Background(), compiler.StyleInput{
		Source:         ".a {}",
		Filename:       "App.vue",
		PreprocessLang: "scss",
	})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Component App.vue uses lang scss for style. Please install the language preprocessor.", res.Errors[0].Msg)
	assert.Equal(t, ".a {}", res.Code)
}

func TestCompileStyle_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().CompileStyle(ctx, compiler.StyleInput{Source: ".a {}"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScopeSelectorList(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".a > .b", ".a > .b[x]"},
		{"a:not(.b) c", "a:not(.b) c[x]"},
		{`input[type="text"]`, `input[type="text"][x]`},
		{">>> .b", "[x] .b"},
		{"#id::before", "#id[x]::before"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, scopeSelectorList(tokenize(tt.in), "x"))
		})
	}
}
