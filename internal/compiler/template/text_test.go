package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseText(t *testing.T) {
	exp, ok := parseText("a {{ b }} c {{ d | e }}")
	assert.True(t, ok)
	assert.Equal(t, `"a "+_s(b)+" c "+_s(_f("e")(d))`, exp)

	_, ok = parseText("no interpolation")
	assert.False(t, ok)
}

func TestParseFilters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a", "a"},
		{"a || b", "a || b"},
		{"a | f", `_f("f")(a)`},
		{"a | f()", `_f("f")(a)`},
		{"a | f(1, 2) | g", `_f("g")(_f("f")(a,1, 2))`},
		{"'x|y' | f", `_f("f")('x|y')`},
		{"fn(a | b)", "fn(a | b)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFilters(tt.in))
		})
	}
}

func TestCheckExpression(t *testing.T) {
	valid := []string{
		"a.b(c[0], {d: 1})",
		"'(' + \")\"",
		"count++; emit('done', $event)",
		"{ item, index }",
		"msg | capitalize",
		"items.filter(i => i.done).length",
		"",
	}
	for _, exp := range valid {
		t.Run(exp, func(t *testing.T) {
			assert.Empty(t, checkExpression(exp))
		})
	}

	invalid := []string{
		"(a",
		"a)",
		"[a}",
		"'abc",
		"a b",
		"a +",
	}
	for _, exp := range invalid {
		t.Run(exp, func(t *testing.T) {
			assert.NotEmpty(t, checkExpression(exp))
		})
	}
}

func TestGenAssignmentCode(t *testing.T) {
	assert.Equal(t, "a=$event", genAssignmentCode("a", "$event"))
	assert.Equal(t, `$set(a.b, "c", $event)`, genAssignmentCode("a.b.c", "$event"))
	assert.Equal(t, `$set(a, key, $event)`, genAssignmentCode("a[key]", "$event"))
	assert.Equal(t, `$set(a[0], "b", $event)`, genAssignmentCode("a[0].b", "$event"))
}

func TestSplitModifiers(t *testing.T) {
	name, mods := splitModifiers("@click.stop.prevent")
	assert.Equal(t, "@click", name)
	assert.Equal(t, []string{"stop", "prevent"}, mods)

	name, mods = splitModifiers(":[key.a]")
	assert.Equal(t, ":[key.a]", name)
	assert.Nil(t, mods)
}

func TestParseStyleText(t *testing.T) {
	assert.Equal(t, `{"color":"red","background":"url(a;b)"}`, parseStyleText("color: red; background: url(a;b);"))
	assert.Equal(t, `{"color":"blue"}`, parseStyleText("color: red; color: blue"))
}
