package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCodeFrame(t *testing.T) {
	source := "<div>\n  <span>\n</div>"
	start := strings.Index(source, "<span>")
	end := start + len("<span>")

	frame := GenerateCodeFrame(source, start, end)

	want := strings.Join([]string{
		"1  |  <div>",
		"2  |    <span>",
		"   |    ^^^^^^",
		"3  |  </div>",
	}, "\n")
	assert.Equal(t, want, frame)
}

func TestGenerateCodeFrame_Context(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "f", "g"}
	source := strings.Join(lines, "\n")
	// "d" is on line 4
	start := strings.Index(source, "d")

	frame := GenerateCodeFrame(source, start, start+1)

	rows := strings.Split(frame, "\n")
	assert.Equal(t, "2  |  b", rows[0], "two lines of leading context")
	assert.Equal(t, "6  |  f", rows[len(rows)-1], "two lines of trailing context")
	assert.Contains(t, rows, "   |  ^")
}

func TestGenerateCodeFrame_MultiLineRange(t *testing.T) {
	source := "<ul>\n<li>\n</ul>"
	frame := GenerateCodeFrame(source, 0, len("<ul>\n<li>"))

	assert.Contains(t, frame, "1  |  <ul>\n   |  ^^^^")
	assert.Contains(t, frame, "2  |  <li>\n   |  ^^^^")
}

func TestGenerateCodeFrame_ClampsRange(t *testing.T) {
	var frame string
	assert.NotPanics(t, func() {
		frame = GenerateCodeFrame("abc", -5, 100)
	})
	assert.Equal(t, "1  |  abc\n   |  ^^^", frame)
}
