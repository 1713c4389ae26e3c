package diagnostics

import (
	"bytes"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/vuesfc/vuec/internal/compiler"
)

func TestRecorder_ReplayKeepsOrder(t *testing.T) {
	rec := &Recorder{}
	rec.Warn("w1")
	rec.Error("e1")
	rec.Warn("w2")

	out := &Recorder{}
	rec.Replay(out)
	assert.Equal(t, []Entry{
		{Level: LevelWarn, Msg: "w1"},
		{Level: LevelError, Msg: "e1"},
		{Level: LevelWarn, Msg: "w2"},
	}, out.Entries())

	w, e := rec.Counts()
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, e)
}

func TestRecorder_Concurrent(t *testing.T) {
	rec := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Error("x")
		}()
	}
	wg.Wait()
	assert.Len(t, rec.Entries(), 50)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(log.NewWithOptions(&buf, log.Options{}))
	sink.Warn("careful")
	sink.Error("broken")
	assert.Contains(t, buf.String(), "WARN careful")
	assert.Contains(t, buf.String(), "ERRO broken")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "  a\n  b\n  ", Pad("a\r\nb\n"))
}

type fakeFramer struct{}

func (fakeFramer) CodeFrame(source string, start, end int) string {
	return source[start:end]
}

func TestFormatTemplateErrors_Framed(t *testing.T) {
	errs := []compiler.Message{
		compiler.RangeErrorf(5, 8, "first"),
		compiler.Errorf("second"),
	}
	got := FormatTemplateErrors(errs, "<div>bad</div>", fakeFramer{})
	assert.Equal(t, "\n\n  Errors compiling template:\n\n  first\n\n  bad\n\n  second\n", got)
}

func TestFormatTemplateErrors_Flat(t *testing.T) {
	errs := []compiler.Message{compiler.Errorf("first"), compiler.Errorf("second")}
	got := FormatTemplateErrors(errs, "<div>\n</div>", nil)
	assert.Equal(t, "\n  Error compiling template:\n  <div>\n  </div>\n  - first\n  - second\n", got)
}

func TestFormatStyleErrors(t *testing.T) {
	got := FormatStyleErrors([]compiler.Message{compiler.Errorf("App.vue:1:4: Unclosed block")})
	assert.Equal(t, "\n  Error compiling style:\n  - App.vue:1:4: Unclosed block\n", got)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Warn("x")
		Discard.Error("y")
	})
}
