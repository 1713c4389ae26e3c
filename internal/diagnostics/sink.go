// Package diagnostics carries compiler warnings and errors from the
// pipeline stages to the user. Stages write to a Sink; the build driver
// decides where the messages end up.
package diagnostics

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Sink receives diagnostics. Calls never affect pipeline control flow.
type Sink interface {
	Warn(msg string)
	Error(msg string)
}

// Level is the severity of a recorded diagnostic.
type Level string

const (
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one recorded diagnostic.
type Entry struct {
	Level Level  `json:"level" yaml:"level"`
	Msg   string `json:"msg" yaml:"msg"`
}

// Recorder is a Sink that keeps diagnostics in call order.
// It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ Sink = (*Recorder)(nil)

// Warn records a warning.
func (r *Recorder) Warn(msg string) {
	r.add(LevelWarn, msg)
}

// Error records an error.
func (r *Recorder) Error(msg string) {
	r.add(LevelError, msg)
}

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg})
}

// Entries returns a copy of the recorded diagnostics.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Counts returns the number of recorded warnings and errors.
func (r *Recorder) Counts() (warnings, errors int) {
	for _, e := range r.Entries() {
		switch e.Level {
		case LevelWarn:
			warnings++
		case LevelError:
			errors++
		}
	}
	return warnings, errors
}

// Replay sends the recorded diagnostics to s in order.
func (r *Recorder) Replay(s Sink) {
	for _, e := range r.Entries() {
		switch e.Level {
		case LevelWarn:
			s.Warn(e.Msg)
		case LevelError:
			s.Error(e.Msg)
		}
	}
}

// LogSink writes diagnostics to a charmbracelet logger.
type LogSink struct {
	logger *log.Logger
}

var _ Sink = (*LogSink)(nil)

// NewLogSink returns a sink writing to logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Warn logs msg at warn level.
func (s *LogSink) Warn(msg string) {
	s.logger.Warn(msg)
}

// Error logs msg at error level.
func (s *LogSink) Error(msg string) {
	s.logger.Error(msg)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Warn(string)  {}
func (discard) Error(string) {}
