package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

// NopLogger returns a logger for tests that don't inspect log output
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// LogRecord is one decoded JSON log line
type LogRecord map[string]any

// Level returns the record's level, e.g. "ERROR"
func (r LogRecord) Level() string {
	s, _ := r[slog.LevelKey].(string)
	return s
}

// Message returns the record's message
func (r LogRecord) Message() string {
	s, _ := r[slog.MessageKey].(string)
	return s
}

// LogCapture collects JSON log lines written by a logger from CaptureLogger
type LogCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *LogCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Records decodes every line logged so far
func (c *LogCapture) Records() []LogRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	var records []LogRecord
	dec := json.NewDecoder(bytes.NewReader(c.buf.Bytes()))
	for dec.More() {
		var r LogRecord
		if err := dec.Decode(&r); err != nil {
			break
		}
		records = append(records, r)
	}
	return records
}

// Find returns the first record with msg
func (c *LogCapture) Find(msg string) (LogRecord, bool) {
	for _, r := range c.Records() {
		if r.Message() == msg {
			return r, true
		}
	}
	return nil, false
}

// CaptureLogger returns a debug-level JSON logger whose output can be read
// back in assertions
func CaptureLogger() (*slog.Logger, *LogCapture) {
	c := &LogCapture{}
	return slog.New(slog.NewJSONHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug})), c
}
