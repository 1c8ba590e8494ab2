package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	InitLogger(level)

	fn()

	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:  "info log",
			level: "info",
			logFn: func() {
				Info("test info message")
			},
			contains: []string{"test info message"},
		},
		{
			name:  "debug log with debug level",
			level: "debug",
			logFn: func() {
				Debug("test debug message")
			},
			contains: []string{"test debug message", "level=DEBUG"},
		},
		{
			name:  "debug log with info level",
			level: "info",
			logFn: func() {
				Debug("test debug message")
			},
			excludes: []string{"test debug message"},
		},
		{
			name:  "error log",
			level: "error",
			logFn: func() {
				Error("test error message")
			},
			contains: []string{"test error message", "level=ERROR"},
		},
		{
			name:  "warn log with fields",
			level: "warn",
			logFn: func() {
				Warn("test warning", Fields{"key1": "value1", "key2": 42})
			},
			contains: []string{"test warning", "level=WARN", "key1=value1", "key2=42"},
		},
		{
			name:  "skip log is informational",
			level: "info",
			logFn: func() {
				Skip("identity filtered", Fields{"identity": "S-1-5-21-1-2-3-1001", "reason": "sid"})
			},
			contains: []string{"identity filtered", "level=INFO", "decision=skip", "reason=sid"},
		},
		{
			name:  "formatted info",
			level: "info",
			logFn: func() {
				Infof("applied %d rules", 3)
			},
			contains: []string{"applied 3 rules"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, tt.logFn)
			for _, want := range tt.contains {
				assert.True(t, strings.Contains(output, want), "output %q should contain %q", output, want)
			}
			for _, notWant := range tt.excludes {
				assert.False(t, strings.Contains(output, notWant), "output %q should not contain %q", output, notWant)
			}
		})
	}
}

func TestInitLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	output := captureOutput(t, "nonsense", func() {
		Debug("hidden")
		Info("visible")
	})
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "visible")
}
