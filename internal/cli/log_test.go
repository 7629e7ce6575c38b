package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerWritesToSink(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("dataset resolved")

	if !strings.Contains(buf.String(), "dataset resolved") {
		t.Errorf("log output = %q, want it to contain %q", buf.String(), "dataset resolved")
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info passes at info", log.InfoLevel, func(l *log.Logger) { l.Info("msg") }, true},
		{"debug filtered at info", log.InfoLevel, func(l *log.Logger) { l.Debug("msg") }, false},
		{"debug passes at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("msg") }, true},
		{"warn passes at info", log.InfoLevel, func(l *log.Logger) { l.Warn("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	time.Sleep(5 * time.Millisecond)
	prog.done("Rendered 2 formats")

	out := buf.String()
	if !strings.Contains(out, "Rendered 2 formats") {
		t.Errorf("done() output = %q, want the message included", out)
	}
	if !strings.Contains(out, "ms") && !strings.Contains(out, "s)") {
		t.Errorf("done() output = %q, want an elapsed duration", out)
	}
}

func TestLoggerContextRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext() should return the logger stored by withLogger()")
	}
}

func TestLoggerContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext() = nil for bare context, want the default logger")
	}
}
