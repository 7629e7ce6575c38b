package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger: level-filtered, timestamped with
// millisecond precision ("15:04:05.123").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
	})
}

// progress measures one operation and logs its duration on completion.
// Not safe for concurrent done calls; each operation gets its own.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts the clock.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the formatted message with the elapsed time appended,
// e.g. "Rendered 3 formats (1.234s)".
func (p *progress) done(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey namespaces this package's context values.
type ctxKey int

const loggerKey ctxKey = iota

// withLogger attaches l to ctx for retrieval by loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or the package
// default when none is attached, so call sites never need a nil check.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
