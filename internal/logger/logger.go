// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides the progress-style logger used by every clockmeta
// operation. Lines are indented with a "|----->" marker per level, and
// progress blocks report elapsed time when they finish.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultIndent is the indent level used when callers have no nesting.
const DefaultIndent = 1

// Logger wraps a zap logger with indent levels and timed progress blocks.
// A Logger is scoped to one operation and is not safe for concurrent use.
type Logger struct {
	zl      *zap.Logger
	created time.Time
	blocks  []time.Time
	now     func() time.Time
}

// New returns a Logger named after the operation that writes console lines
// to w. Verbose enables debug lines.
func New(name string, w io.Writer, verbose bool) *Logger {
	encCfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		NameKey:          "logger",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return wrap(zap.New(core).Named(name))
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return wrap(zap.NewNop())
}

func wrap(zl *zap.Logger) *Logger {
	return &Logger{zl: zl, created: time.Now(), now: time.Now}
}

// Indent returns the line marker for the given indent level.
func Indent(level int) string {
	if level < 1 {
		level = 1
	}
	return "|" + strings.Repeat("-----", level) + "> "
}

// FirstInfo logs the opening line of an operation.
func (l *Logger) FirstInfo(msg string) {
	l.zl.Info(Indent(DefaultIndent) + msg)
}

// Info logs msg at the given indent level.
func (l *Logger) Info(msg string, indent int) {
	l.zl.Info(Indent(indent) + msg)
}

// Warn logs msg as a warning at the given indent level.
func (l *Logger) Warn(msg string, indent int) {
	l.zl.Warn(Indent(indent) + msg)
}

// Debug logs msg at the given indent level when verbose output is enabled.
func (l *Logger) Debug(msg string, indent int) {
	l.zl.Debug(Indent(indent) + msg)
}

// StartProgress opens a timed block. Blocks nest; each FinishProgress
// closes the most recently started one.
func (l *Logger) StartProgress(msg string, indent int) {
	l.blocks = append(l.blocks, l.now())
	l.zl.Info(Indent(indent) + msg)
}

// FinishProgress closes the innermost block and logs its elapsed time.
func (l *Logger) FinishProgress(msg string, indent int) {
	var elapsed time.Duration
	if n := len(l.blocks); n > 0 {
		elapsed = l.now().Sub(l.blocks[n-1])
		l.blocks = l.blocks[:n-1]
	}
	l.zl.Info(fmt.Sprintf("%s%s [%.4fs]", Indent(indent), msg, elapsed.Seconds()),
		zap.Duration("elapsed", elapsed))
}

// Done logs the closing line of an operation with its total elapsed time
// and flushes the underlying logger.
func (l *Logger) Done() {
	elapsed := l.now().Sub(l.created)
	l.zl.Info(fmt.Sprintf("Done! [%.4fs]", elapsed.Seconds()), zap.Duration("elapsed", elapsed))
	_ = l.zl.Sync()
}

// ReportHook returns a reporter for one download. It logs at every quarter
// of the announced size; Finish logs the final byte count at debug level.
func (l *Logger) ReportHook(indent int) *ProgressReporter {
	return &ProgressReporter{log: l, indent: indent}
}

// ProgressReporter logs download progress for a single transfer.
type ProgressReporter struct {
	log      *Logger
	indent   int
	lastStep int64
}

// Update records that written of total bytes have been received. A total
// of zero or less means the server did not announce a length.
func (p *ProgressReporter) Update(written, total int64) {
	if total <= 0 {
		return
	}
	step := written * 4 / total
	if step <= p.lastStep {
		return
	}
	p.lastStep = step
	p.log.zl.Info(fmt.Sprintf("%sDownloaded %d%% (%s of %s)", Indent(p.indent),
		written*100/total, humanize.Bytes(uint64(written)), humanize.Bytes(uint64(total))),
		zap.Int64("bytes", written), zap.Int64("total", total))
}

// Finish logs the final size of the transfer.
func (p *ProgressReporter) Finish(written int64) {
	p.log.zl.Debug(fmt.Sprintf("%sDownload complete: %s", Indent(p.indent), humanize.Bytes(uint64(written))),
		zap.Int64("bytes", written))
}
