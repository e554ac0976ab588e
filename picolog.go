package picolog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// A [Logger] formats leveled messages, displays them and keeps a plain copy of every line in memory
// until it is saved with [Logger.SaveLogFile].
// Use [New] to create a new Logger, or [Default] for the process-wide one.
type Logger struct {
	// See [WithName] for documentation.
	name string
	// See [WithOutput] for documentation.
	out io.Writer
	// See [WithErrorOutput] for documentation.
	errOut io.Writer
	// See [WithColor] for documentation.
	colorMode ColorMode
	// See [WithMessageLimit] for documentation.
	messageLimit int
	// See [WithLineLimit] for documentation.
	lineLimit int
	// See [WithFlushPath] for documentation.
	flushPath string
	// See [WithFlushCron] for documentation.
	cronFormat string

	c        *cron.Cron
	cEntryID cron.EntryID

	mu        sync.Mutex
	gate      *Gate
	store     *Store
	timer     Timer
	formatter formatter
	report    *log.Logger
	truncated int
	closed    bool
}

// Make sure that the Logger can be closed like any other resource.
var _ io.Closer = (*Logger)(nil)

// Create a new [Logger] with the provided options.
// See [Opt] for all available options.
//
// Loggers are registered by name: if a Logger with the same name already exists,
// the options are applied to it and it is returned instead.
//
// Example usage:
//
//	import "github.com/trviph/picolog"
//
//	func main() {
//		logger, err := picolog.New(
//			picolog.WithName("example"),
//			picolog.WithMinLevel(picolog.LevelWarning),
//		)
//	}
func New(opts ...Opt) (*Logger, error) {
	defaultOpts := []Opt{
		WithName(defaultLoggerName()),
		WithOutput(os.Stdout),
		WithErrorOutput(os.Stderr),
		WithColor(ColorAlways),
		WithMessageLimit(defaultMessageLimit),
		WithLineLimit(defaultLineLimit),
	}
	finalOpts := append(defaultOpts, opts...)

	logger := &Logger{
		gate:  NewGate(),
		store: NewStore(0),
	}
	if err := logger.applyOpts(finalOpts...); err != nil {
		return nil, errors.Wrap(err, "failed to create new logger")
	}

	logger, isNew := register(logger.name, logger)
	logger.mu.Lock()
	defer logger.mu.Unlock()
	// If loaded old logger from registry, update its configurations
	if !isNew {
		if err := logger.applyOpts(opts...); err != nil {
			return nil, errors.Wrap(err, "failed to create new logger")
		}
	}
	if err := logger.setupCron(); err != nil {
		if isNew {
			unregister(logger.name, logger)
		}
		return nil, errors.Wrap(err, "failed to create new logger")
	}
	return logger, nil
}

func (l *Logger) applyOpts(opts ...Opt) error {
	var err error
	for _, opt := range opts {
		l, err = opt(l)
		if err != nil {
			return errors.Wrap(err, "failed to apply option")
		}
	}
	if len(l.cronFormat) > 0 && len(l.flushPath) == 0 {
		return errors.New("failed to apply option, a flush cron needs a flush path")
	}

	l.formatter = formatter{
		palette:      newPalette(l.colorMode, l.out),
		messageLimit: l.messageLimit,
		lineLimit:    l.lineLimit,
	}
	l.report = log.New(l.errOut, "", 0)
	return nil
}

func (l *Logger) setupCron() error {
	if l.c != nil {
		l.c.Remove(l.cEntryID)
		l.c.Stop()
		l.c = nil
	}
	if len(l.cronFormat) == 0 {
		return nil
	}

	c := cron.New()
	path := l.flushPath
	id, err := c.AddFunc(l.cronFormat, func() { _ = l.SaveLogFile(path) })
	if err != nil {
		return errors.Wrap(err, "failed to setup cron")
	}
	l.c, l.cEntryID = c, id
	c.Start()
	return nil
}

// Name returns the name the Logger is registered under.
func (l *Logger) Name() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name
}

// Log writes a record at the given level with an explicit source location.
// The format is always interpreted like [fmt.Sprintf], so a literal percent sign is written as %%.
//
// Nothing happens if logging is disabled or the level is below the minimum level.
// Otherwise the colored line goes to the display channel and the plain line is appended to the store.
func (l *Logger) Log(level Level, file string, line int, function, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log(record{level: level, file: file, line: line, function: function, format: format, args: args})
}

// Logf is like [Logger.Log] but takes the source location from its caller.
func (l *Logger) Logf(level Level, format string, args ...any) {
	l.logDepth(1, level, format, args...)
}

// Info logs at [LevelInfo] level with the caller's location.
func (l *Logger) Info(format string, args ...any) {
	l.logDepth(1, LevelInfo, format, args...)
}

// Warning logs at [LevelWarning] level with the caller's location.
func (l *Logger) Warning(format string, args ...any) {
	l.logDepth(1, LevelWarning, format, args...)
}

// Error logs at [LevelError] level with the caller's location.
func (l *Logger) Error(format string, args ...any) {
	l.logDepth(1, LevelError, format, args...)
}

// Critical logs at [LevelCritical] level with the caller's location.
func (l *Logger) Critical(format string, args ...any) {
	l.logDepth(1, LevelCritical, format, args...)
}

// Log with the location of the frame depth levels above this one.
func (l *Logger) logDepth(depth int, level Level, format string, args ...any) {
	r := callerRecord(depth+1, level, format, args)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log(r)
}

func callerRecord(depth int, level Level, format string, args []any) record {
	r := record{level: level, file: "???", function: "???", format: format, args: args}
	pc, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return r
	}
	r.file, r.line = filepath.Base(file), line
	if fn := runtime.FuncForPC(pc); fn != nil {
		r.function = shortFuncName(fn.Name())
	}
	return r
}

// The caller must hold l.mu.
func (l *Logger) log(r record) {
	if l.closed || !l.gate.Allows(r.level) {
		return
	}

	display, plain, truncated := l.formatter.render(r)
	if truncated {
		l.truncated++
	}
	_, _ = io.WriteString(l.out, display)
	if err := l.store.Append(plain); err != nil {
		l.report.Printf("Failed to store log entry: %v", err)
	}
}

// SetLoggingEnabled turns logging on or off, entries already stored are kept either way.
func (l *Logger) SetLoggingEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gate.SetEnabled(enabled)
}

// SetMinimumLogLevel drops every subsequent record below level.
func (l *Logger) SetMinimumLogLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gate.SetMinLevel(level)
}

// BeginPerformanceTimer arms the performance timer.
func (l *Logger) BeginPerformanceTimer() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timer.Start()
}

// EndPerformanceTimer reports the time elapsed since [Logger.BeginPerformanceTimer] on the display channel.
// The timer stays armed, so consecutive reports measure from the same start.
//
// If the timer was never armed, an ERROR record is logged instead and [ErrTimerNotStarted] is returned.
// A closed Logger prints nothing and returns [ErrClosed].
func (l *Logger) EndPerformanceTimer(label string) (time.Duration, error) {
	return l.endPerformanceTimer(1, label)
}

func (l *Logger) endPerformanceTimer(depth int, label string) (time.Duration, error) {
	r := callerRecord(depth+1, LevelError, "Start time not defined.", nil)
	r.verbatim = true
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}

	elapsed, err := l.timer.Elapsed()
	if err != nil {
		l.log(r)
		return 0, err
	}
	fmt.Fprintf(l.out, "METRICS Function %s took %.9f seconds to execute.\n", label, elapsed.Seconds())
	return elapsed, nil
}

// SaveLogFile overwrites the file at path with every stored entry, one per line, in insertion order.
// The store is not cleared.
//
// A failure is reported on the error output and returned, the Logger keeps working.
func (l *Logger) SaveLogFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if err := l.store.FlushToFile(path); err != nil {
		l.report.Print(err)
		return err
	}
	return nil
}

// PrintStackTrace writes up to 10 frames of the caller's stack to the display channel.
func (l *Logger) PrintStackTrace() {
	l.printStackTrace(4)
}

func (l *Logger) printStackTrace(skip int) {
	lines := stackTrace(skip)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	writeStackTrace(l.out, lines)
}

// DumpMemory writes buf as hexadecimal bytes to the display channel, 16 bytes per line.
func (l *Logger) DumpMemory(label string, buf []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	writeMemoryDump(l.out, label, buf)
}

// Len returns the number of stored entries.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Len()
}

// Entries returns a copy of the stored entries in insertion order.
func (l *Logger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Entries()
}

// Truncated returns how many records had their message or line cut to fit the configured limits.
func (l *Logger) Truncated() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.truncated
}

// Close stops scheduled flushes, releases every stored entry and removes the Logger from the registry.
// Any subsequent log, stack trace or memory dump call is a no-op,
// and [Logger.SaveLogFile] and [Logger.EndPerformanceTimer] return [ErrClosed].
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if l.c != nil {
		l.c.Stop()
		l.c = nil
	}
	l.store.Clear()
	l.closed = true
	unregister(l.name, l)
	return nil
}
