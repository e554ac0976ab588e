package picolog

import (
	"sync"
	"time"
)

// Keeping track of all Logger instances by their name.
var registry *sync.Map = new(sync.Map)

// Register the Logger to the registry if it's not yet created,
// else return the registered one.
func register(name string, logger *Logger) (l *Logger, new bool) {
	val, loaded := registry.LoadOrStore(name, logger)
	return val.(*Logger), !loaded
}

// Unregister the Logger of a given name, if it is still the registered one.
func unregister(name string, logger *Logger) {
	registry.CompareAndDelete(name, logger)
}

// Name of the process-wide Logger returned by [Default].
const defaultName = "picolog"

// Default returns the process-wide [Logger], creating it on first use.
// It writes to [os.Stdout] and reports failures to [os.Stderr].
// If it was closed, the next call creates a fresh one.
func Default() *Logger {
	if val, ok := registry.Load(defaultName); ok {
		return val.(*Logger)
	}
	// Without a flush cron no option can fail.
	l, _ := New(WithName(defaultName))
	return l
}

// Log writes a record with an explicit source location through the [Default] Logger.
func Log(level Level, file string, line int, function, format string, args ...any) {
	Default().Log(level, file, line, function, format, args...)
}

// Info logs at [LevelInfo] level through the [Default] Logger.
func Info(format string, args ...any) {
	Default().logDepth(1, LevelInfo, format, args...)
}

// Warning logs at [LevelWarning] level through the [Default] Logger.
func Warning(format string, args ...any) {
	Default().logDepth(1, LevelWarning, format, args...)
}

// Error logs at [LevelError] level through the [Default] Logger.
func Error(format string, args ...any) {
	Default().logDepth(1, LevelError, format, args...)
}

// Critical logs at [LevelCritical] level through the [Default] Logger.
func Critical(format string, args ...any) {
	Default().logDepth(1, LevelCritical, format, args...)
}

// SetLoggingEnabled turns the [Default] Logger on or off, see [Logger.SetLoggingEnabled].
func SetLoggingEnabled(enabled bool) {
	Default().SetLoggingEnabled(enabled)
}

// SetMinimumLogLevel sets the minimum level of the [Default] Logger.
func SetMinimumLogLevel(level Level) {
	Default().SetMinimumLogLevel(level)
}

// BeginPerformanceTimer arms the timer of the [Default] Logger.
func BeginPerformanceTimer() {
	Default().BeginPerformanceTimer()
}

// EndPerformanceTimer reports the timer of the [Default] Logger, see [Logger.EndPerformanceTimer].
func EndPerformanceTimer(label string) (time.Duration, error) {
	return Default().endPerformanceTimer(1, label)
}

// SaveLogFile saves the entries of the [Default] Logger to path, see [Logger.SaveLogFile].
func SaveLogFile(path string) error {
	return Default().SaveLogFile(path)
}

// PrintStackTrace writes the caller's stack to the display channel of the [Default] Logger.
func PrintStackTrace() {
	Default().printStackTrace(4)
}

// DumpMemory writes buf as hexadecimal bytes to the display channel of the [Default] Logger.
func DumpMemory(label string, buf []byte) {
	Default().DumpMemory(label, buf)
}
