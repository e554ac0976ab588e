// Picolog is a small, embeddable logging package that keeps every log line in memory until you save it.
//
// Every record is rendered with a timestamp, its level and the source location of the call.
// The colored form is written to the display channel (standard output by default),
// the plain form is appended to an in-memory store that can be saved to a file at any time.
// The package also ships a few debugging aids: a performance timer, a stack trace printer and a memory dumper.
//
// # The Logger Struct
//
// [Logger] is the context object holding the gate, the store and the timer.
// To create a Logger, use the [New] function. Loggers are registered by name, so calling [New]
// twice with the same [WithName] returns the same instance.
// The package-level functions such as [Info] and [SaveLogFile] use the [Default] Logger:
//
//	import "github.com/trviph/picolog"
//
//	func main() {
//		picolog.Info("starting with %d workers", 4)
//		picolog.Warning("cache is cold")
//
//		// Writes every line logged so far, the store is not cleared
//		if err := picolog.SaveLogFile("app.log"); err != nil {
//			// The failure was already reported on standard error
//		}
//	}
//
// A displayed line looks like this, with the level name wrapped in ANSI colors:
//
//	[2025-01-02 15:04:05] INFO [main.go:6] main: starting with 4 workers
//
// The saved file holds the same lines without colors, one per record, in the order they were logged.
// Saving overwrites the file.
//
// # Configure the Logger
//
// Configurations come in the form of WithXxx functions that follow the Go Options pattern.
// You should take a look at [Opt] and the WithXxx functions for documentation on these configurations.
//
//	logger, err := picolog.New(
//		// Registry name of this Logger
//		picolog.WithName("worker"),
//		// Drop everything below WARNING
//		picolog.WithMinLevel(picolog.LevelWarning),
//		// Only color the level names when writing to a terminal
//		picolog.WithColor(picolog.ColorAuto),
//		// Save the store to a file every minute
//		picolog.WithFlushPath("worker.log"),
//		picolog.WithFlushCron("* * * * *"),
//	)
//	if err != nil {
//		// Handle error
//	}
//	defer logger.Close()
//
// # Levels and Gating
//
// Levels are ordered [LevelInfo] < [LevelWarning] < [LevelError] < [LevelCritical].
// A record below the minimum level, or any record while logging is disabled, is dropped
// before it is formatted: nothing is displayed and nothing is stored.
// See [Logger.SetMinimumLogLevel] and [Logger.SetLoggingEnabled].
//
// # Truncation
//
// The user message is cut to 511 bytes and the stored line to 1023 bytes by default,
// see [WithMessageLimit] and [WithLineLimit]. Cutting never splits a UTF-8 sequence,
// and [Logger.Truncated] counts how many records were affected.
//
// # Performance Timer
//
// [Logger.BeginPerformanceTimer] arms the timer and [Logger.EndPerformanceTimer] prints the elapsed time:
//
//	METRICS Function parse took 0.001234567 seconds to execute.
//
// Only one measurement is in flight at a time, and reading it does not disarm the timer.
// Reporting before the timer was ever armed logs an ERROR record instead.
//
// # Standard Log
//
// [Logger.Writer] returns an [io.Writer] for a given level, so the Logger can back a standard [log.Logger].
package picolog
