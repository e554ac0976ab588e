package picolog

import (
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// Function name prefix of this package, frames under it are skipped when looking for the writer's caller.
const packagePrefix = "github.com/trviph/picolog."

// Writer returns an [io.Writer] that logs each write as one record at level,
// so the Logger can back a standard [log.Logger]:
//
//	std := log.New(logger.Writer(picolog.LevelWarning), "", 0)
//	std.Printf("disk usage at %d%%", 91)
//
// A trailing newline is dropped. The source location is the first frame outside
// this package and the standard log package.
func (l *Logger) Writer(level Level) io.Writer {
	return &levelWriter{logger: l, level: level}
}

type levelWriter struct {
	logger *Logger
	level  Level
}

func (w *levelWriter) Write(p []byte) (int, error) {
	r := record{
		level:    w.level,
		file:     "???",
		function: "???",
		format:   strings.TrimSuffix(string(p), "\n"),
		verbatim: true,
	}
	if frame, ok := externalCaller(); ok {
		r.file, r.line, r.function = filepath.Base(frame.File), frame.Line, shortFuncName(frame.Function)
	}

	w.logger.mu.Lock()
	defer w.logger.mu.Unlock()
	if w.logger.closed {
		return 0, ErrClosed
	}
	w.logger.log(r)
	return len(p), nil
}

func externalCaller() (runtime.Frame, bool) {
	pc := make([]uintptr, 16)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, packagePrefix) && !strings.HasPrefix(frame.Function, "log.") {
			return frame, frame.Function != ""
		}
		if !more {
			return runtime.Frame{}, false
		}
	}
}
