package picolog

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Maximum number of frames printed by a stack trace.
const maxTraceFrames = 10

// Capture up to maxTraceFrames frames above skip and render them one per line.
// Frames the runtime cannot resolve are printed as raw program counters.
func stackTrace(skip int) []string {
	pc := make([]uintptr, maxTraceFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	lines := make([]string, 0, n)
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			lines = append(lines, fmt.Sprintf("%#x", frame.PC))
		} else {
			lines = append(lines, fmt.Sprintf("%s (%s:%d)", frame.Function, frame.File, frame.Line))
		}
		if !more || len(lines) >= maxTraceFrames {
			break
		}
	}
	return lines
}

func writeStackTrace(w io.Writer, lines []string) {
	var b strings.Builder
	b.WriteString("\nStack trace:\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(w, b.String())
}
