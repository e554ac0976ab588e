package picolog

import (
	"fmt"
	"strconv"
)

const timestampLayout = "2006-01-02 15:04:05"

// A record is one log call after the gate let it through.
type record struct {
	level    Level
	file     string
	line     int
	function string
	format   string
	args     []any
	// Use format as the message as is, without printf-style rendering.
	verbatim bool
}

// A formatter renders records into a colored display line and a plain stored line.
type formatter struct {
	palette      *palette
	messageLimit int
	lineLimit    int
}

// Render r. The plain line carries no color codes and no trailing newline,
// the display line is ready to be written as is.
// truncated reports whether the message or the plain line was cut to fit its limit.
func (f *formatter) render(r record) (display, plain string, truncated bool) {
	ts := now().Format(timestampLayout)

	msg := r.format
	if !r.verbatim {
		msg = fmt.Sprintf(r.format, r.args...)
	}
	msg, cutMsg := truncate(msg, f.messageLimit)

	location := r.file + ":" + strconv.Itoa(r.line)
	plain, cutLine := truncate(
		"["+ts+"] "+r.level.String()+" ["+location+"] "+r.function+": "+msg,
		f.lineLimit,
	)
	display = "[" + ts + "] " + f.palette.paint(r.level) + " [" + location + "] " + r.function + ": " + msg + "\n"
	return display, plain, cutMsg || cutLine
}
