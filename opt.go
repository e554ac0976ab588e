package picolog

import (
	"io"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// An Opt is a function that mutates a [Logger]'s attributes.
// An Opt should return a mutated Logger or return an error if it fails to mutate the Logger.
// An Opt should be used together with [New].
type Opt func(*Logger) (*Logger, error)

// The name of the Logger, loggers are registered by name.
// It will be set to the default value if the name is empty.
// The default value is picolog-<the executable name>.
func WithName(name string) Opt {
	return func(l *Logger) (*Logger, error) {
		if len(name) > 0 {
			l.name = name
		}
		return l, nil
	}
}

// The display channel, where colored lines, metrics, stack traces and memory dumps are written.
// The default value is [os.Stdout].
func WithOutput(w io.Writer) Opt {
	return func(l *Logger) (*Logger, error) {
		if w == nil {
			return nil, errors.New("output must not be nil")
		}
		l.out = w
		return l, nil
	}
}

// Where the Logger reports its own failures, such as a log file that cannot be opened.
// The default value is [os.Stderr].
func WithErrorOutput(w io.Writer) Opt {
	return func(l *Logger) (*Logger, error) {
		if w == nil {
			return nil, errors.New("error output must not be nil")
		}
		l.errOut = w
		return l, nil
	}
}

// Whether level names are colored on the display channel.
// The default value is [ColorAlways].
func WithColor(mode ColorMode) Opt {
	return func(l *Logger) (*Logger, error) {
		if mode < ColorAlways || mode > ColorAuto {
			return nil, errors.Errorf("unknown color mode %d", mode)
		}
		l.colorMode = mode
		return l, nil
	}
}

// The lowest level that gets logged.
// The default value is [LevelInfo].
func WithMinLevel(level Level) Opt {
	return func(l *Logger) (*Logger, error) {
		l.gate.SetMinLevel(level)
		return l, nil
	}
}

// Whether logging starts enabled.
// The default value is true.
func WithEnabled(enabled bool) Opt {
	return func(l *Logger) (*Logger, error) {
		l.gate.SetEnabled(enabled)
		return l, nil
	}
}

// Maximum number of entries kept in memory, records beyond it are displayed but not stored.
// Zero means unlimited, which is the default.
func WithMaxEntries(n int) Opt {
	return func(l *Logger) (*Logger, error) {
		if n < 0 {
			return nil, errors.Errorf("invalid max entries %d", n)
		}
		l.store.maxEntries = n
		return l, nil
	}
}

// Maximum size in bytes of the rendered user message, longer messages are truncated.
// Zero disables truncation. The default value is 511.
func WithMessageLimit(size int) Opt {
	return func(l *Logger) (*Logger, error) {
		if size < 0 {
			return nil, errors.Errorf("invalid message limit %d", size)
		}
		l.messageLimit = size
		return l, nil
	}
}

// Maximum size in bytes of a stored line, longer lines are truncated.
// Zero disables truncation. The default value is 1023.
func WithLineLimit(size int) Opt {
	return func(l *Logger) (*Logger, error) {
		if size < 0 {
			return nil, errors.Errorf("invalid line limit %d", size)
		}
		l.lineLimit = size
		return l, nil
	}
}

// The file written by scheduled flushes, see [WithFlushCron].
func WithFlushPath(path string) Opt {
	return func(l *Logger) (*Logger, error) {
		l.flushPath = path
		return l, nil
	}
}

// Flush the store to the path set by [WithFlushPath] on a cron schedule.
// The schedule uses the standard five fields, see [cron.ParseStandard].
// An empty spec disables scheduled flushing, which is the default.
func WithFlushCron(spec string) Opt {
	return func(l *Logger) (*Logger, error) {
		if len(spec) > 0 {
			if _, err := cron.ParseStandard(spec); err != nil {
				return nil, errors.Wrapf(err, "invalid cron spec %q", spec)
			}
		}
		l.cronFormat = spec
		return l, nil
	}
}
