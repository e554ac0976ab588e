package picolog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
)

// Create a Logger registered under the test name, writing to buffers instead of the terminal.
func newTestLogger(t *testing.T, opts ...Opt) (l *Logger, out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = new(bytes.Buffer), new(bytes.Buffer)
	base := []Opt{
		WithName(t.Name()),
		WithOutput(out),
		WithErrorOutput(errOut),
		WithColor(ColorNever),
	}
	l, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("could not construct logger: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l, out, errOut
}

func TestLoggerLog(t *testing.T) {
	fixClock(t, time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local))
	l, out, _ := newTestLogger(t, WithColor(ColorAlways))

	l.Log(LevelWarning, "server.go", 42, "serve", "listening on %s", ":8080")

	if want := "[2025-01-02 15:04:05] \x1b[33mWARNING\x1b[0m [server.go:42] serve: listening on :8080\n"; out.String() != want {
		t.Errorf("display = %q, want %q", out.String(), want)
	}
	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if want := "[2025-01-02 15:04:05] WARNING [server.go:42] serve: listening on :8080"; entries[0] != want {
		t.Errorf("entry = %q, want %q", entries[0], want)
	}
}

func TestLoggerCallerLocation(t *testing.T) {
	l, out, _ := newTestLogger(t)

	l.Info("from the test")
	l.Logf(LevelCritical, "also from the test")

	for i, entry := range l.Entries() {
		if !strings.Contains(entry, "[picolog_test.go:") {
			t.Errorf("entry %d = %q, want the test file as location", i, entry)
		}
		if !strings.Contains(entry, "TestLoggerCallerLocation: ") {
			t.Errorf("entry %d = %q, want the test function as location", i, entry)
		}
	}
	if strings.Count(out.String(), "\n") != 2 {
		t.Errorf("expected two displayed lines, got %q", out.String())
	}
}

func TestLoggerPercentEscape(t *testing.T) {
	l, out, _ := newTestLogger(t)

	l.Info("100%% done")
	l.Info("%d%% done", 100)

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for i, entry := range entries {
		if !strings.HasSuffix(entry, ": 100% done") {
			t.Errorf("entry %d = %q, want the escaped percent rendered once", i, entry)
		}
	}
	if strings.Contains(out.String(), "%%") {
		t.Errorf("display = %q, want no escaped percent", out.String())
	}
}

func TestLoggerLevelGating(t *testing.T) {
	l, out, _ := newTestLogger(t)
	l.SetMinimumLogLevel(LevelError)

	l.Info("dropped")
	l.Warning("dropped")
	if out.Len() != 0 || l.Len() != 0 {
		t.Fatalf("expected nothing below ERROR, got display %q and %d entries", out.String(), l.Len())
	}

	l.Error("kept")
	if l.Len() != 1 || strings.Count(out.String(), "\n") != 1 {
		t.Fatalf("expected one ERROR record, got display %q and %d entries", out.String(), l.Len())
	}
	l.Critical("kept")
	if l.Len() != 2 || strings.Count(out.String(), "\n") != 2 {
		t.Fatalf("expected one CRITICAL record, got display %q and %d entries", out.String(), l.Len())
	}
}

func TestLoggerEnableGating(t *testing.T) {
	l, out, _ := newTestLogger(t)
	l.Info("before")

	l.SetLoggingEnabled(false)
	for _, level := range []Level{LevelInfo, LevelWarning, LevelError, LevelCritical} {
		l.Logf(level, "while disabled")
	}
	if l.Len() != 1 || strings.Count(out.String(), "\n") != 1 {
		t.Fatalf("expected no output while disabled, got display %q and %d entries", out.String(), l.Len())
	}

	l.SetLoggingEnabled(true)
	l.Info("after")
	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !strings.HasSuffix(entries[0], ": before") || !strings.HasSuffix(entries[1], ": after") {
		t.Errorf("unexpected entries %q", entries)
	}
}

func TestLoggerSaveLogFile(t *testing.T) {
	fixClock(t, time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local))
	l, _, errOut := newTestLogger(t)
	path := filepath.Join(t.TempDir(), "app.log")

	l.Log(LevelInfo, "a.go", 1, "f", "one")
	l.Log(LevelError, "b.go", 2, "g", "two")
	if err := l.SaveLogFile(path); err != nil {
		t.Fatalf("SaveLogFile() failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	want := "[2025-01-02 15:04:05] INFO [a.go:1] f: one\n" +
		"[2025-01-02 15:04:05] ERROR [b.go:2] g: two\n"
	if string(got) != want {
		t.Errorf("saved file = %q, want %q", got, want)
	}
	if bytes.Contains(got, []byte("\x1b[")) {
		t.Error("saved file must not contain color codes")
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected error output %q", errOut.String())
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d after save, want 2", l.Len())
	}
}

func TestLoggerSaveLogFileFailure(t *testing.T) {
	l, _, errOut := newTestLogger(t)
	l.Info("kept in memory")

	err := l.SaveLogFile(filepath.Join(t.TempDir(), "no", "such", "dir.log"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(errOut.String(), "failed to open log file") {
		t.Errorf("expected the failure on the error output, got %q", errOut.String())
	}

	// The logger keeps working.
	l.Info("still logging")
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestLoggerPerformanceTimer(t *testing.T) {
	start := time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local)
	fixClock(t, start)
	l, out, _ := newTestLogger(t)

	l.BeginPerformanceTimer()
	now = func() time.Time { return start.Add(250 * time.Millisecond) }
	elapsed, err := l.EndPerformanceTimer("parse")
	if err != nil {
		t.Fatalf("EndPerformanceTimer() failed: %v", err)
	}
	if elapsed != 250*time.Millisecond {
		t.Errorf("elapsed = %v, want %v", elapsed, 250*time.Millisecond)
	}
	if want := "METRICS Function parse took 0.250000000 seconds to execute.\n"; out.String() != want {
		t.Errorf("display = %q, want %q", out.String(), want)
	}
	if l.Len() != 0 {
		t.Errorf("metrics must not be stored, got %d entries", l.Len())
	}
}

func TestLoggerPerformanceTimerNotStarted(t *testing.T) {
	l, out, _ := newTestLogger(t)

	elapsed, err := l.EndPerformanceTimer("parse")
	if !errors.Is(err, ErrTimerNotStarted) {
		t.Fatalf("EndPerformanceTimer() error = %v, want %v", err, ErrTimerNotStarted)
	}
	if elapsed != 0 {
		t.Errorf("elapsed = %v, want 0", elapsed)
	}
	if strings.Contains(out.String(), "METRICS") {
		t.Errorf("did not expect a metrics line, got %q", out.String())
	}
	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !strings.Contains(entries[0], " ERROR [picolog_test.go:") || !strings.HasSuffix(entries[0], ": Start time not defined.") {
		t.Errorf("unexpected entry %q", entries[0])
	}
}

func TestLoggerTruncated(t *testing.T) {
	l, _, _ := newTestLogger(t, WithMessageLimit(4))

	l.Info("abc")
	l.Info("abcdefgh")
	if l.Truncated() != 1 {
		t.Errorf("Truncated() = %d, want 1", l.Truncated())
	}
	if entries := l.Entries(); !strings.HasSuffix(entries[1], ": abcd") {
		t.Errorf("entry = %q, want the message cut to 4 bytes", entries[1])
	}
}

func TestLoggerTruncatesInvalidUTF8(t *testing.T) {
	l, _, _ := newTestLogger(t)

	l.Info("%s", strings.Repeat("\x80", 600))
	if l.Truncated() != 1 {
		t.Errorf("Truncated() = %d, want 1", l.Truncated())
	}
	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !strings.HasSuffix(entries[0], ": "+strings.Repeat("\x80", defaultMessageLimit)) {
		t.Errorf("entry has length %d, want the message cut to %d bytes", len(entries[0]), defaultMessageLimit)
	}
}

func TestLoggerMaxEntries(t *testing.T) {
	l, out, errOut := newTestLogger(t, WithMaxEntries(1))

	l.Info("stored")
	l.Info("displayed only")
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	if strings.Count(out.String(), "\n") != 2 {
		t.Errorf("expected both records on the display, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), ErrStoreFull.Error()) {
		t.Errorf("expected the dropped entry to be reported, got %q", errOut.String())
	}
}

func TestLoggerStackTraceAndDump(t *testing.T) {
	l, out, _ := newTestLogger(t)

	l.PrintStackTrace()
	if !strings.HasPrefix(out.String(), "\nStack trace:\n") {
		t.Errorf("unexpected trace %q", out.String())
	}
	if !strings.Contains(out.String(), "TestLoggerStackTraceAndDump") {
		t.Errorf("expected the caller in the trace, got %q", out.String())
	}
	if strings.Contains(out.String(), "printStackTrace") {
		t.Errorf("did not expect logger internals in the trace, got %q", out.String())
	}

	out.Reset()
	l.DumpMemory("hi", []byte("hi"))
	if want := "\nMemory dump (hi):\n68 69 \n"; out.String() != want {
		t.Errorf("dump = %q, want %q", out.String(), want)
	}
	if l.Len() != 0 {
		t.Errorf("debug output must not be stored, got %d entries", l.Len())
	}
}

func TestLoggerClose(t *testing.T) {
	l, out, _ := newTestLogger(t)
	l.Info("before close")

	if _, ok := registry.Load(l.Name()); !ok {
		t.Error("expected the logger to be registered")
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d after close, want 0", l.Len())
	}
	if val, ok := registry.Load(l.Name()); ok {
		t.Errorf("expected the logger to be gone from the registry but got %v", val)
	}

	out.Reset()
	l.Info("after close")
	if out.Len() != 0 || l.Len() != 0 {
		t.Error("expected log calls on a closed logger to be no-ops")
	}
	if err := l.SaveLogFile(filepath.Join(t.TempDir(), "closed.log")); !errors.Is(err, ErrClosed) {
		t.Errorf("SaveLogFile() = %v, want %v", err, ErrClosed)
	}

	l.BeginPerformanceTimer()
	if _, err := l.EndPerformanceTimer("closed"); !errors.Is(err, ErrClosed) {
		t.Errorf("EndPerformanceTimer() = %v, want %v", err, ErrClosed)
	}
	l.PrintStackTrace()
	l.DumpMemory("closed", []byte("closed"))
	if out.Len() != 0 {
		t.Errorf("expected no output from a closed logger, got %q", out.String())
	}
	if err := l.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() = %v, want %v", err, ErrClosed)
	}
}

func TestRegistry(t *testing.T) {
	first, _, _ := newTestLogger(t, WithMinLevel(LevelWarning))
	second, err := New(WithName(t.Name()), WithMinLevel(LevelError))
	if err != nil {
		t.Fatalf("expect no error but got %v", err)
	}
	if first != second {
		t.Fatal("expect to be the same instance")
	}
	if first.gate.MinLevel() != LevelError {
		t.Errorf("expect the second options to apply, min level is %v", first.gate.MinLevel())
	}

	other, err := New(WithName(t.Name()+"-other"), WithOutput(new(bytes.Buffer)))
	if err != nil {
		t.Fatalf("expect no error but got %v", err)
	}
	defer other.Close()
	if other == first {
		t.Error("expect to be not the same instance")
	}
}

func TestLoggerConcurrentUse(t *testing.T) {
	l, _, _ := newTestLogger(t, WithMaxEntries(100))
	path := filepath.Join(t.TempDir(), "concurrent.log")

	wg := new(sync.WaitGroup)
	for i := 0; i < 1000; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch i % 5 {
			case 0:
				l.Info("log number %d", i)
			case 1:
				_ = l.SaveLogFile(path)
			case 2:
				if _, err := New(WithName(t.Name()), WithOutput(new(bytes.Buffer)), WithColor(ColorNever)); err != nil {
					t.Errorf("New() failed: %v", err)
				}
			case 3:
				if name := l.Name(); name != t.Name() {
					t.Errorf("Name() = %q, want %q", name, t.Name())
				}
			case 4:
				w := l.Writer(LevelWarning)
				_, _ = fmt.Fprintf(w, "write number %d\n", i)
			}
		}()
	}
	wg.Wait()

	if l.Len() != 100 {
		t.Errorf("Len() = %d, want the store filled to its limit", l.Len())
	}
	if err := l.SaveLogFile(path); err != nil {
		t.Fatalf("SaveLogFile() failed: %v", err)
	}
	got, _ := os.ReadFile(path)
	if n := strings.Count(string(got), "\n"); n != 100 {
		t.Errorf("saved %d lines, want 100", n)
	}
}

func TestScheduledFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scheduled.log")
	l, _, _ := newTestLogger(t, WithFlushPath(path), WithFlushCron("@every 1s"))
	l.Info("flushed by cron")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if got, err := os.ReadFile(path); err == nil && strings.Contains(string(got), "flushed by cron") {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Error("expected the store to be flushed by the schedule")
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Opt
		wantErr bool
	}{
		{
			name: "default",
		},
		{
			name: "fully configured",
			opts: []Opt{
				WithOutput(new(bytes.Buffer)),
				WithErrorOutput(new(bytes.Buffer)),
				WithColor(ColorAuto),
				WithMinLevel(LevelWarning),
				WithEnabled(false),
				WithMaxEntries(100),
				WithMessageLimit(64),
				WithLineLimit(128),
				WithFlushPath(filepath.Join(os.TempDir(), "picolog-fully-configured.log")),
				WithFlushCron("0 0 1 1 *"),
			},
		},
		{
			name:    "nil output",
			opts:    []Opt{WithOutput(nil)},
			wantErr: true,
		},
		{
			name:    "nil error output",
			opts:    []Opt{WithErrorOutput(nil)},
			wantErr: true,
		},
		{
			name:    "unknown color mode",
			opts:    []Opt{WithColor(ColorMode(7))},
			wantErr: true,
		},
		{
			name:    "negative max entries",
			opts:    []Opt{WithMaxEntries(-1)},
			wantErr: true,
		},
		{
			name:    "negative message limit",
			opts:    []Opt{WithMessageLimit(-1)},
			wantErr: true,
		},
		{
			name:    "negative line limit",
			opts:    []Opt{WithLineLimit(-1)},
			wantErr: true,
		},
		{
			name:    "invalid cron spec",
			opts:    []Opt{WithFlushPath("x.log"), WithFlushCron("999 * * * *")},
			wantErr: true,
		},
		{
			name:    "cron without flush path",
			opts:    []Opt{WithFlushCron("* * * * *")},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Opt{WithName(t.Name()), WithOutput(new(bytes.Buffer))}, tt.opts...)
			l, gotErr := New(opts...)
			if gotErr != nil {
				if !tt.wantErr {
					t.Errorf("New() failed: %v", gotErr)
				}
				return
			}
			defer l.Close()
			if tt.wantErr {
				t.Fatal("New() succeeded unexpectedly")
			}
		})
	}
}
