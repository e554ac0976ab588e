package picolog

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Capacity of the store after its first growth.
const initialCapacity = 16

// A Store is an append-only, in-memory sequence of rendered log lines.
// Entries keep their insertion order and are never removed one by one,
// the store is either appended to, persisted, or cleared as a whole.
//
// A Store is not safe for concurrent use, [Logger] serializes access to its own store.
type Store struct {
	entries []string
	// Zero means unlimited.
	maxEntries int
}

// NewStore returns an empty [Store].
// If maxEntries is positive, [Store.Append] fails with [ErrStoreFull] once the store holds that many entries.
func NewStore(maxEntries int) *Store {
	return &Store{maxEntries: maxEntries}
}

// Append copies text into a new entry at the end of the store.
//
// When the backing array is full its capacity doubles, starting at 16.
// The Go runtime aborts the process if that allocation fails, which is the only fatal path.
func (s *Store) Append(text string) error {
	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		return ErrStoreFull
	}
	s.grow()
	s.entries = append(s.entries, strings.Clone(text))
	return nil
}

// AppendBytes is like [Store.Append] but takes the line as bytes.
func (s *Store) AppendBytes(p []byte) error {
	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		return ErrStoreFull
	}
	s.grow()
	s.entries = append(s.entries, string(p))
	return nil
}

func (s *Store) grow() {
	if len(s.entries) < cap(s.entries) {
		return
	}
	newCap := initialCapacity
	if cap(s.entries) > 0 {
		newCap = cap(s.entries) * 2
	}
	grown := make([]string, len(s.entries), newCap)
	copy(grown, s.entries)
	s.entries = grown
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Cap returns the capacity of the backing array.
func (s *Store) Cap() int {
	return cap(s.entries)
}

// Entry returns the i-th entry in insertion order.
func (s *Store) Entry(i int) (string, bool) {
	if i < 0 || i >= len(s.entries) {
		return "", false
	}
	return s.entries[i], true
}

// Entries returns a copy of all entries in insertion order.
func (s *Store) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// WriteTo writes every entry followed by a newline to w.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, entry := range s.entries {
		n, err := bw.WriteString(entry)
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, "failed to write log entry")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return total, errors.Wrap(err, "failed to write log entry")
		}
		total++
	}
	if err := bw.Flush(); err != nil {
		return total, errors.Wrap(err, "failed to flush log entries")
	}
	return total, nil
}

// FlushToFile overwrites the file at path with the content of the store.
// The store itself is left untouched.
func (s *Store) FlushToFile(path string) error {
	file, err := openFlushTarget(path)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(file); err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "failed to save log file %s", path)
	}
	return errors.Wrapf(file.Close(), "failed to close log file %s", path)
}

// Clear releases every entry and resets the capacity to zero.
func (s *Store) Clear() {
	s.entries = nil
}
