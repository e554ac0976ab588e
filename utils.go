package picolog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Overridden in tests.
var now = time.Now

// Get default name for the [Logger].
func defaultLoggerName() string {
	if len(os.Args) > 0 && len(os.Args[0]) > 0 {
		return fmt.Sprintf("picolog-%s", filepath.Base(os.Args[0]))
	}
	return "picolog"
}

// Cut s to at most limit bytes without splitting a UTF-8 sequence.
// Invalid UTF-8 with no rune start close to limit is cut at limit.
// A non-positive limit disables truncation.
func truncate(s string, limit int) (string, bool) {
	if limit <= 0 || len(s) <= limit {
		return s, false
	}
	for cut := limit; cut >= 0 && cut > limit-utf8.UTFMax; cut-- {
		if utf8.RuneStart(s[cut]) {
			return s[:cut], true
		}
	}
	return s[:limit], true
}

// Short function name: "github.com/a/b.(*T).M" becomes "(*T).M".
func shortFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
