package picolog

// A Level is the severity of a log record.
// Levels are totally ordered: [LevelInfo] < [LevelWarning] < [LevelError] < [LevelCritical].
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
	LevelCritical
)

var levelNames = [...]string{"INFO", "WARNING", "ERROR", "CRITICAL"}

// String returns the upper-case name of the level, or "UNKNOWN" if it is out of range.
func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}
