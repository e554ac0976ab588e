package picolog

// A Gate decides whether a log call at a given level goes through.
// It has two independent settings: an enabled switch and a minimum level.
// The zero value is disabled, use [NewGate] for the default configuration.
type Gate struct {
	enabled bool
	min     Level
}

// NewGate returns an enabled [Gate] with the minimum level set to [LevelInfo].
func NewGate() *Gate {
	return &Gate{enabled: true, min: LevelInfo}
}

// SetEnabled turns logging on or off.
func (g *Gate) SetEnabled(enabled bool) {
	g.enabled = enabled
}

// SetMinLevel sets the lowest level that is allowed through.
func (g *Gate) SetMinLevel(level Level) {
	g.min = level
}

// Enabled reports whether logging is on.
func (g *Gate) Enabled() bool {
	return g.enabled
}

// MinLevel returns the lowest level that is allowed through.
func (g *Gate) MinLevel() Level {
	return g.min
}

// Allows reports whether a record at the given level should be logged.
func (g *Gate) Allows(level Level) bool {
	return g.enabled && level >= g.min
}
