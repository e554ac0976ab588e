package picolog

// Kibibytes
const Kb int = 1_024

// Default formatting limits, one byte short of the classic 512 and 1024 byte buffers.
const (
	defaultMessageLimit = Kb/2 - 1
	defaultLineLimit    = Kb - 1
)
