package picolog

import (
	"fmt"
	"io"
	"strings"
)

// Bytes per line of a memory dump.
const dumpWidth = 16

// Write a hex dump of buf to w, wrapped every dumpWidth bytes.
func writeMemoryDump(w io.Writer, label string, buf []byte) {
	var b strings.Builder
	fmt.Fprintf(&b, "\nMemory dump (%s):\n", label)
	for i, c := range buf {
		fmt.Fprintf(&b, "%02x ", c)
		if (i+1)%dumpWidth == 0 {
			b.WriteByte('\n')
		}
	}
	if len(buf)%dumpWidth != 0 {
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(w, b.String())
}
