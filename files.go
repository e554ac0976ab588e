package picolog

import (
	"os"

	"github.com/pkg/errors"
)

// Open the flush target, truncating whatever it held before.
func openFlushTarget(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log file %s", path)
	}
	return file, nil
}
