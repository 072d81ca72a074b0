//go:build !unix

package timer

import (
	"fmt"
	"os"
)

// suppressOutput hands the child the null device for both streams. The
// parent's own descriptors are never touched on these platforms.
func suppressOutput(_, _ *os.File) (*os.File, *os.File, func() error, error) {
	null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	return null, null, null.Close, nil
}
