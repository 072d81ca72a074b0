package report

import (
	"io"

	"github.com/harrison/ntime/internal/filelock"
)

// Sink is the destination of a rendered report: the tool's stdout, or a file
// that is replaced atomically or appended to under a lock.
type Sink struct {
	stdout io.Writer
	path   string
	append bool
}

// NewSink creates a Sink. An empty path writes to stdout.
func NewSink(stdout io.Writer, path string, appendMode bool) *Sink {
	return &Sink{stdout: stdout, path: path, append: appendMode}
}

// Write delivers data to the sink's destination.
func (s *Sink) Write(data []byte) error {
	switch {
	case s.path == "":
		_, err := s.stdout.Write(data)
		return err
	case s.append:
		return filelock.AppendLocked(s.path, data)
	default:
		return filelock.ReplaceLocked(s.path, data)
	}
}
