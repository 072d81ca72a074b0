//go:build unix

package timer

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// redirection tracks descriptors pointed at the null device and the
// close-on-exec duplicates that hold their original targets.
type redirection struct {
	null  *os.File
	saved []savedFD
	done  bool
}

type savedFD struct {
	fd  int // descriptor that was redirected
	dup int // duplicate of its original target
}

// suppressOutput points the descriptors behind stdout and stderr at the null
// device. The child inherits the same files, now discarding everything. The
// returned restore func puts the original targets back and releases the
// duplicates; it is safe to call more than once.
//
// *os.File writes are unbuffered, so nothing is pending in the parent when
// the descriptors are swapped.
func suppressOutput(stdout, stderr *os.File) (*os.File, *os.File, func() error, error) {
	null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}

	r := &redirection{null: null}
	for _, f := range []*os.File{stdout, stderr} {
		if f == nil {
			continue
		}
		if err := r.redirect(int(f.Fd())); err != nil {
			return nil, nil, nil, errors.Join(err, r.restore())
		}
	}

	return stdout, stderr, r.restore, nil
}

func (r *redirection) redirect(fd int) error {
	dup, err := unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("failed to duplicate fd %d: %w", fd, err)
	}
	r.saved = append(r.saved, savedFD{fd: fd, dup: dup})

	if err := unix.Dup2(int(r.null.Fd()), fd); err != nil {
		return fmt.Errorf("failed to redirect fd %d to %s: %w", fd, os.DevNull, err)
	}
	return nil
}

// restore undoes redirections in reverse order so a descriptor redirected
// twice ends up on its first saved target.
func (r *redirection) restore() error {
	if r.done {
		return nil
	}
	r.done = true

	var errs []error
	for i := len(r.saved) - 1; i >= 0; i-- {
		s := r.saved[i]
		if err := unix.Dup2(s.dup, s.fd); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore fd %d: %w", s.fd, err))
		}
		if err := unix.Close(s.dup); err != nil {
			errs = append(errs, fmt.Errorf("failed to close duplicate fd %d: %w", s.dup, err))
		}
	}
	if err := r.null.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
