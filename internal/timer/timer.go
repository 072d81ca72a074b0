// Package timer runs a single child program to completion and measures its
// wall-clock duration with the monotonic clock.
//
// The measured interval starts just before the program is looked up and
// spawned and ends just after the child has been reaped, so it includes the
// spawn overhead of ntime itself. Results are approximate by nature.
package timer

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/harrison/ntime/internal/logger"
)

// Logger receives diagnostics from the timer.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
	LogRunStart(program string, argv []string)
	LogRunComplete(pid, exitCode int, elapsed time.Duration)
}

// Result is the outcome of a successfully timed run.
type Result struct {
	Program      string    // Program as given by the caller
	Args         []string  // argv the child received
	Pid          int       // Process id of the child
	ExitCode     int       // Child exit status, -1 if killed by a signal
	StartedAt    time.Time // T0, taken just before spawn
	ElapsedNanos uint64    // T1 - T0 in nanoseconds
}

// Elapsed returns the measured interval as a time.Duration.
func (r *Result) Elapsed() time.Duration {
	return time.Duration(r.ElapsedNanos)
}

// Timer spawns and times child programs.
//
// Stdin, Stdout and Stderr are the streams the child inherits. A nil stream
// is connected to the null device, as with exec.Cmd. When output suppression
// is requested, the descriptors behind Stdout and Stderr are redirected to
// the null device for the duration of the run and restored before Run returns.
type Timer struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
	Logger Logger

	now func() time.Time
}

// New creates a Timer wired to the process's own standard streams.
func New(logger Logger) *Timer {
	return &Timer{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run executes program with argv args, blocks until it exits, and returns the
// elapsed time. args conventionally starts with the program name; when it is
// empty the program name is used as the sole argument.
//
// A child that exits non-zero is still a successful measurement. Errors are
// *SpawnError when the child could not be created and *WaitError when the
// wait itself failed; in both cases no Result is returned.
func (t *Timer) Run(program string, args []string, suppress bool) (*Result, error) {
	if program == "" {
		return nil, ErrEmptyProgram
	}
	if len(args) == 0 {
		args = []string{program}
	}

	log := t.logger()
	log.LogRunStart(program, args)
	if suppress {
		log.LogDebug("suppressing child stdout and stderr")
	}

	res, err := t.measure(program, args, suppress)
	if err != nil {
		// The caller reports the error itself.
		log.LogDebug(err.Error())
		return nil, err
	}

	log.LogRunComplete(res.Pid, res.ExitCode, res.Elapsed())
	if res.ExitCode != 0 {
		log.LogWarn(fmt.Sprintf("%s exited with status %d", program, res.ExitCode))
	}
	return res, nil
}

// measure holds the suppression scope: streams are restored when it returns,
// on every path, before Run reports anything.
func (t *Timer) measure(program string, args []string, suppress bool) (res *Result, err error) {
	childOut, childErr := t.Stdout, t.Stderr
	if suppress {
		var restore func() error
		childOut, childErr, restore, err = suppressOutput(t.Stdout, t.Stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to suppress child output: %w", err)
		}
		defer func() {
			if rerr := restore(); rerr != nil {
				res = nil
				err = errors.Join(err, fmt.Errorf("failed to restore standard streams: %w", rerr))
			}
		}()
	}

	now := t.clock()
	start := now()

	path, err := exec.LookPath(program)
	if err != nil {
		return nil, &SpawnError{Program: program, Err: err}
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   args,
		Stdin:  t.Stdin,
		Stdout: childOut,
		Stderr: childErr,
	}

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Program: program, Err: err}
	}

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &WaitError{Program: program, Pid: cmd.Process.Pid, Err: err}
		}
		exitCode = exitErr.ExitCode()
	}

	end := now()

	return &Result{
		Program:      program,
		Args:         args,
		Pid:          cmd.Process.Pid,
		ExitCode:     exitCode,
		StartedAt:    start,
		ElapsedNanos: elapsedNanos(start, end),
	}, nil
}

// elapsedNanos subtracts two readings of the same clock. time.Time.Sub uses
// the monotonic reading when both values carry one. A backwards step, only
// possible with a clock lacking monotonic readings, yields 0.
func elapsedNanos(start, end time.Time) uint64 {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return uint64(d.Nanoseconds())
}

func (t *Timer) clock() func() time.Time {
	if t.now != nil {
		return t.now
	}
	return time.Now
}

func (t *Timer) logger() Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return logger.NewNoOpLogger()
}
