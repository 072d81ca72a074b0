package timer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyProgram is returned when Run is called without a program name.
	ErrEmptyProgram = errors.New("program must not be empty")

	// ErrSpawn matches any *SpawnError via errors.Is.
	ErrSpawn = errors.New("spawn failed")

	// ErrWait matches any *WaitError via errors.Is.
	ErrWait = errors.New("wait failed")
)

// SpawnError reports that the child process could not be created.
// No timing result exists when this is returned.
type SpawnError struct {
	Program string // Program as given by the caller
	Err     error  // Underlying error from lookup or process creation
}

// Error implements the error interface for SpawnError.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Program, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrSpawn) match.
func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawn
}

// WaitError reports that waiting for a started child failed at the OS level.
// A child that exits with a non-zero status is not a WaitError.
type WaitError struct {
	Program string
	Pid     int
	Err     error
}

// Error implements the error interface for WaitError.
func (e *WaitError) Error() string {
	return fmt.Sprintf("failed to wait for %s (pid %d): %v", e.Program, e.Pid, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *WaitError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrWait) match.
func (e *WaitError) Is(target error) bool {
	return target == ErrWait
}
