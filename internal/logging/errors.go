package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Error taxonomy, per the error handling design: each kind carries its own
// exit semantics, but they all terminate the process the same way once they
// reach the subcommand's handler - see Fail and FailAndExit.

// UsageError is a bad CLI invocation: bad flags, '-' used somewhere other
// than checksum's input, binary output aimed at a TTY. Detected before any
// pipeline worker starts.
type UsageError struct{ cause error }

func NewUsageError(format string, args ...interface{}) *UsageError {
	return &UsageError{cause: errors.Errorf(format, args...)}
}

func (e *UsageError) Error() string { return e.cause.Error() }
func (e *UsageError) Unwrap() error  { return e.cause }

// IncompleteReadError means an input stream closed mid-record, or closed
// without the mandatory trailing `done`. In retrieve this is latched
// separately from the worker error collector so other workers can finish
// in-flight batches cleanly; in save it is immediately fatal.
type IncompleteReadError struct{ cause error }

func NewIncompleteReadError(format string, args ...interface{}) *IncompleteReadError {
	return &IncompleteReadError{cause: errors.Errorf(format, args...)}
}

func (e *IncompleteReadError) Error() string { return e.cause.Error() }
func (e *IncompleteReadError) Unwrap() error  { return e.cause }

// UnknownCommandError is an unrecognized 4-byte wire tag.
type UnknownCommandError struct{ cause error }

func NewUnknownCommandError(tag string) *UnknownCommandError {
	return &UnknownCommandError{cause: errors.Errorf("unknown command tag %q", tag)}
}

func (e *UnknownCommandError) Error() string { return e.cause.Error() }
func (e *UnknownCommandError) Unwrap() error  { return e.cause }

// WorkerError wraps any other fault raised inside a pipeline worker
// (reader, hasher, or writer), collected by the error collector and
// re-raised once all workers have joined.
type WorkerError struct {
	cause error
	who   string // "reader", "hasher", "writer"
}

func NewWorkerError(who string, cause error) *WorkerError {
	return &WorkerError{cause: cause, who: who}
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("%s: %s", e.who, e.cause.Error())
}

func (e *WorkerError) Unwrap() error { return e.cause }

// WrapIO wraps a raw I/O failure (read/write/seek) with the operation and
// path that failed, the way an IOError is expected to read at the console.
func WrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "%s %q", op, path)
}

// Fail prints "ERROR (<subcommand>): <message>" to stderr - with a full
// stack trace when verbose is set - and returns the process exit code the
// caller should use.
func Fail(w io.Writer, subcommand string, err error, verbose bool) int {
	if err == nil {
		return 0
	}
	if verbose {
		fmt.Fprintf(w, "ERROR (%s): %+v\n", subcommand, err)
	} else {
		fmt.Fprintf(w, "ERROR (%s): %s\n", subcommand, err)
	}
	return 1
}

// FailAndExit is Fail followed by os.Exit, used by cobra RunE wrappers that
// want to bypass cobra's own usage-on-error printing.
func FailAndExit(subcommand string, err error, verbose bool) {
	os.Exit(Fail(os.Stderr, subcommand, err, verbose))
}
