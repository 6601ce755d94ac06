package logging

import (
	"fmt"
	"io"
	"log"
)

// ILogger is the minimal logging surface every blockcopy worker writes
// through. It intentionally has no concept of a job log file: each process
// invocation is single-shot, so there is nothing to rotate or correlate
// across runs.
type ILogger interface {
	ShouldLog(level LogLevel) bool
	Log(level LogLevel, msg string)
}

type stderrLogger struct {
	minimumLevelToLog LogLevel
	logger            *log.Logger
}

// NewLogger returns a logger that writes to w, gated at minimumLevelToLog.
func NewLogger(w io.Writer, minimumLevelToLog LogLevel) ILogger {
	return &stderrLogger{
		minimumLevelToLog: minimumLevelToLog,
		logger:            log.New(w, "", 0),
	}
}

func (l *stderrLogger) ShouldLog(level LogLevel) bool {
	if level == ELogLevel.None() {
		return false
	}
	return level <= l.minimumLevelToLog
}

func (l *stderrLogger) Log(level LogLevel, msg string) {
	if !l.ShouldLog(level) {
		return
	}
	prefix := ""
	if level <= ELogLevel.Warning() {
		// so readers can spot serious entries; info/debug lines stay uncluttered
		prefix = fmt.Sprintf("%s: ", level)
	}
	l.logger.Println(prefix + msg)
}

// VerbosityFromFlags resolves the effective minimum log level the way the
// CLI does: -v/--verbose or DEBUG=<anything non-empty> raises it to Debug,
// otherwise only warnings and errors are surfaced.
func VerbosityFromFlags(verbose bool, debugEnv string) LogLevel {
	if verbose || debugEnv != "" {
		return ELogLevel.Debug()
	}
	return ELogLevel.Warning()
}
