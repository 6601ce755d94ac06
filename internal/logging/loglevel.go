package logging

import (
	"reflect"

	"github.com/JeffreyRichter/enum/enum"
)

// LogLevel gates which messages a Logger actually emits.
type LogLevel uint8

const (
	// LogNone tells a Logger not to log any entries passed to it.
	LogNone LogLevel = iota

	// LogError tells a Logger to log LogError and nothing less severe.
	LogError

	// LogWarning tells a Logger to log LogWarning and LogError.
	LogWarning

	// LogInfo tells a Logger to log LogInfo, LogWarning and LogError.
	LogInfo

	// LogDebug tells a Logger to log everything, including per-batch
	// pipeline chatter.
	LogDebug
)

var ELogLevel = LogLevel(LogNone)

func (LogLevel) None() LogLevel    { return LogLevel(LogNone) }
func (LogLevel) Error() LogLevel   { return LogLevel(LogError) }
func (LogLevel) Warning() LogLevel { return LogLevel(LogWarning) }
func (LogLevel) Info() LogLevel    { return LogLevel(LogInfo) }
func (LogLevel) Debug() LogLevel   { return LogLevel(LogDebug) }

// Parse accepts the usual spellings ("debug", "DEBUG", "Info", ...).
func (ll *LogLevel) Parse(s string) error {
	val, err := enum.ParseInt(reflect.TypeOf(ll), s, true, true)
	if err == nil {
		*ll = val.(LogLevel)
	}
	return err
}

func (ll LogLevel) String() string {
	return enum.StringInt(ll, reflect.TypeOf(ll))
}
