package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestLogLevelParse(t *testing.T) {
	var lvl LogLevel
	require.NoError(t, lvl.Parse("Debug"))
	require.Equal(t, ELogLevel.Debug(), lvl)

	require.Error(t, lvl.Parse("not-a-level"))
}

func TestShouldLogGating(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, ELogLevel.Warning())

	require.True(t, logger.ShouldLog(ELogLevel.Error()))
	require.True(t, logger.ShouldLog(ELogLevel.Warning()))
	require.False(t, logger.ShouldLog(ELogLevel.Info()))
	require.False(t, logger.ShouldLog(ELogLevel.Debug()))

	logger.Log(ELogLevel.Debug(), "should not appear")
	require.Empty(t, buf.String())

	logger.Log(ELogLevel.Warning(), "should appear")
	require.True(t, strings.Contains(buf.String(), "should appear"))
}

func TestVerbosityFromFlags(t *testing.T) {
	require.Equal(t, ELogLevel.Debug(), VerbosityFromFlags(true, ""))
	require.Equal(t, ELogLevel.Debug(), VerbosityFromFlags(false, "1"))
	require.Equal(t, ELogLevel.Warning(), VerbosityFromFlags(false, ""))
}

func TestFailFormatsSubcommandAndMessage(t *testing.T) {
	var buf bytes.Buffer
	code := Fail(&buf, "checksum", errors.New("disk exploded"), false)
	require.Equal(t, 1, code)
	require.Equal(t, "ERROR (checksum): disk exploded\n", buf.String())
}

func TestFailNilErrorIsNoop(t *testing.T) {
	var buf bytes.Buffer
	code := Fail(&buf, "checksum", nil, false)
	require.Equal(t, 0, code)
	require.Empty(t, buf.String())
}

func TestErrorTaxonomyUnwraps(t *testing.T) {
	cause := errors.New("root cause")
	werr := NewWorkerError("hasher", cause)
	require.ErrorIs(t, werr, cause)
	require.Contains(t, werr.Error(), "hasher")
}

func TestWrapIONilIsNil(t *testing.T) {
	require.NoError(t, WrapIO("read", "/tmp/x", nil))
}
