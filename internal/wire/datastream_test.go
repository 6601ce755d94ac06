package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	dw := NewDataStreamWriter(&buf)

	require.NoError(t, dw.WriteData(0, []byte("payload one")))
	require.NoError(t, dw.WriteData(128*1024, []byte("payload two")))
	require.NoError(t, dw.WriteDone())
	require.NoError(t, dw.Flush())

	dr := NewDataStreamReader(&buf)

	rec, err := dr.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, DataRecordEntry, rec.Kind)
	require.Equal(t, uint64(0), rec.Entry.Pos)
	require.Equal(t, []byte("payload one"), rec.Entry.Payload)

	rec, err = dr.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, DataRecordEntry, rec.Kind)
	require.Equal(t, uint64(128*1024), rec.Entry.Pos)
	require.Equal(t, []byte("payload two"), rec.Entry.Payload)

	rec, err = dr.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, DataRecordDone, rec.Kind)
}

func TestDataStreamIncompleteNoTrailingDone(t *testing.T) {
	var buf bytes.Buffer
	dw := NewDataStreamWriter(&buf)
	require.NoError(t, dw.WriteData(0, []byte("abc")))
	require.NoError(t, dw.Flush())

	dr := NewDataStreamReader(&buf)
	_, err := dr.ReadRecord()
	require.NoError(t, err)

	_, err = dr.ReadRecord()
	require.ErrorIs(t, err, ErrIncompleteStream)
}
