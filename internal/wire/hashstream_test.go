package wire

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/blockcopy/blockcopy/internal/blockhash"
	"github.com/stretchr/testify/require"
)

func TestHashStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	hw := NewHashStreamWriter(&buf)

	d1 := blockhash.Sum([]byte("first block"))
	d2 := blockhash.Sum([]byte("second block"))

	require.NoError(t, hw.WriteHash(0, 11, d1))
	require.NoError(t, hw.WriteHash(11, 12, d2))
	require.NoError(t, hw.WriteRest(23))
	require.NoError(t, hw.WriteDone())
	require.NoError(t, hw.Flush())

	hr := NewHashStreamReader(&buf)

	rec, err := hr.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, HashRecordEntry, rec.Kind)
	require.Equal(t, uint64(0), rec.Entry.Pos)
	require.Equal(t, uint32(11), rec.Entry.Len)
	require.True(t, rec.Entry.Digest.Equal(d1))
	require.False(t, rec.Entry.Legacy)

	rec, err = hr.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, HashRecordEntry, rec.Kind)
	require.Equal(t, uint64(11), rec.Entry.Pos)
	require.True(t, rec.Entry.Digest.Equal(d2))

	rec, err = hr.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, HashRecordRest, rec.Kind)
	require.Equal(t, uint64(23), rec.RestOffset)

	rec, err = hr.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, HashRecordDone, rec.Kind)
}

// TestLegacyHashTagLeavesPosZero exercises the deprecated position-less
// `hash` record: a compliant reader is expected to reconstruct Pos itself
// from a running cursor, not from the wire.
func TestLegacyHashTagLeavesPosZero(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	d := blockhash.Sum([]byte("legacy block"))

	require.NoError(t, writeTag(w, tagLegacyHash))
	require.NoError(t, writeU32(w, 12))
	_, err := w.Write(d[:])
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	hr := NewHashStreamReader(&buf)
	rec, err := hr.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, HashRecordEntry, rec.Kind)
	require.True(t, rec.Entry.Legacy)
	require.Equal(t, uint64(0), rec.Entry.Pos)
	require.Equal(t, uint32(12), rec.Entry.Len)
	require.True(t, rec.Entry.Digest.Equal(d))
}

func TestHashStreamIncompleteMidRecord(t *testing.T) {
	var buf bytes.Buffer
	hw := NewHashStreamWriter(&buf)
	require.NoError(t, hw.WriteHash(0, 4, blockhash.Digest{}))
	require.NoError(t, hw.Flush())

	// Truncate so the digest is cut short.
	truncated := buf.Bytes()[:len(buf.Bytes())-10]
	hr := NewHashStreamReader(bytes.NewReader(truncated))
	_, err := hr.ReadRecord()
	require.ErrorIs(t, err, ErrIncompleteStream)
}

func TestHashStreamUnknownTag(t *testing.T) {
	hr := NewHashStreamReader(bytes.NewReader([]byte("nope")))
	_, err := hr.ReadRecord()
	require.Error(t, err)
	var ute *UnknownTagError
	require.ErrorAs(t, err, &ute)
	require.Equal(t, "nope", ute.Tag)
}
