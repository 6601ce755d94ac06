// Package wire implements the two byte-level protocols that connect the
// checksum, retrieve and save stages: the hash stream (§4.1) and the data
// stream (§4.2). Both are big-endian, tag-delimited, and carry no length
// prefix or version header - stream identity comes entirely from which
// subcommand is on the other end of the pipe.
package wire

import "github.com/pkg/errors"

// Hash-stream tags.
const (
	tagHash       = "Hash" // pos:u64, len:u32, digest:64B
	tagLegacyHash = "hash" // len:u32, digest:64B (deprecated, position-less)
	tagRest       = "rest" // offset:u64
)

// Data-stream tags.
const (
	tagData = "data" // pos:u64, len:u32, payload:len B
)

// tagDone terminates both streams.
const tagDone = "done"

const tagSize = 4

// ErrIncompleteStream is returned when an input stream closes mid-record or
// before its mandatory trailing done record. Callers translate this into an
// IncompleteReadError; it is kept tag-free here so the wire package has no
// dependency on the process-level error taxonomy.
var ErrIncompleteStream = errors.New("wire: stream ended before a terminating done record")

// UnknownTagError is returned when a 4-byte tag doesn't match any record
// defined by the protocol that is being decoded.
type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return "wire: unknown command tag " + quoteTag(e.Tag)
}

func quoteTag(tag string) string {
	return "\"" + tag + "\""
}
