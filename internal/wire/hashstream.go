package wire

import (
	"bufio"
	"io"

	"github.com/blockcopy/blockcopy/internal/blockhash"
)

// HashEntry is the decoded form of a Hash (or legacy hash) record: the
// destination has a block at [Pos, Pos+Len) with this digest. Legacy is set
// when the record arrived via the deprecated position-less `hash` tag, in
// which case Pos is meaningless and the caller must substitute its own
// tracked cursor (§4.1, §9).
type HashEntry struct {
	Pos    uint64
	Len    uint32
	Digest blockhash.Digest
	Legacy bool
}

// HashRecordKind discriminates the three record shapes a hash stream can
// carry.
type HashRecordKind uint8

const (
	HashRecordEntry HashRecordKind = iota
	HashRecordRest
	HashRecordDone
)

// HashRecord is one decoded record from a hash stream.
type HashRecord struct {
	Kind       HashRecordKind
	Entry      HashEntry // valid when Kind == HashRecordEntry
	RestOffset uint64    // valid when Kind == HashRecordRest
}

// HashStreamWriter serializes hash-stream records. It is not safe for
// concurrent use - while the pipeline runs, only its single writer stage
// touches it (§5); the caller writes the closing records and flushes only
// after the pipeline has finished.
type HashStreamWriter struct {
	w *bufio.Writer
}

func NewHashStreamWriter(w io.Writer) *HashStreamWriter {
	return &HashStreamWriter{w: bufio.NewWriter(w)}
}

// WriteHash emits a Hash record. Compliant producers never emit the
// deprecated lowercase form.
func (hw *HashStreamWriter) WriteHash(pos uint64, length uint32, digest blockhash.Digest) error {
	if err := writeTag(hw.w, tagHash); err != nil {
		return err
	}
	if err := writeU64(hw.w, pos); err != nil {
		return err
	}
	if err := writeU32(hw.w, length); err != nil {
		return err
	}
	_, err := hw.w.Write(digest[:])
	return err
}

// WriteRest emits the rest directive: send every source byte from offset
// onward, unconditionally.
func (hw *HashStreamWriter) WriteRest(offset uint64) error {
	if err := writeTag(hw.w, tagRest); err != nil {
		return err
	}
	return writeU64(hw.w, offset)
}

// WriteDone emits the terminating record.
func (hw *HashStreamWriter) WriteDone() error {
	return writeTag(hw.w, tagDone)
}

func (hw *HashStreamWriter) Flush() error {
	return hw.w.Flush()
}

// HashStreamReader decodes hash-stream records one at a time.
type HashStreamReader struct {
	r *bufio.Reader
}

func NewHashStreamReader(r io.Reader) *HashStreamReader {
	return &HashStreamReader{r: bufio.NewReader(r)}
}

// ReadRecord reads and decodes exactly one record. Once it returns a
// HashRecordDone record, the caller must stop calling ReadRecord - a further
// call would read past end of stream and misreport ErrIncompleteStream.
func (hr *HashStreamReader) ReadRecord() (*HashRecord, error) {
	tag, err := readTag(hr.r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagHash:
		pos, err := readU64(hr.r)
		if err != nil {
			return nil, err
		}
		length, err := readU32(hr.r)
		if err != nil {
			return nil, err
		}
		digest, err := readDigest(hr.r)
		if err != nil {
			return nil, err
		}
		return &HashRecord{Kind: HashRecordEntry, Entry: HashEntry{Pos: pos, Len: length, Digest: digest}}, nil
	case tagLegacyHash:
		length, err := readU32(hr.r)
		if err != nil {
			return nil, err
		}
		digest, err := readDigest(hr.r)
		if err != nil {
			return nil, err
		}
		return &HashRecord{Kind: HashRecordEntry, Entry: HashEntry{Len: length, Digest: digest, Legacy: true}}, nil
	case tagRest:
		offset, err := readU64(hr.r)
		if err != nil {
			return nil, err
		}
		return &HashRecord{Kind: HashRecordRest, RestOffset: offset}, nil
	case tagDone:
		return &HashRecord{Kind: HashRecordDone}, nil
	default:
		return nil, &UnknownTagError{Tag: tag}
	}
}

func readDigest(r *bufio.Reader) (blockhash.Digest, error) {
	var d blockhash.Digest
	raw, err := readExact(r, blockhash.Size)
	if err != nil {
		return d, err
	}
	copy(d[:], raw)
	return d, nil
}
