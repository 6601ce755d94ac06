package wire

import (
	"bufio"
	"io"
)

// DataEntry carries a payload to be written at Pos in the destination.
type DataEntry struct {
	Pos     uint64
	Payload []byte
}

// DataRecordKind discriminates the two record shapes a data stream can
// carry.
type DataRecordKind uint8

const (
	DataRecordEntry DataRecordKind = iota
	DataRecordDone
)

// DataRecord is one decoded record from a data stream.
type DataRecord struct {
	Kind  DataRecordKind
	Entry DataEntry
}

// DataStreamWriter serializes data-stream records. Like HashStreamWriter,
// it is touched only by the pipeline's single writer stage while the
// pipeline runs, and by the caller once the pipeline has finished.
type DataStreamWriter struct {
	w *bufio.Writer
}

func NewDataStreamWriter(w io.Writer) *DataStreamWriter {
	return &DataStreamWriter{w: bufio.NewWriter(w)}
}

func (dw *DataStreamWriter) WriteData(pos uint64, payload []byte) error {
	if err := writeTag(dw.w, tagData); err != nil {
		return err
	}
	if err := writeU64(dw.w, pos); err != nil {
		return err
	}
	if err := writeU32(dw.w, uint32(len(payload))); err != nil {
		return err
	}
	_, err := dw.w.Write(payload)
	return err
}

func (dw *DataStreamWriter) WriteDone() error {
	return writeTag(dw.w, tagDone)
}

func (dw *DataStreamWriter) Flush() error {
	return dw.w.Flush()
}

// DataStreamReader decodes data-stream records one at a time.
type DataStreamReader struct {
	r *bufio.Reader
}

func NewDataStreamReader(r io.Reader) *DataStreamReader {
	return &DataStreamReader{r: bufio.NewReader(r)}
}

func (dr *DataStreamReader) ReadRecord() (*DataRecord, error) {
	tag, err := readTag(dr.r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagData:
		pos, err := readU64(dr.r)
		if err != nil {
			return nil, err
		}
		length, err := readU32(dr.r)
		if err != nil {
			return nil, err
		}
		payload, err := readExact(dr.r, length)
		if err != nil {
			return nil, err
		}
		return &DataRecord{Kind: DataRecordEntry, Entry: DataEntry{Pos: pos, Payload: payload}}, nil
	case tagDone:
		return &DataRecord{Kind: DataRecordDone}, nil
	default:
		return nil, &UnknownTagError{Tag: tag}
	}
}
