package wire

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// translateEOF maps any flavour of "the stream ended here" into
// ErrIncompleteStream, leaving genuine I/O failures untouched so the caller
// can still tell the two apart.
func translateEOF(err error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrIncompleteStream
	}
	return errors.Wrap(err, "wire: read failed")
}

func readTag(r *bufio.Reader) (string, error) {
	var buf [tagSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return "", translateEOF(err)
	}
	return string(buf[:]), nil
}

func readU32(r *bufio.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, translateEOF(err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readU64(r *bufio.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, translateEOF(err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func readExact(r *bufio.Reader, n uint32) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, translateEOF(err)
	}
	return buf, nil
}

func writeTag(w *bufio.Writer, tag string) error {
	_, err := w.WriteString(tag)
	return errors.Wrap(err, "wire: write failed")
}

func writeU32(w *bufio.Writer, v uint32) error {
	return errors.Wrap(binary.Write(w, binary.BigEndian, v), "wire: write failed")
}

func writeU64(w *bufio.Writer, v uint64) error {
	return errors.Wrap(binary.Write(w, binary.BigEndian, v), "wire: write failed")
}
