// Package syncengine wires internal/wire and internal/pipeline together
// into the three subcommand behaviours described in §4.1-§4.3: checksum
// reads an object and produces a hash stream, retrieve turns a hash stream
// plus a source object into a data stream, and save applies a data stream
// to a destination object.
package syncengine

import (
	"io"
	"strconv"

	"github.com/blockcopy/blockcopy/internal/blockhash"
	"github.com/blockcopy/blockcopy/internal/logging"
	"github.com/blockcopy/blockcopy/internal/pipeline"
	"github.com/blockcopy/blockcopy/internal/wire"
	"github.com/dustin/go-humanize"
)

// ChecksumOptions configures one checksum run.
type ChecksumOptions struct {
	// Start is the first byte offset to hash; 0 if unset.
	Start uint64
	// End, if non-nil, restricts hashing to [Start, *End).
	End *uint64
	// Seekable must be true only when Source supports reporting its read
	// position reliably (a regular file or block device); it is false for
	// stdin, per §4.1's "non-seekable stream" rule.
	Seekable bool
	Logger   logging.ILogger
}

type rawBlock struct {
	Pos  uint64
	Data []byte
}

// RunChecksum reads Source, hashing it into batches, and writes a complete
// hash stream (Hash records, an optional rest record, and a terminating
// done record) to out.
func RunChecksum(source io.Reader, out io.Writer, opts ChecksumOptions) error {
	if opts.Start > 0 {
		if err := skipToStart(source, opts.Start, opts.Seekable); err != nil {
			return err
		}
	}

	hw := wire.NewHashStreamWriter(out)
	numHashers := pipeline.HasherCount()
	opts.Logger.Log(logging.ELogLevel.Debug(), "checksum: starting with hasher pool size "+strconv.Itoa(numHashers))

	engine := pipeline.NewEngine[rawBlock, []wire.HashEntry](numHashers)
	reader := &checksumReader{src: source, cur: opts.Start, end: opts.End}

	err := engine.Run(reader.next, hashBlocks, func(entries []wire.HashEntry) error {
		for _, e := range entries {
			if werr := hw.WriteHash(e.Pos, e.Len, e.Digest); werr != nil {
				return werr
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if opts.Seekable {
		if werr := hw.WriteRest(reader.cur); werr != nil {
			return logging.WrapIO("write", "hash stream", werr)
		}
	}
	if werr := hw.WriteDone(); werr != nil {
		return logging.WrapIO("write", "hash stream", werr)
	}
	opts.Logger.Log(logging.ELogLevel.Debug(), "checksum: hashed "+humanize.Bytes(reader.cur-opts.Start))
	return logging.WrapIO("flush", "hash stream", hw.Flush())
}

// skipToStart advances source to byte offset start before the reader loop
// ever sees it, so the positions the reader labels its blocks with (§4.1's
// `--start`/`--end`) match the bytes actually being hashed. A seekable
// source (a regular file) jumps there directly; a non-seekable one (stdin)
// has no other way to reach start than reading and discarding up to it.
func skipToStart(source io.Reader, start uint64, seekable bool) error {
	if seekable {
		seeker, ok := source.(io.Seeker)
		if !ok {
			return logging.NewUsageError("source object does not support --start")
		}
		if _, err := seeker.Seek(int64(start), io.SeekStart); err != nil {
			return logging.WrapIO("seek", "source object", err)
		}
		return nil
	}
	if _, err := io.CopyN(io.Discard, source, int64(start)); err != nil {
		return logging.WrapIO("read", "source object", err)
	}
	return nil
}

func hashBlocks(items []rawBlock) ([]wire.HashEntry, error) {
	out := make([]wire.HashEntry, len(items))
	for i, b := range items {
		out[i] = wire.HashEntry{Pos: b.Pos, Len: uint32(len(b.Data)), Digest: blockhash.Sum(b.Data)}
	}
	return out, nil
}

// checksumReader is the sequential reader side of checksum's pipeline: it
// owns the source's read position and forms batches of up to
// pipeline.MaxBatchBlocks blocks at a time (§4.3's "short-read / seek
// semantics (checksum reader)").
type checksumReader struct {
	src io.Reader
	cur uint64
	end *uint64
}

func (r *checksumReader) next() (*pipeline.Batch[rawBlock, []wire.HashEntry], bool, error) {
	var items []rawBlock
	for len(items) < pipeline.MaxBatchBlocks {
		if r.end != nil && r.cur >= *r.end {
			return toHashBatch(items), false, nil
		}

		want := pipeline.BlockSize
		if r.end != nil {
			if remain := *r.end - r.cur; remain < uint64(want) {
				want = int(remain)
			}
		}

		buf := make([]byte, want)
		n, err := io.ReadFull(r.src, buf)
		if n > 0 {
			items = append(items, rawBlock{Pos: r.cur, Data: buf[:n]})
			r.cur += uint64(n)
		}
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return toHashBatch(items), false, nil
			}
			return nil, false, logging.WrapIO("read", "source object", err)
		}
	}
	return toHashBatch(items), true, nil
}

func toHashBatch(items []rawBlock) *pipeline.Batch[rawBlock, []wire.HashEntry] {
	if len(items) == 0 {
		return nil
	}
	return &pipeline.Batch[rawBlock, []wire.HashEntry]{Items: items}
}
