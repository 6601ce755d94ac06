package syncengine

import (
	"io"

	"github.com/blockcopy/blockcopy/internal/blockhash"
	"github.com/blockcopy/blockcopy/internal/logging"
	"github.com/blockcopy/blockcopy/internal/pipeline"
	"github.com/blockcopy/blockcopy/internal/wire"
	"github.com/pkg/errors"
)

// RetrieveOptions configures one retrieve run.
type RetrieveOptions struct {
	Logger logging.ILogger
}

// RunRetrieve reads hashIn (the hash stream produced by checksum) and
// source (the local source object, accessed purely via ReadAt so the
// hasher pool can read it concurrently - see DESIGN.md's open-question
// notes on why this replaces the spec's single stateful seek cursor), and
// writes a complete data stream to out.
//
// On a premature EOF of hashIn (no trailing done record), RunRetrieve
// returns a *logging.IncompleteReadError after flushing whatever data it
// had already produced - it does not poison the pipeline's error collector,
// so in-flight batches still get written out cleanly (§4.4).
func RunRetrieve(source io.ReaderAt, hashIn io.Reader, out io.Writer, opts RetrieveOptions) error {
	hr := wire.NewHashStreamReader(hashIn)
	dw := wire.NewDataStreamWriter(out)
	numHashers := pipeline.HasherCount()

	reader := &retrieveReader{hashReader: hr, source: source}
	hashFn := retrieveHashFn(source)
	emitFn := func(entries []wire.DataEntry) error {
		for _, e := range entries {
			if werr := dw.WriteData(e.Pos, e.Payload); werr != nil {
				return werr
			}
		}
		return nil
	}

	engine := pipeline.NewEngine[wire.HashEntry, []wire.DataEntry](numHashers)
	err := engine.Run(reader.next, hashFn, emitFn)
	if err != nil {
		_ = dw.Flush()
		return err
	}

	if reader.incomplete {
		_ = dw.Flush()
		return logging.NewIncompleteReadError("hash stream closed before a terminating done record")
	}

	if werr := dw.WriteDone(); werr != nil {
		return logging.WrapIO("write", "data stream", werr)
	}
	return logging.WrapIO("flush", "data stream", dw.Flush())
}

func retrieveHashFn(source io.ReaderAt) pipeline.HashFunc[wire.HashEntry, []wire.DataEntry] {
	return func(items []wire.HashEntry) ([]wire.DataEntry, error) {
		var out []wire.DataEntry
		for _, entry := range items {
			buf := make([]byte, entry.Len)
			n, err := source.ReadAt(buf, int64(entry.Pos))
			if err != nil && err != io.EOF {
				return nil, logging.WrapIO("read", "source object", err)
			}
			switch {
			case n == int(entry.Len):
				// Full block read: compare digests, the normal case.
				if blockhash.Sum(buf) != entry.Digest {
					out = append(out, wire.DataEntry{Pos: entry.Pos, Payload: buf})
				}
			case n > 0:
				// Source hit EOF mid-block: no comparison is possible, so
				// treat it as mismatched unconditionally.
				out = append(out, wire.DataEntry{Pos: entry.Pos, Payload: buf[:n]})
			default:
				// Source EOF already past pos: nothing to send.
			}
		}
		return out, nil
	}
}

// retrieveReaderState tracks which phase of the hash stream the reader is
// currently consuming.
type retrieveReaderState uint8

const (
	stateConsumingHash retrieveReaderState = iota
	stateStreamingRest
	stateAwaitingTrailingDone
	stateFinished
)

// retrieveReader is the sequential reader side of retrieve's pipeline. It
// owns the hash-stream input and, once it sees a rest directive, also owns
// the unconditional sequential tail-read of the source object.
type retrieveReader struct {
	hashReader *wire.HashStreamReader
	source     io.ReaderAt

	state        retrieveReaderState
	legacyCursor uint64
	restCursor   uint64

	incomplete bool
}

func (r *retrieveReader) next() (*pipeline.Batch[wire.HashEntry, []wire.DataEntry], bool, error) {
	switch r.state {
	case stateConsumingHash:
		return r.nextHashBatch()
	case stateStreamingRest:
		return r.nextRestBatch()
	case stateAwaitingTrailingDone:
		return r.awaitTrailingDone()
	default:
		return nil, false, nil
	}
}

func (r *retrieveReader) nextHashBatch() (*pipeline.Batch[wire.HashEntry, []wire.DataEntry], bool, error) {
	var items []wire.HashEntry
	for len(items) < pipeline.MaxBatchBlocks {
		rec, err := r.hashReader.ReadRecord()
		if err != nil {
			if err == wire.ErrIncompleteStream {
				r.incomplete = true
				r.state = stateFinished
				return toDataBatchItems(items), false, nil
			}
			return nil, false, unknownTagToLogging(err)
		}

		switch rec.Kind {
		case wire.HashRecordEntry:
			entry := rec.Entry
			if entry.Legacy {
				entry.Pos = r.legacyCursor
			}
			r.legacyCursor = entry.Pos + uint64(entry.Len)
			items = append(items, entry)
		case wire.HashRecordRest:
			r.restCursor = rec.RestOffset
			r.state = stateStreamingRest
			return toDataBatchItems(items), true, nil
		case wire.HashRecordDone:
			r.state = stateFinished
			return toDataBatchItems(items), false, nil
		}
	}
	return toDataBatchItems(items), true, nil
}

func (r *retrieveReader) nextRestBatch() (*pipeline.Batch[wire.HashEntry, []wire.DataEntry], bool, error) {
	var entries []wire.DataEntry
	for len(entries) < pipeline.MaxBatchBlocks {
		buf := make([]byte, pipeline.BlockSize)
		n, err := r.source.ReadAt(buf, int64(r.restCursor))
		if n > 0 {
			entries = append(entries, wire.DataEntry{Pos: r.restCursor, Payload: buf[:n]})
			r.restCursor += uint64(n)
		}
		if err != nil {
			if err == io.EOF {
				r.state = stateAwaitingTrailingDone
				return toPrecomputedBatch(entries), true, nil
			}
			return nil, false, logging.WrapIO("read", "source object", err)
		}
	}
	return toPrecomputedBatch(entries), true, nil
}

func toPrecomputedBatch(entries []wire.DataEntry) *pipeline.Batch[wire.HashEntry, []wire.DataEntry] {
	if len(entries) == 0 {
		return nil
	}
	result := entries
	return &pipeline.Batch[wire.HashEntry, []wire.DataEntry]{Precomputed: &result}
}

func (r *retrieveReader) awaitTrailingDone() (*pipeline.Batch[wire.HashEntry, []wire.DataEntry], bool, error) {
	rec, err := r.hashReader.ReadRecord()
	if err != nil {
		if err == wire.ErrIncompleteStream {
			r.incomplete = true
			r.state = stateFinished
			return nil, false, nil
		}
		return nil, false, unknownTagToLogging(err)
	}
	r.state = stateFinished
	if rec.Kind != wire.HashRecordDone {
		return nil, false, errors.New("retrieve: expected a done record to follow rest")
	}
	return nil, false, nil
}

func toDataBatchItems(items []wire.HashEntry) *pipeline.Batch[wire.HashEntry, []wire.DataEntry] {
	if len(items) == 0 {
		return nil
	}
	return &pipeline.Batch[wire.HashEntry, []wire.DataEntry]{Items: items}
}

func unknownTagToLogging(err error) error {
	if ute, ok := err.(*wire.UnknownTagError); ok {
		return logging.NewUnknownCommandError(ute.Tag)
	}
	return err
}
