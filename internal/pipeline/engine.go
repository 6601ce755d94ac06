package pipeline

import (
	"github.com/blockcopy/blockcopy/internal/logging"
	"golang.org/x/sync/errgroup"
)

// HashFunc computes a batch's result. It runs on a hasher worker and must
// be stateless across calls - nothing about one batch may leak into the
// next (§4.3).
type HashFunc[T, R any] func(items []T) (R, error)

// EmitFunc serializes one batch's result to the output stream. It runs on
// the single writer worker, so it owns the output stream exclusively and
// needs no lock of its own (§5, §9 design notes).
type EmitFunc[R any] func(result R) error

// Batch is what the reader hands the engine for one unit of scheduling: a
// group of items to run through HashFunc, or - when the reader has already
// computed the answer itself (e.g. retrieve's unconditional `rest` phase,
// which needs no hash comparison) - a Precomputed result that bypasses the
// hasher pool entirely and goes straight onto the write queue with its
// token pre-fired (§4.3's "rest phase bypasses block_queue" rule).
type Batch[T, R any] struct {
	Items       []T
	Precomputed *R
}

// ReadFunc produces the next batch of work. It returns more=false to signal
// a clean end of input (the reader has nothing left to read, or - in
// retrieve's case - observed an incomplete stream and chose to stop without
// treating that as a hard pipeline failure; that distinction is the
// caller's to make, not the engine's). Returning a non-nil error is a hard
// failure: it poisons the error collector and the whole pipeline winds
// down.
type ReadFunc[T, R any] func() (batch *Batch[T, R], more bool, err error)

// Engine runs the reader -> bounded block queue -> hasher pool -> bounded
// send queue -> writer pipeline described in §4.3 and §5. It is single-use:
// construct one, call Run once.
type Engine[T, R any] struct {
	numHashers int
	blockQueue chan job[T, R]
	sendQueue  chan *completionToken[R]
	errs       *errorCollector
}

type job[T, R any] struct {
	items []T
	token *completionToken[R]
}

// NewEngine builds an engine with numHashers workers and queues bounded to
// QueueFactor*numHashers batches each.
func NewEngine[T, R any](numHashers int) *Engine[T, R] {
	if numHashers < 1 {
		numHashers = 1
	}
	size := QueueFactor * numHashers
	return &Engine[T, R]{
		numHashers: numHashers,
		blockQueue: make(chan job[T, R], size),
		sendQueue:  make(chan *completionToken[R], size),
		errs:       newErrorCollector(),
	}
}

// enqueue publishes a batch for hashing. The two sends happen in this
// strict order - block_queue, then send_queue - so the writer always drains
// send_queue in reader order (§3's completion-token invariant).
func (e *Engine[T, R]) enqueue(items []T) {
	token := newCompletionToken[R]()
	e.blockQueue <- job[T, R]{items: items, token: token}
	e.sendQueue <- token
}

// enqueuePrecomputed publishes an already-computed result directly onto
// send_queue, with its token pre-fired, bypassing block_queue and the
// hasher pool entirely.
func (e *Engine[T, R]) enqueuePrecomputed(result R) {
	token := newCompletionToken[R]()
	token.fire(result, nil)
	e.sendQueue <- token
}

// Run launches the reader, the hasher pool, and the writer, and blocks
// until all three have finished. It returns the first WorkerError any of
// them raised, wrapped via the error collector, or nil on success.
func (e *Engine[T, R]) Run(read ReadFunc[T, R], hash HashFunc[T, R], emit EmitFunc[R]) error {
	var g errgroup.Group

	g.Go(func() error { return e.runReader(read) })
	for i := 0; i < e.numHashers; i++ {
		g.Go(func() error { return e.runHasher(hash) })
	}
	g.Go(func() error { return e.runWriter(emit) })

	_ = g.Wait()
	return e.errs.firstError()
}

// runReader drives ReadFunc until it reports no more input or fails. Its
// cleanup path - closing both queues - always runs, which is what lets the
// hasher pool and writer notice shutdown without relying on a fixed count
// of explicit sentinel values.
func (e *Engine[T, R]) runReader(read ReadFunc[T, R]) error {
	defer close(e.blockQueue)
	defer close(e.sendQueue)

	for {
		if e.errs.hasError() {
			return nil
		}
		batch, more, err := read()
		if err != nil {
			werr := logging.NewWorkerError("reader", err)
			e.errs.collect(werr)
			return werr
		}
		if batch != nil {
			switch {
			case batch.Precomputed != nil:
				e.enqueuePrecomputed(*batch.Precomputed)
			case len(batch.Items) > 0:
				e.enqueue(batch.Items)
			}
		}
		if !more {
			return nil
		}
	}
}

// runHasher drains block_queue until the reader closes it. Once the error
// collector has latched a failure, it stops doing real hashing work but
// keeps dequeuing and firing tokens (with a zero result) so the writer -
// which is waiting on those very tokens - never deadlocks (§4.4's
// drain-on-error discipline).
func (e *Engine[T, R]) runHasher(hash HashFunc[T, R]) error {
	for j := range e.blockQueue {
		if e.errs.hasError() {
			var zero R
			j.token.fire(zero, nil)
			continue
		}
		result, err := safeHash(hash, j.items)
		if err != nil {
			e.errs.collect(logging.NewWorkerError("hasher", err))
		}
		j.token.fire(result, err)
	}
	return nil
}

func safeHash[T, R any](hash HashFunc[T, R], items []T) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredPanic(r)
		}
	}()
	return hash(items)
}

// runWriter drains send_queue until the reader closes it, waiting on each
// token in FIFO order. Once any worker has failed, it keeps draining
// (discarding results) instead of emitting them, so a partially-broken
// pipeline never writes a torn record.
func (e *Engine[T, R]) runWriter(emit EmitFunc[R]) error {
	for token := range e.sendQueue {
		result, err := token.wait()
		if err != nil {
			e.errs.collect(logging.NewWorkerError("hasher", err))
			continue
		}
		if e.errs.hasError() {
			continue
		}
		if werr := safeEmit(emit, result); werr != nil {
			e.errs.collect(logging.NewWorkerError("writer", werr))
		}
	}
	return nil
}

func safeEmit[R any](emit EmitFunc[R], result R) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredPanic(r)
		}
	}()
	return emit(result)
}
