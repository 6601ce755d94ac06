package pipeline

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestEngineOrdersOutputByReaderOrder hashes batches out of order on purpose
// (random per-call sleeps) and asserts the writer still sees them in the
// exact order the reader produced them, per the completion-token design.
func TestEngineOrdersOutputByReaderOrder(t *testing.T) {
	const numBatches = 200
	var nextItem int
	var mu sync.Mutex

	e := NewEngine[int, int](4)

	read := func() (*Batch[int, int], bool, error) {
		mu.Lock()
		defer mu.Unlock()
		if nextItem >= numBatches {
			return nil, false, nil
		}
		item := nextItem
		nextItem++
		return &Batch[int, int]{Items: []int{item}}, nextItem < numBatches, nil
	}

	hash := func(items []int) (int, error) {
		time.Sleep(time.Duration(rand.Intn(2000)) * time.Microsecond)
		return items[0], nil
	}

	var mu2 sync.Mutex
	var out []int
	emit := func(result int) error {
		mu2.Lock()
		defer mu2.Unlock()
		out = append(out, result)
		return nil
	}

	require.NoError(t, e.Run(read, hash, emit))
	require.Len(t, out, numBatches)
	for i, v := range out {
		require.Equal(t, i, v)
	}
}

// TestEngineDrainsOnHasherError verifies a hard failure in one hasher call
// still lets every already-enqueued batch's token fire, so the writer never
// blocks forever, and the engine surfaces the failure.
func TestEngineDrainsOnHasherError(t *testing.T) {
	const numBatches = 50
	var nextItem int

	e := NewEngine[int, int](3)

	read := func() (*Batch[int, int], bool, error) {
		if nextItem >= numBatches {
			return nil, false, nil
		}
		item := nextItem
		nextItem++
		return &Batch[int, int]{Items: []int{item}}, nextItem < numBatches, nil
	}

	hash := func(items []int) (int, error) {
		if items[0] == 5 {
			return 0, errRuntime
		}
		return items[0], nil
	}

	var emitCount int
	var muEmit sync.Mutex
	emit := func(result int) error {
		muEmit.Lock()
		defer muEmit.Unlock()
		emitCount++
		return nil
	}

	err := e.Run(read, hash, emit)
	require.Error(t, err)
	require.Greater(t, emitCount, 0)
}

// TestEngineRunsPrecomputedBatchesInline exercises the bypass path used by
// retrieve's rest phase: a batch whose result is already known skips the
// hasher pool entirely.
func TestEngineRunsPrecomputedBatchesInline(t *testing.T) {
	e := NewEngine[int, string](2)
	sent := false

	read := func() (*Batch[int, string], bool, error) {
		if sent {
			return nil, false, nil
		}
		sent = true
		result := "precomputed"
		return &Batch[int, string]{Precomputed: &result}, false, nil
	}

	hash := func(items []int) (string, error) {
		t.Fatal("hash should never be called for a precomputed batch")
		return "", nil
	}

	var got string
	emit := func(result string) error {
		got = result
		return nil
	}

	require.NoError(t, e.Run(read, hash, emit))
	require.Equal(t, "precomputed", got)
}

var errRuntime = &runtimeTestError{"boom"}

type runtimeTestError struct{ msg string }

func (e *runtimeTestError) Error() string { return e.msg }
