package pipeline

// completionToken is the one-shot signal plus single-slot result container
// shared between exactly one hasher and the writer (§3, §9). The reader
// creates it; a hasher (or, in the bypass path, the reader itself) fills the
// slot and fires the signal exactly once; the writer waits on the signal,
// then reads the slot exactly once.
type completionToken[R any] struct {
	done   chan struct{}
	result R
	err    error
}

func newCompletionToken[R any]() *completionToken[R] {
	return &completionToken[R]{done: make(chan struct{})}
}

// fire populates the result slot and fires the signal. It must be called
// exactly once.
func (t *completionToken[R]) fire(result R, err error) {
	t.result = result
	t.err = err
	close(t.done)
}

// wait blocks until fire has been called, then returns its result.
func (t *completionToken[R]) wait() (R, error) {
	<-t.done
	return t.result, t.err
}
