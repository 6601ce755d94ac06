package pipeline

import "github.com/pkg/errors"

// recoveredPanic turns a recovered panic value into an error, so a fault in
// a hasher or the writer's emit callback surfaces as an ordinary
// WorkerException instead of taking down the whole process (§7,
// WorkerException).
func recoveredPanic(r interface{}) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "recovered panic")
	}
	return errors.Errorf("recovered panic: %v", r)
}
