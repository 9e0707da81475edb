package parallel

import (
	"fmt"
	"runtime/debug"
)

// PanicError carries a value recovered from a panicking goroutine together
// with the stack captured at the recovery point.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements error.
func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v\n%s", e.Value, e.Stack)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// RecoverAsError converts a value returned by recover() into an error.
// It returns nil when p is nil. Call it directly inside the deferred
// function so the captured stack includes the panicking frame.
func RecoverAsError(p any) error {
	if p == nil {
		return nil
	}
	return &PanicError{Value: p, Stack: debug.Stack()}
}

// Go runs fn on a new goroutine and reports a panic, if any, to c.
// done is called when fn returns or panics.
func Go(c *ErrorCollector, done func(), fn func()) {
	go func() {
		defer done()
		defer func() {
			c.SetError(RecoverAsError(recover()))
		}()
		fn()
	}()
}

// Run calls fn on the current goroutine and reports a panic, if any, to c.
// It is the inline counterpart of Go.
func Run(c *ErrorCollector, fn func()) {
	defer func() {
		c.SetError(RecoverAsError(recover()))
	}()
	fn()
}
