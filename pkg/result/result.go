package result

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/secure-iot/obt-go/pkg/device"
)

// ErrFailed matches every *Failure with errors.Is.
var ErrFailed = errors.New("operation failed")

// Failure is an asynchronous failure reported after a request was accepted.
type Failure struct {
	// Op is the operation name, e.g. "otm.justworks".
	Op string

	// Device is the target device, or device.Nil for tool-local operations.
	Device device.ID

	Code    Code
	Message string
}

func (f *Failure) Error() string {
	msg := f.Message
	if msg == "" {
		msg = f.Code.String()
	}
	if f.Device.IsNil() {
		return fmt.Sprintf("%s: %s", f.Op, msg)
	}
	return fmt.Sprintf("%s %s: %s", f.Op, f.Device, msg)
}

// Is reports whether target is ErrFailed.
func (f *Failure) Is(target error) bool {
	return target == ErrFailed
}

// Fail returns a *Failure as an error.
func Fail(op string, id device.ID, code Code, msg string) error {
	return &Failure{Op: op, Device: id, Code: code, Message: msg}
}

// CodeOf returns the reason code of err, CodeOK for nil and CodeError for
// errors that are not failures.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Code
	}
	return CodeError
}

// Result is the outcome of one asynchronous operation.
type Result[T any] struct {
	Value T
	Err   error
}

// OK returns a successful result.
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Err returns a failed result.
func Err[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Succeeded reports whether the operation succeeded.
func (r Result[T]) Succeeded() bool {
	return r.Err == nil
}

// Handler receives the completion of an operation.
type Handler[T any] func(Result[T])

// Pending is the single-fire completion of one request.
type Pending[T any] struct {
	mu       sync.Mutex
	done     chan struct{}
	res      Result[T]
	resolved bool
	waiters  []Handler[T]

	// onDuplicate is called for completions arriving after the first.
	onDuplicate func(Result[T])
}

// NewPending creates an unresolved Pending.
func NewPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

// OnDuplicate registers a callback for completions that arrive after the
// Pending has already resolved. Such completions are otherwise dropped.
func (p *Pending[T]) OnDuplicate(fn func(Result[T])) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onDuplicate = fn
}

// Resolve completes the Pending. r is dropped if the Pending was already
// resolved. Resolve has the Handler signature so it can be passed
// to the SDK directly.
func (p *Pending[T]) Resolve(r Result[T]) {
	p.TryResolve(r)
}

// TryResolve is like Resolve but reports whether r was accepted.
func (p *Pending[T]) TryResolve(r Result[T]) bool {
	p.mu.Lock()
	if p.resolved {
		dup := p.onDuplicate
		p.mu.Unlock()
		if dup != nil {
			dup(r)
		}
		return false
	}
	p.resolved = true
	p.res = r
	waiters := p.waiters
	p.waiters = nil
	close(p.done)
	p.mu.Unlock()

	for _, fn := range waiters {
		fn(r)
	}
	return true
}

// Then registers fn to run with the result. Handlers registered before
// resolution run on the resolving goroutine; handlers registered afterwards
// run on a new goroutine.
func (p *Pending[T]) Then(fn Handler[T]) {
	p.mu.Lock()
	if !p.resolved {
		p.waiters = append(p.waiters, fn)
		p.mu.Unlock()
		return
	}
	r := p.res
	p.mu.Unlock()
	go fn(r)
}

// Done returns a channel closed when the Pending resolves.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Result returns the result and whether the Pending has resolved.
func (p *Pending[T]) Result() (Result[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.res, p.resolved
}

// Wait blocks until the Pending resolves or ctx is done.
func (p *Pending[T]) Wait(ctx context.Context) (Result[T], error) {
	select {
	case <-p.done:
		r, _ := p.Result()
		return r, nil
	case <-ctx.Done():
		var zero Result[T]
		return zero, ctx.Err()
	}
}
