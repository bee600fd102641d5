package backdrop

import "sync/atomic"

// Future is a single-fire continuation. Resolve may be called from any
// goroutine; the continuation registered with Then runs on the goroutine that
// calls Poll (the Scene's update goroutine) and runs at most once.
type Future[T any] struct {
	resolved atomic.Bool
	ch       chan T

	fired bool
	value T
	fn    func(T)
}

// NewFuture returns an unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{ch: make(chan T, 1)}
}

// Resolved returns a future that already carries v.
func Resolved[T any](v T) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(v)
	return f
}

// Resolve delivers v. Only the first call has any effect; it reports whether
// this call was the one that resolved the future.
func (f *Future[T]) Resolve(v T) bool {
	if !f.resolved.CompareAndSwap(false, true) {
		return false
	}
	f.ch <- v
	return true
}

// Then sets the continuation, replacing any previous one. Registering after
// the future has fired is a no-op.
func (f *Future[T]) Then(fn func(T)) *Future[T] {
	if !f.fired {
		f.fn = fn
	}
	return f
}

// Poll consumes a delivered value and runs the continuation. It reports
// whether the continuation fired during this call. After firing, the
// continuation is detached.
func (f *Future[T]) Poll() bool {
	if f.fired {
		return false
	}
	select {
	case v := <-f.ch:
		f.fired = true
		f.value = v
		fn := f.fn
		f.fn = nil
		if fn != nil {
			fn(v)
		}
		return true
	default:
		return false
	}
}

// Done reports whether the value has been consumed by Poll.
func (f *Future[T]) Done() bool {
	return f.fired
}

// Value returns the consumed value and whether Poll has consumed it yet.
func (f *Future[T]) Value() (T, bool) {
	return f.value, f.fired
}

// poller is the type-erased view the Scene keeps of pending futures.
type poller interface {
	Poll() bool
	Done() bool
}
