package core

// Shared holds a hardware handle that both the main context and an
// interrupt handler use. Every access runs inside a critical section, so at
// most one context touches the handle at a time.
//
// The zero value is empty and ready for Init.
type Shared[T any] struct {
	handle T
	ready  bool
}

// Init stores the handle. It must be called exactly once, before the
// interrupt that uses the handle is unmasked; a second call panics rather
// than replace a handle another context may be holding.
func (s *Shared[T]) Init(handle T) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.ready {
		panic("core: shared handle initialized twice")
	}
	s.handle = handle
	s.ready = true
}

// Ready reports whether Init has been called.
func (s *Shared[T]) Ready() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return s.ready
}

// WithLock runs f with exclusive access to the handle. Interrupts stay
// masked until f returns, so f must be a handful of register writes.
// Panics if Init has not been called.
//
// f must not enter another critical section. On TinyGo the interrupt mask
// nests, but on regular Go it is a single process-wide lock, so calling
// Ready, WithLock or With on any handle from inside f deadlocks there.
// Take sections on different handles one after another instead.
func (s *Shared[T]) WithLock(f func(T)) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if !s.ready {
		panic("core: shared handle used before Init")
	}
	f(s.handle)
}

// With is WithLock for operations that produce a value.
func With[T, R any](s *Shared[T], f func(T) R) R {
	var r R
	s.WithLock(func(h T) {
		r = f(h)
	})
	return r
}
