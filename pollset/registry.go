// Package pollset is a minimal, single-process readiness-notification
// registry over POSIX file descriptors: register descriptors under a
// caller-chosen key, declare interest (readable/writable), block in
// poll(2) until something is ready or a timeout elapses, then iterate
// only the sources that reported events.
//
// The registry is not safe for concurrent use from multiple goroutines.
// Exactly one cross-goroutine operation exists: Waker.Wake.
package pollset

import (
	"iter"

	"golang.org/x/sys/unix"

	"github.com/orizon-lang/pollset/internal/perrors"
	"github.com/orizon-lang/pollset/pollmask"
	"github.com/orizon-lang/pollset/pollos"
	"github.com/orizon-lang/pollset/polltime"
)

// Registry is a keyed collection of Sources and the wait loop over them.
// The zero value is not usable; construct with New or NewWithCapacity.
type Registry[K comparable] struct {
	keys    []K
	sources []Source

	lastEventCount int

	syscall pollos.Syscall
	logger  logger
}

// logger is the minimal surface pollset needs from *log.Logger, so tests
// can pass nil without an interface-typed nil pointer footgun.
type logger interface {
	Printf(format string, args ...any)
}

// New creates an empty registry.
func New[K comparable](opts ...Option[K]) *Registry[K] {
	return NewWithCapacity[K](0, opts...)
}

// NewWithCapacity creates an empty registry, pre-sizing its internal
// slices to n.
func NewWithCapacity[K comparable](n int, opts ...Option[K]) *Registry[K] {
	r := &Registry[K]{
		keys:    make([]K, 0, n),
		sources: make([]Source, 0, n),
		syscall: pollos.Default,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Len returns the number of registered sources.
func (r *Registry[K]) Len() int { return len(r.sources) }

// IsEmpty reports whether no sources are registered.
func (r *Registry[K]) IsEmpty() bool { return len(r.sources) == 0 }

// EventsCount returns the number of sources that reported readiness on
// the most recent wait.
func (r *Registry[K]) EventsCount() int { return r.lastEventCount }

// HasEvents reports EventsCount() > 0.
func (r *Registry[K]) HasEvents() bool { return r.lastEventCount > 0 }

// Register appends a new source. It does not validate that key or fd is
// already registered; duplicates are a caller bug (spec invariant 3).
// Resets previously collected readiness.
func (r *Registry[K]) Register(key K, fd int, interest pollmask.Mask) {
	r.Reset()
	r.insert(key, Source{Fd: fd, Interest: interest & pollmask.All})
}

func (r *Registry[K]) insert(key K, s Source) {
	r.keys = append(r.keys, key)
	r.sources = append(r.sources, s)
}

// Unregister removes the first source registered under key via
// swap-remove: the last source takes its slot, so storage order after a
// removal is not the original registration order. No-op if key is not
// found. Resets previously collected readiness.
func (r *Registry[K]) Unregister(key K) {
	r.Reset()
	ix, ok := r.find(key)
	if !ok {
		return
	}
	last := len(r.keys) - 1
	r.keys[ix] = r.keys[last]
	r.sources[ix] = r.sources[last]
	r.keys = r.keys[:last]
	r.sources = r.sources[:last]
}

// Set ORs mask into the interest of the source registered under key.
// Only Read/Write bits are honoured (spec invariant 4). Returns whether
// a source was found. Resets previously collected readiness.
func (r *Registry[K]) Set(key K, mask pollmask.Mask) bool {
	r.Reset()
	ix, ok := r.find(key)
	if !ok {
		return false
	}
	r.sources[ix].Interest = r.sources[ix].Interest.Set(mask & pollmask.All)
	return true
}

// Unset AND-NOTs mask out of the interest of the source registered under
// key. Returns whether a source was found. Resets previously collected
// readiness.
func (r *Registry[K]) Unset(key K, mask pollmask.Mask) bool {
	r.Reset()
	ix, ok := r.find(key)
	if !ok {
		return false
	}
	r.sources[ix].Interest = r.sources[ix].Interest.Unset(mask & pollmask.All)
	return true
}

// Get returns a copy of the source registered under key.
func (r *Registry[K]) Get(key K) (Source, bool) {
	ix, ok := r.find(key)
	if !ok {
		return Source{}, false
	}
	return r.sources[ix], true
}

// GetMut returns a pointer into the registry's internal storage for the
// source registered under key. The pointer is invalidated by any
// subsequent Register/Unregister call, which may reallocate or
// swap-remove the backing slice.
func (r *Registry[K]) GetMut(key K) (*Source, bool) {
	ix, ok := r.find(key)
	if !ok {
		return nil, false
	}
	return &r.sources[ix], true
}

func (r *Registry[K]) find(key K) (int, bool) {
	for i, k := range r.keys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// Reset clears every source's Revents and the event count, returning the
// count as it stood before clearing.
func (r *Registry[K]) Reset() int {
	count := r.lastEventCount
	for i := range r.sources {
		r.sources[i].Revents = pollmask.None
	}
	r.lastEventCount = 0
	return count
}

// Wait blocks until at least one source is ready, or forever if none
// ever become ready and nothing wakes it. Equivalent to
// WaitTimeout(polltime.Never).
func (r *Registry[K]) Wait() (timedOut bool, err error) {
	return r.WaitTimeout(polltime.Never)
}

// WaitTimeout blocks until a registered source becomes ready, the
// timeout elapses, or an error occurs. It returns whether the call
// timed out (true) as opposed to observing at least one event (false).
// Reset happens at entry: any readiness visible before this call is
// cleared immediately, not lazily at return.
//
// If the registry is empty and t is Never, this returns (false, nil)
// without blocking rather than deadlocking on an empty set (spec.md's
// adopted, permissive resolution of its own open question).
func (r *Registry[K]) WaitTimeout(t polltime.Timeout) (timedOut bool, err error) {
	r.Reset()

	if len(r.sources) == 0 && t.IsNever() {
		return false, nil
	}

	pfds := make([]unix.PollFd, len(r.sources))
	for i, s := range r.sources {
		pfds[i] = unix.PollFd{Fd: int32(s.Fd), Events: int16(s.Interest)}
	}

	n, perr := r.syscall.Poll(pfds, t.Millis())
	if perr != nil {
		return false, perrors.NewOSError(perrors.OpPoll, perr)
	}
	if n == 0 {
		return true, nil
	}

	for i := range r.sources {
		r.sources[i].Revents = pollmask.Mask(pfds[i].Revents)
	}
	r.lastEventCount = n

	return false, nil
}

// All returns an iterator over (key, source) pairs for sources whose
// Revents is non-empty, in current storage order. It does not clear
// Revents and does not mutate the registry.
func (r *Registry[K]) All() iter.Seq2[K, Source] {
	return func(yield func(K, Source) bool) {
		r.checkAligned()
		for i, k := range r.keys {
			s := r.sources[i]
			if s.Revents.IsEmpty() {
				continue
			}
			if !yield(k, s) {
				return
			}
		}
	}
}

// Take drains the registry, returning every source whose Revents was
// non-empty as a KeyedSource. After Take, the registry is empty,
// mirroring the original Rust IntoIterator<Item=(K, PollFd)>'s consuming
// semantics; Go has no borrow checker to enforce this, so Take is the
// explicit opt-in to that behaviour alongside the non-consuming All.
func (r *Registry[K]) Take() []KeyedSource[K] {
	r.checkAligned()
	out := make([]KeyedSource[K], 0, r.lastEventCount)
	for i, k := range r.keys {
		s := r.sources[i]
		if s.Revents.IsEmpty() {
			continue
		}
		out = append(out, KeyedSource[K]{Key: k, Source: s})
	}
	r.keys = r.keys[:0]
	r.sources = r.sources[:0]
	r.lastEventCount = 0
	return out
}

func (r *Registry[K]) checkAligned() {
	if len(r.keys) != len(r.sources) {
		panic("pollset: keys and sources desynchronized")
	}
}
