package pollset

import "github.com/orizon-lang/pollset/pollmask"

// Source is one registered descriptor: its fd, the interest the caller
// declared, and the readiness last reported for it. Revents is owned by
// the Registry and overwritten on every wait; callers should treat a
// Source obtained from Get/All/Take as a snapshot.
type Source struct {
	Fd       int
	Interest pollmask.Mask
	Revents  pollmask.Mask
}

// KeyedSource pairs a Source with the key it was registered under. It is
// the element type returned by Registry.Take, which drains the registry
// the way the original Rust IntoIterator<Item=(K, PollFd)> consumed it.
type KeyedSource[K comparable] struct {
	Key    K
	Source Source
}
