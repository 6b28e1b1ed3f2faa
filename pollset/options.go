package pollset

import (
	"log"

	"github.com/orizon-lang/pollset/pollos"
)

// Option configures a Registry at construction time.
type Option[K comparable] func(*Registry[K])

// WithLogger attaches a logger that records retryable waker conditions
// (EWOULDBLOCK drain-and-retry, EINTR retry). Nil by default: a clean
// wait/wake path never logs.
func WithLogger[K comparable](l *log.Logger) Option[K] {
	return func(r *Registry[K]) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSyscall overrides the OS syscall seam, used in tests to inject a
// pollos.MockSyscall.
func WithSyscall[K comparable](sc pollos.Syscall) Option[K] {
	return func(r *Registry[K]) { r.syscall = sc }
}
