// Package pollos is the thin OS syscall seam used by pollset. Isolating
// the raw poll(2)/socketpair(2)/fcntl(2) calls behind an interface lets
// the registry's error-handling branches (EINTR surfaced, other errno
// surfaced) be exercised deterministically in tests, without depending
// on real, timing-sensitive file descriptor behaviour.
package pollos

import "golang.org/x/sys/unix"

//go:generate go run go.uber.org/mock/mockgen -source=pollos.go -destination=pollos_mock.go -package=pollos

// Syscall is the subset of the POSIX multiplexing/descriptor surface
// that pollset depends on.
type Syscall interface {
	// Poll blocks until a source is ready, the timeout (milliseconds,
	// -1 for infinite) elapses, or an error occurs. Returns the number
	// of fds with non-zero Revents.
	Poll(fds []unix.PollFd, timeoutMs int) (int, error)

	// Socketpair returns a connected pair of local stream descriptors
	// (writer, reader).
	Socketpair() (writer int, reader int, err error)

	// SetNonblock toggles O_NONBLOCK on fd via fcntl.
	SetNonblock(fd int, nonblocking bool) error

	// Read and Write operate on raw descriptors, bypassing anything
	// that would close fd on scope exit.
	Read(fd int, p []byte) (int, error)
	Write(fd int, p []byte) (int, error)

	// Close closes a raw descriptor.
	Close(fd int) error
}

// Default is the real OS-backed implementation, used outside of tests.
var Default Syscall = unixSyscall{}

type unixSyscall struct{}

func (unixSyscall) Poll(fds []unix.PollFd, timeoutMs int) (int, error) {
	return unix.Poll(fds, timeoutMs)
}

func (unixSyscall) Socketpair() (int, int, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, -1, err
	}
	// fds[0] is the write end by convention in this package; either end
	// of a stream socketpair is interchangeable at the kernel level.
	return fds[0], fds[1], nil
}

func (unixSyscall) SetNonblock(fd int, nonblocking bool) error {
	return unix.SetNonblock(fd, nonblocking)
}

func (unixSyscall) Read(fd int, p []byte) (int, error) {
	return unix.Read(fd, p)
}

func (unixSyscall) Write(fd int, p []byte) (int, error) {
	return unix.Write(fd, p)
}

func (unixSyscall) Close(fd int) error {
	return unix.Close(fd)
}
