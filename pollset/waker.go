package pollset

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/orizon-lang/pollset/internal/perrors"
	"github.com/orizon-lang/pollset/pollmask"
	"github.com/orizon-lang/pollset/pollos"
)

// Waker lets any goroutine interrupt a Registry's blocked WaitTimeout
// call. It owns a connected pair of non-blocking local stream
// descriptors; unlike the sources a caller registers directly, the
// Waker closes both ends on Close.
type Waker struct {
	writer int
	reader int

	syscall pollos.Syscall
	logger  logger
}

// NewWaker creates a self-pipe pair and registers its read end into reg
// under key with Read interest, so reg's wait loop polls the waker like
// any other source.
func NewWaker[K comparable](reg *Registry[K], key K) (*Waker, error) {
	sc := reg.syscall

	writer, reader, err := sc.Socketpair()
	if err != nil {
		return nil, perrors.NewOSError(perrors.OpSocketpair, err)
	}
	if err := sc.SetNonblock(reader, true); err != nil {
		_ = sc.Close(writer)
		_ = sc.Close(reader)
		return nil, perrors.NewOSError(perrors.OpFcntl, err)
	}
	if err := sc.SetNonblock(writer, true); err != nil {
		_ = sc.Close(writer)
		_ = sc.Close(reader)
		return nil, perrors.NewOSError(perrors.OpFcntl, err)
	}

	reg.insert(key, Source{Fd: reader, Interest: pollmask.Read})

	return &Waker{writer: writer, reader: reader, syscall: sc, logger: reg.logger}, nil
}

// Wake is safe to call from any goroutine, including while another
// goroutine is blocked in the registry's WaitTimeout. It writes a single
// byte to the writer end. N wakes without an intervening Reset collapse
// to at least one readiness notification, never zero: if the kernel
// buffer is full, Wake drains the reader and retries the write.
func (w *Waker) Wake() error {
	_, err := w.syscall.Write(w.writer, []byte{0x1})
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK):
		if w.logger != nil {
			w.logger.Printf("pollset: waker buffer full, draining reader before retry")
		}
		if derr := w.drain(w.reader); derr != nil {
			return derr
		}
		return w.Wake()
	case errors.Is(err, unix.EINTR):
		if w.logger != nil {
			w.logger.Printf("pollset: waker write interrupted, retrying")
		}
		return w.Wake()
	default:
		return perrors.NewOSError(perrors.OpWrite, err)
	}
}

// Reset drains the waker's own reader, so that a later Wake is not
// elided by a still-full buffer. Callers typically call this after
// observing the waker ready.
func (w *Waker) Reset() error {
	return w.drain(w.reader)
}

// DrainReader drains an arbitrary raw descriptor until it would block or
// the peer closes it, using the raw read syscall rather than an owning
// stream wrapper, so the descriptor is never closed as a side effect.
func DrainReader(fd int) error {
	return drainWith(pollos.Default, fd)
}

func (w *Waker) drain(fd int) error {
	return drainWith(w.syscall, fd)
}

func drainWith(sc pollos.Syscall, fd int) error {
	var buf [4096]byte
	for {
		n, err := sc.Read(fd, buf[:])
		switch {
		case err == nil && n == 0:
			// Peer closed; unreachable for a Waker's own pair since it
			// owns both ends, but a correct terminal condition for any
			// raw fd passed to DrainReader.
			return nil
		case err == nil:
			continue
		case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK):
			return nil
		default:
			return perrors.NewOSError(perrors.OpRead, err)
		}
	}
}

// Close closes both ends of the waker's pair. The Registry it was
// registered into does not own the descriptor and will not close it;
// callers must Unregister the waker's key themselves if they intend to
// keep using the registry afterward.
func (w *Waker) Close() error {
	err1 := w.syscall.Close(w.writer)
	err2 := w.syscall.Close(w.reader)
	if err1 != nil {
		return perrors.NewOSError(perrors.OpClose, err1)
	}
	if err2 != nil {
		return perrors.NewOSError(perrors.OpClose, err2)
	}
	return nil
}

// ReaderFd returns the raw descriptor of the waker's read end, e.g. to
// pass to DrainReader directly instead of through Reset.
func (w *Waker) ReaderFd() int { return w.reader }
