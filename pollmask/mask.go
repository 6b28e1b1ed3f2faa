// Package pollmask defines the readiness/interest bitfield shared by the
// pollset registry and its waker.
package pollmask

import "golang.org/x/sys/unix"

// Mask is a small bitfield of POSIX poll(2) event bits. Interest masks
// (what a caller asks to be notified about) may only contain Read/Write.
// Readiness masks (what the OS reports back) may contain any bit,
// including the implicit ones that are never valid as interest.
type Mask int16

const (
	// None is the empty mask. Valid as an interest; never returned as
	// readiness.
	None Mask = 0

	// Read: the source has bytes available, or urgent out-of-band data.
	Read Mask = Mask(unix.POLLIN | unix.POLLPRI)

	// Write: the source accepts bytes without blocking, including
	// out-of-band write room.
	Write Mask = Mask(unix.POLLOUT | unix.POLLWRBAND)

	// All is the union of Read and Write.
	All Mask = Read | Write

	// Hangup, Error and Invalid are readiness-only: the kernel sets them
	// regardless of what was requested in the interest mask.
	Hangup  Mask = Mask(unix.POLLHUP)
	Error   Mask = Mask(unix.POLLERR)
	Invalid Mask = Mask(unix.POLLNVAL)
)

// Set returns m with bits OR'd in.
func (m Mask) Set(bits Mask) Mask { return m | bits }

// Unset returns m with bits AND-NOT'd out.
func (m Mask) Unset(bits Mask) Mask { return m &^ bits }

// IsEmpty reports whether no bits, including implicit ones, are set.
func (m Mask) IsEmpty() bool { return m == None }

// IsReadable reports whether the Read bits are set.
func (m Mask) IsReadable() bool { return m&Read != 0 }

// IsWritable reports whether the Write bits are set.
func (m Mask) IsWritable() bool { return m&Write != 0 }

// HasHangup reports whether the peer has closed its end.
func (m Mask) HasHangup() bool { return m&Hangup != 0 }

// HasErrored reports whether an asynchronous error is pending.
func (m Mask) HasErrored() bool { return m&Error != 0 }

// IsInvalid reports whether the descriptor is not open or not pollable.
func (m Mask) IsInvalid() bool { return m&Invalid != 0 }

// IsErr reports HasErrored() || IsInvalid().
func (m Mask) IsErr() bool { return m.HasErrored() || m.IsInvalid() }
