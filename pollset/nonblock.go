package pollset

import "github.com/orizon-lang/pollset/pollos"

// SetNonblocking toggles O_NONBLOCK on fd via fcntl(F_GETFL)/fcntl(F_SETFL).
// It is a free-standing convenience: the registry itself never touches
// blocking mode, since it never owns caller descriptors.
func SetNonblocking(fd int, nonblocking bool) error {
	return pollos.Default.SetNonblock(fd, nonblocking)
}
