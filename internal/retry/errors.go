package retry

import (
	"errors"
	"net"
	"os"
	"syscall"
)

// transient is implemented by errors that know whether they are worth
// retrying.
type transient interface {
	Transient() bool
}

// IsTransient determines if an error is transient and should be retried.
// Errors implementing Transient() bool decide for themselves; otherwise
// interrupted or busy system calls, deadline expiry and network timeouts are
// transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te transient
	if errors.As(err, &te) {
		return te.Transient()
	}

	switch {
	case errors.Is(err, syscall.EINTR),
		errors.Is(err, syscall.EAGAIN),
		errors.Is(err, syscall.EBUSY),
		errors.Is(err, os.ErrDeadlineExceeded):
		return true
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	return false
}
