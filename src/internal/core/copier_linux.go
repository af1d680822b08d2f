//go:build linux

package core

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

type sendfileTransfer struct{}

// DefaultFastTransfer returns sendfile(2), which on Linux accepts any
// regular-file source and advances its offset itself.
func DefaultFastTransfer() FastTransfer {
	return sendfileTransfer{}
}

func (sendfileTransfer) Name() string {
	return "sendfile"
}

func (sendfileTransfer) Transfer(dst io.Writer, src Source, n int) (int, error) {
	dstFd, srcFd, ok := descriptors(dst, src)
	if !ok {
		return 0, ErrInvalidArgument
	}

	for {
		written, err := unix.Sendfile(dstFd, srcFd, nil, n)

		if err == nil {
			return written, nil
		}

		if errors.Is(err, unix.EINTR) {
			continue
		}

		return 0, classifySendfileError(err)
	}
}

// classifySendfileError maps a sendfile errno to the engine's failure classes.
func classifySendfileError(err error) error {
	switch {
	case errors.Is(err, unix.ENOSYS):
		return fmt.Errorf("%w: %w", ErrNotImplemented, os.NewSyscallError("sendfile", err))
	case errors.Is(err, unix.EINVAL):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, os.NewSyscallError("sendfile", err))
	default:
		return os.NewSyscallError("sendfile", err)
	}
}
