//go:build darwin

package core

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

type sendfileTransfer struct{}

// DefaultFastTransfer returns the Darwin sendfile(2). It only writes to
// sockets and takes an explicit offset, so the source cursor is moved by hand.
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

	seeker, ok := src.(io.Seeker)
	if !ok {
		return 0, ErrInvalidArgument
	}

	offset, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	for {
		written, err := unix.Sendfile(dstFd, srcFd, &offset, n)
		if written > 0 {
			if _, seekErr := seeker.Seek(int64(written), io.SeekCurrent); seekErr != nil {
				return written, seekErr
			}

			return written, nil
		}

		if err == nil {
			return 0, nil
		}

		if errors.Is(err, unix.EINTR) {
			continue
		}

		return 0, classifySendfileError(err)
	}
}

// classifySendfileError maps a sendfile errno to the engine's failure classes.
// EAGAIN falls back to the blocking slow path instead of spinning.
func classifySendfileError(err error) error {
	switch {
	case errors.Is(err, unix.ENOSYS):
		return fmt.Errorf("%w: %w", ErrNotImplemented, os.NewSyscallError("sendfile", err))
	case errors.Is(err, unix.EINVAL), errors.Is(err, unix.ENOTSOCK),
		errors.Is(err, unix.EOPNOTSUPP), errors.Is(err, unix.EAGAIN):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, os.NewSyscallError("sendfile", err))
	default:
		return os.NewSyscallError("sendfile", err)
	}
}
