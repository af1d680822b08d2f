package core

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// slowCopy moves src to dst through the engine's fixed buffer. A zero-byte
// read ends the copy successfully; any read or write failure ends it with an
// error, and a short write is never retried.
func (e *Engine) slowCopy(ctx context.Context, dst io.Writer, src io.Reader) error {
	buffer := e.buf

	for {
		select {
		case <-ctx.Done():
			return newTransferError(CategoryTransfer, "copy", ctx.Err())
		default:
		}

		bytesRead, err := src.Read(buffer)
		if bytesRead > 0 {
			bytesWritten, writeErr := dst.Write(buffer[:bytesRead])
			if bytesWritten > 0 {
				e.stats.SlowBytes += int64(bytesWritten)
			}

			if writeErr != nil {
				return newTransferError(CategoryWrite, "write", writeErr)
			}

			if bytesWritten != bytesRead {
				return newTransferError(CategoryWrite, "write",
					fmt.Errorf("%w: expected %d, wrote %d", ErrShortWrite, bytesRead, bytesWritten))
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return newTransferError(CategoryRead, "read", err)
		}

		if bytesRead == 0 {
			return nil
		}
	}
}
