//go:build linux || darwin

package core

import (
	"io"
)

type fileDescriptor interface {
	Fd() uintptr
}

// descriptors returns the raw descriptors behind dst and src, if both have one.
func descriptors(dst io.Writer, src Source) (dstFd, srcFd int, ok bool) {
	dstFile, dstOK := dst.(fileDescriptor)
	srcFile, srcOK := src.(fileDescriptor)

	if !dstOK || !srcOK {
		return 0, 0, false
	}

	return int(dstFile.Fd()), int(srcFile.Fd()), true
}
