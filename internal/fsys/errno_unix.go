//go:build unix

package fsys

import (
	"errors"
	"syscall"
)

func isNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
