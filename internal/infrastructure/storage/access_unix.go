//go:build unix

package storage

import "golang.org/x/sys/unix"

func checkAccess(path string, mode AccessMode) bool {
	bits := uint32(unix.R_OK | unix.X_OK)
	if mode == ModeReadWrite {
		bits |= unix.W_OK
	}
	return unix.Access(path, bits) == nil
}
