//go:build !unix

package storage

import (
	"errors"
	"io"
	"os"

	"fboard/pkg/filesystem"
)

// checkAccess probes the directory since there is no access(2) here
func checkAccess(path string, mode AccessMode) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_, err = f.Readdirnames(1)
	f.Close()
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	if mode == ModeRead {
		return true
	}

	probe, err := os.CreateTemp(path, filesystem.InternalPrefix+"probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return true
}
