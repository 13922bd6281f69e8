// Package storage abstracts the directory tree a board lives in behind
// capability-style handles, so the board code runs unchanged against the
// operating system or an in-memory tree.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"fboard/internal/domain/entity"
)

// AccessMode is the permission granularity a root handle is checked at
type AccessMode int

const (
	ModeRead AccessMode = iota
	ModeReadWrite
)

func (m AccessMode) String() string {
	if m == ModeReadWrite {
		return "readwrite"
	}
	return "read"
}

// EntryKind distinguishes files from directories
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
)

func (k EntryKind) String() string {
	if k == KindDir {
		return "directory"
	}
	return "file"
}

// Entry is a named child of a directory
type Entry struct {
	Name string
	Kind EntryKind
}

// FileInfo is the metadata the board needs about a file
type FileInfo struct {
	Size    int64
	ModTime time.Time
}

// Dir is a handle to a directory
type Dir interface {
	// Name returns the directory's own name
	Name() string

	// RequestAccess checks the current grant and asks for it when missing.
	// It returns the final granted state.
	RequestAccess(ctx context.Context, mode AccessMode) (bool, error)

	// Entries lists the children in no particular order
	Entries(ctx context.Context) ([]Entry, error)

	// Dir opens a child directory, creating it when create is set
	Dir(ctx context.Context, name string, create bool) (Dir, error)

	// File opens a child file, creating an empty one when create is set
	File(ctx context.Context, name string, create bool) (File, error)

	// Remove deletes a child. Missing children are not an error.
	Remove(ctx context.Context, name string, recursive bool) error

	// Rename renames a child within this directory, replacing nothing:
	// the target name must be free.
	Rename(ctx context.Context, from, to string) error
}

// File is a handle to a regular file
type File interface {
	Name() string
	Stat(ctx context.Context) (FileInfo, error)
	// ReadAll returns the full content and the last modification time
	ReadAll(ctx context.Context) ([]byte, time.Time, error)
	// WriteAll replaces the content. Readers never observe a partial write.
	WriteAll(ctx context.Context, data []byte) error
}

// Error describes a failed storage operation. Kind is one of the entity
// storage sentinels and is what errors.Is matches against.
type Error struct {
	Op   string
	Name string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Name, e.Kind, e.Err)
}

// Unwrap exposes both the classification and the backend cause
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(op, name string, kind, err error) error {
	return &Error{Op: op, Name: name, Kind: kind, Err: err}
}

// IsNotFound reports whether err means the entry does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}

// IsPermissionDenied reports whether err means the grant is missing
func IsPermissionDenied(err error) bool {
	return errors.Is(err, entity.ErrPermissionDenied)
}

type identifier interface {
	sameDir(other Dir) bool
}

// SameDir reports whether both handles refer to the same directory. Two
// names can reach one directory through a symlink or a case-insensitive
// filesystem.
func SameDir(a, b Dir) bool {
	id, ok := a.(identifier)
	return ok && id.sameDir(b)
}

// ValidName reports whether name can be used as a single path element
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return false
	}
	return path.Base(name) == name
}

// Exists reports whether dir has a child called name of the given kind
func Exists(ctx context.Context, dir Dir, name string, kind EntryKind) (bool, error) {
	var err error
	if kind == KindDir {
		_, err = dir.Dir(ctx, name, false)
	} else {
		_, err = dir.File(ctx, name, false)
	}
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// ReadFile opens and reads a child file in one step
func ReadFile(ctx context.Context, dir Dir, name string) ([]byte, time.Time, error) {
	file, err := dir.File(ctx, name, false)
	if err != nil {
		return nil, time.Time{}, err
	}
	return file.ReadAll(ctx)
}

// WriteFile creates or replaces a child file in one step
func WriteFile(ctx context.Context, dir Dir, name string, data []byte) error {
	file, err := dir.File(ctx, name, true)
	if err != nil {
		return err
	}
	return file.WriteAll(ctx, data)
}
