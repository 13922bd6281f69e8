package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"fboard/internal/domain/entity"
	"fboard/pkg/filesystem"
)

// NativeDir is a Dir backed by an operating system directory
type NativeDir struct {
	path string
}

// NewNativeDir returns a handle for an existing directory
func NewNativeDir(path string) (*NativeDir, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, newError("open dir", path, entity.ErrIOFailure, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, newError("open dir", path, classify(err), err)
	}
	if !info.IsDir() {
		return nil, newError("open dir", path, entity.ErrNameCollision, errors.New("not a directory"))
	}
	return &NativeDir{path: abs}, nil
}

// Path returns the absolute path of the directory
func (d *NativeDir) Path() string {
	return d.path
}

func (d *NativeDir) sameDir(other Dir) bool {
	o, ok := other.(*NativeDir)
	if !ok {
		return false
	}
	a, err := os.Stat(d.path)
	if err != nil {
		return false
	}
	b, err := os.Stat(o.path)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}

func (d *NativeDir) Name() string {
	return filepath.Base(d.path)
}

func (d *NativeDir) RequestAccess(ctx context.Context, mode AccessMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := os.Stat(d.path); err != nil {
		return false, newError("access", d.path, classify(err), err)
	}
	// There is nobody to prompt on a native filesystem, so requesting is
	// the same as querying.
	return checkAccess(d.path, mode), nil
}

func (d *NativeDir) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, newError("list", d.path, classify(err), err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		kind, ok := d.kindOf(de)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Name: de.Name(), Kind: kind})
	}
	return entries, nil
}

// kindOf resolves symlinks and skips anything that is neither a regular
// file nor a directory
func (d *NativeDir) kindOf(de os.DirEntry) (EntryKind, bool) {
	if de.IsDir() {
		return KindDir, true
	}
	if de.Type().IsRegular() {
		return KindFile, true
	}
	info, err := os.Stat(filepath.Join(d.path, de.Name()))
	if err != nil {
		return KindFile, false
	}
	switch {
	case info.IsDir():
		return KindDir, true
	case info.Mode().IsRegular():
		return KindFile, true
	default:
		return KindFile, false
	}
}

func (d *NativeDir) Dir(ctx context.Context, name string, create bool) (Dir, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidName(name) {
		return nil, newError("open dir", name, entity.ErrNotFound, errors.New("invalid name"))
	}

	p := filepath.Join(d.path, name)
	info, err := os.Stat(p)
	switch {
	case err == nil && info.IsDir():
		return &NativeDir{path: p}, nil
	case err == nil:
		return nil, newError("open dir", p, entity.ErrNameCollision, errors.New("a file with this name exists"))
	case !os.IsNotExist(err):
		return nil, newError("open dir", p, classify(err), err)
	case !create:
		return nil, newError("open dir", p, entity.ErrNotFound, nil)
	}

	if err := os.Mkdir(p, 0755); err != nil && !os.IsExist(err) {
		return nil, newError("create dir", p, classify(err), err)
	}
	return &NativeDir{path: p}, nil
}

func (d *NativeDir) File(ctx context.Context, name string, create bool) (File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidName(name) {
		return nil, newError("open file", name, entity.ErrNotFound, errors.New("invalid name"))
	}

	p := filepath.Join(d.path, name)
	info, err := os.Stat(p)
	switch {
	case err == nil && info.IsDir():
		return nil, newError("open file", p, entity.ErrNameCollision, errors.New("a directory with this name exists"))
	case err == nil:
		return &NativeFile{path: p}, nil
	case !os.IsNotExist(err):
		return nil, newError("open file", p, classify(err), err)
	case !create:
		return nil, newError("open file", p, entity.ErrNotFound, nil)
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, newError("create file", p, classify(err), err)
	}
	if err := f.Close(); err != nil {
		return nil, newError("create file", p, entity.ErrIOFailure, err)
	}
	return &NativeFile{path: p}, nil
}

func (d *NativeDir) Remove(ctx context.Context, name string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidName(name) {
		return nil
	}

	p := filepath.Join(d.path, name)
	var err error
	if recursive {
		err = filesystem.RemoveDir(p)
	} else {
		err = os.Remove(p)
	}
	if err != nil && !os.IsNotExist(err) {
		return newError("remove", p, classify(err), err)
	}
	return nil
}

func (d *NativeDir) Rename(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidName(from) || !ValidName(to) {
		return newError("rename", from, entity.ErrNotFound, errors.New("invalid name"))
	}

	src := filepath.Join(d.path, from)
	dst := filepath.Join(d.path, to)
	exists, err := filesystem.Exists(dst)
	if err != nil {
		return newError("rename", dst, classify(err), err)
	}
	if exists {
		return newError("rename", dst, entity.ErrNameCollision, nil)
	}
	if err := os.Rename(src, dst); err != nil {
		return newError("rename", src, classify(err), err)
	}
	return nil
}

// NativeFile is a File backed by an operating system file
type NativeFile struct {
	path string
}

func (f *NativeFile) Name() string {
	return filepath.Base(f.path)
}

func (f *NativeFile) Stat(ctx context.Context) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}
	info, err := os.Stat(f.path)
	if err != nil {
		return FileInfo{}, newError("stat", f.path, classify(err), err)
	}
	return FileInfo{Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (f *NativeFile) ReadAll(ctx context.Context) ([]byte, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, time.Time{}, err
	}
	file, err := os.Open(f.path)
	if err != nil {
		return nil, time.Time{}, newError("read", f.path, classify(err), err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, time.Time{}, newError("read", f.path, classify(err), err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, time.Time{}, newError("read", f.path, classify(err), err)
	}
	return data, info.ModTime(), nil
}

func (f *NativeFile) WriteAll(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := filesystem.SafeWrite(f.path, data, 0644); err != nil {
		return newError("write", f.path, classify(err), err)
	}
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return entity.ErrNotFound
	case errors.Is(err, os.ErrPermission):
		return entity.ErrPermissionDenied
	default:
		return entity.ErrIOFailure
	}
}

var (
	_ Dir  = (*NativeDir)(nil)
	_ File = (*NativeFile)(nil)
)
