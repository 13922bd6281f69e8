package storage

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"
	"time"

	"fboard/internal/domain/entity"
)

type memNode struct {
	isDir    bool
	children map[string]*memNode
	order    []string
	data     []byte
	modTime  time.Time
}

func newMemDir() *memNode {
	return &memNode{isDir: true, children: make(map[string]*memNode)}
}

func (n *memNode) add(name string, child *memNode) {
	if _, ok := n.children[name]; !ok {
		n.order = append(n.order, name)
	}
	n.children[name] = child
}

func (n *memNode) remove(name string) {
	delete(n.children, name)
	for i, existing := range n.order {
		if existing == name {
			n.order = append(n.order[:i], n.order[i+1:]...)
			return
		}
	}
}

// MemoryFS is an in-memory directory tree. Handles resolve their path on
// every call, so a handle to a removed entry fails with ErrNotFound just
// like a stale handle on disk.
type MemoryFS struct {
	mu          sync.Mutex
	root        *memNode
	rootName    string
	now         func() time.Time
	read        bool
	write       bool
	promptOK    bool
	readFaults  map[string]error
	openFaults  map[string]error
	writeFaults map[string]error
	listFaults  map[string]error
	afterList   map[string]func()
}

// MemoryOption configures a MemoryFS
type MemoryOption func(*MemoryFS)

// WithClock sets the clock used for modification times
func WithClock(now func() time.Time) MemoryOption {
	return func(fs *MemoryFS) { fs.now = now }
}

// WithRootName sets the name reported by the root handle
func WithRootName(name string) MemoryOption {
	return func(fs *MemoryFS) { fs.rootName = name }
}

// NewMemoryFS creates an empty tree with read-write access granted. The
// default clock starts at a fixed instant and advances one second per call.
func NewMemoryFS(opts ...MemoryOption) *MemoryFS {
	start := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	var tick int64
	fs := &MemoryFS{
		root:        newMemDir(),
		rootName:    "board",
		read:        true,
		write:       true,
		promptOK:    true,
		readFaults:  make(map[string]error),
		openFaults:  make(map[string]error),
		writeFaults: make(map[string]error),
		listFaults:  make(map[string]error),
		afterList:   make(map[string]func()),
	}
	fs.now = func() time.Time {
		tick++
		return start.Add(time.Duration(tick) * time.Second)
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Root returns the handle of the tree root
func (fs *MemoryFS) Root() *MemoryDir {
	return &MemoryDir{fs: fs, path: ""}
}

// Revoke drops every grant, as a user revoking access out of band would
func (fs *MemoryFS) Revoke() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.read, fs.write = false, false
}

// Grant gives access at the given mode
func (fs *MemoryFS) Grant(mode AccessMode) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.read = true
	if mode == ModeReadWrite {
		fs.write = true
	}
}

// AnswerPrompts sets whether a permission request is accepted
func (fs *MemoryFS) AnswerPrompts(accept bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.promptOK = accept
}

// FailReads makes reads and stats of the slash separated path fail with err
func (fs *MemoryFS) FailReads(p string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.readFaults[path.Clean(p)] = err
}

// FailWrites makes writes of the file at p fail with err. A nil err
// clears the fault.
func (fs *MemoryFS) FailWrites(p string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err == nil {
		delete(fs.writeFaults, path.Clean(p))
		return
	}
	fs.writeFaults[path.Clean(p)] = err
}

// FailOpens makes opening the directory at p fail with err. A nil err
// clears the fault.
func (fs *MemoryFS) FailOpens(p string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err == nil {
		delete(fs.openFaults, path.Clean(p))
		return
	}
	fs.openFaults[path.Clean(p)] = err
}

// FailLists makes listing the directory at p fail with err. A nil err
// clears the fault.
func (fs *MemoryFS) FailLists(p string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err == nil {
		delete(fs.listFaults, path.Clean(p))
		return
	}
	fs.listFaults[path.Clean(p)] = err
}

// AfterList runs hook once, right after the directory at p is next
// listed. The tree is unlocked while hook runs.
func (fs *MemoryFS) AfterList(p string, hook func()) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.afterList[path.Clean(p)] = hook
}

// RemoveAt deletes the entry at p and everything below it
func (fs *MemoryFS) RemoveAt(p string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	dir, name := path.Split(path.Clean(p))
	parent, err := fs.lookupDir("remove", dir)
	if err != nil {
		return err
	}
	parent.remove(name)
	return nil
}

// WriteFileAt creates parents as needed and writes a file
func (fs *MemoryFS) WriteFileAt(p string, data []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir, name := path.Split(path.Clean(p))
	parent, err := fs.mkdirAll(dir)
	if err != nil {
		return err
	}
	if existing, ok := parent.children[name]; ok && existing.isDir {
		return newError("write", p, entity.ErrNameCollision, nil)
	}
	parent.add(name, &memNode{data: append([]byte(nil), data...), modTime: fs.now()})
	return nil
}

// MkdirAll creates a directory and its parents
func (fs *MemoryFS) MkdirAll(p string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, err := fs.mkdirAll(p)
	return err
}

// SetModTime overrides the modification time of an entry
func (fs *MemoryFS) SetModTime(p string, t time.Time) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	node, err := fs.lookup(p)
	if err != nil {
		return err
	}
	node.modTime = t
	return nil
}

// Exists reports whether the slash separated path exists
func (fs *MemoryFS) Exists(p string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, err := fs.lookup(p)
	return err == nil
}

// ReadFileAt returns a file's content
func (fs *MemoryFS) ReadFileAt(p string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	node, err := fs.lookup(p)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, newError("read", p, entity.ErrNameCollision, errors.New("is a directory"))
	}
	return append([]byte(nil), node.data...), nil
}

func (fs *MemoryFS) mkdirAll(p string) (*memNode, error) {
	node := fs.root
	for _, part := range splitPath(p) {
		child, ok := node.children[part]
		if !ok {
			child = newMemDir()
			child.modTime = fs.now()
			node.add(part, child)
		}
		if !child.isDir {
			return nil, newError("mkdir", p, entity.ErrNameCollision, errors.New("not a directory"))
		}
		node = child
	}
	return node, nil
}

func (fs *MemoryFS) lookup(p string) (*memNode, error) {
	node := fs.root
	for _, part := range splitPath(p) {
		if !node.isDir {
			return nil, newError("lookup", p, entity.ErrNotFound, nil)
		}
		child, ok := node.children[part]
		if !ok {
			return nil, newError("lookup", p, entity.ErrNotFound, nil)
		}
		node = child
	}
	return node, nil
}

func (fs *MemoryFS) lookupDir(op, p string) (*memNode, error) {
	node, err := fs.lookup(p)
	if err != nil {
		return nil, newError(op, p, entity.ErrNotFound, nil)
	}
	if !node.isDir {
		return nil, newError(op, p, entity.ErrNameCollision, errors.New("not a directory"))
	}
	return node, nil
}

func (fs *MemoryFS) checkRead(op, p string) error {
	if !fs.read {
		return newError(op, p, entity.ErrPermissionDenied, nil)
	}
	return nil
}

func (fs *MemoryFS) checkWrite(op, p string) error {
	if !fs.write {
		return newError(op, p, entity.ErrPermissionDenied, nil)
	}
	return nil
}

func splitPath(p string) []string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// MemoryDir is a Dir handle into a MemoryFS
type MemoryDir struct {
	fs   *MemoryFS
	path string
}

func (d *MemoryDir) child(name string) string {
	if d.path == "" {
		return name
	}
	return d.path + "/" + name
}

func (d *MemoryDir) sameDir(other Dir) bool {
	o, ok := other.(*MemoryDir)
	if !ok || o.fs != d.fs {
		return false
	}
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()
	a, errA := d.fs.lookup(d.path)
	b, errB := d.fs.lookup(o.path)
	return errA == nil && errB == nil && a == b
}

func (d *MemoryDir) Name() string {
	if d.path == "" {
		return d.fs.rootName
	}
	return path.Base(d.path)
}

func (d *MemoryDir) RequestAccess(ctx context.Context, mode AccessMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	if _, err := d.fs.lookupDir("access", d.path); err != nil {
		return false, err
	}
	granted := d.fs.read
	if mode == ModeReadWrite {
		granted = d.fs.read && d.fs.write
	}
	if granted {
		return true, nil
	}
	if !d.fs.promptOK {
		return false, nil
	}
	d.fs.read = true
	if mode == ModeReadWrite {
		d.fs.write = true
	}
	return true, nil
}

func (d *MemoryDir) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.fs.mu.Lock()
	hook := d.fs.afterList[d.path]
	delete(d.fs.afterList, d.path)
	d.fs.mu.Unlock()
	if hook != nil {
		defer hook()
	}

	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	if err := d.fs.checkRead("list", d.path); err != nil {
		return nil, err
	}
	if fault, ok := d.fs.listFaults[d.path]; ok {
		return nil, fault
	}
	node, err := d.fs.lookupDir("list", d.path)
	if err != nil {
		return nil, err
	}

	// Newest first, so callers cannot rely on the order
	entries := make([]Entry, 0, len(node.order))
	for i := len(node.order) - 1; i >= 0; i-- {
		name := node.order[i]
		kind := KindFile
		if node.children[name].isDir {
			kind = KindDir
		}
		entries = append(entries, Entry{Name: name, Kind: kind})
	}
	return entries, nil
}

func (d *MemoryDir) Dir(ctx context.Context, name string, create bool) (Dir, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidName(name) {
		return nil, newError("open dir", name, entity.ErrNotFound, errors.New("invalid name"))
	}
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	p := d.child(name)
	if err := d.fs.checkRead("open dir", p); err != nil {
		return nil, err
	}
	if fault, ok := d.fs.openFaults[p]; ok {
		return nil, fault
	}
	parent, err := d.fs.lookupDir("open dir", d.path)
	if err != nil {
		return nil, err
	}
	if existing, ok := parent.children[name]; ok {
		if !existing.isDir {
			return nil, newError("open dir", p, entity.ErrNameCollision, errors.New("a file with this name exists"))
		}
		return &MemoryDir{fs: d.fs, path: p}, nil
	}
	if !create {
		return nil, newError("open dir", p, entity.ErrNotFound, nil)
	}
	if err := d.fs.checkWrite("create dir", p); err != nil {
		return nil, err
	}
	node := newMemDir()
	node.modTime = d.fs.now()
	parent.add(name, node)
	return &MemoryDir{fs: d.fs, path: p}, nil
}

func (d *MemoryDir) File(ctx context.Context, name string, create bool) (File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidName(name) {
		return nil, newError("open file", name, entity.ErrNotFound, errors.New("invalid name"))
	}
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	p := d.child(name)
	if err := d.fs.checkRead("open file", p); err != nil {
		return nil, err
	}
	parent, err := d.fs.lookupDir("open file", d.path)
	if err != nil {
		return nil, err
	}
	if existing, ok := parent.children[name]; ok {
		if existing.isDir {
			return nil, newError("open file", p, entity.ErrNameCollision, errors.New("a directory with this name exists"))
		}
		return &MemoryFile{fs: d.fs, path: p}, nil
	}
	if !create {
		return nil, newError("open file", p, entity.ErrNotFound, nil)
	}
	if err := d.fs.checkWrite("create file", p); err != nil {
		return nil, err
	}
	parent.add(name, &memNode{modTime: d.fs.now()})
	return &MemoryFile{fs: d.fs, path: p}, nil
}

func (d *MemoryDir) Remove(ctx context.Context, name string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidName(name) {
		return nil
	}
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	p := d.child(name)
	if err := d.fs.checkWrite("remove", p); err != nil {
		return err
	}
	parent, err := d.fs.lookupDir("remove", d.path)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	existing, ok := parent.children[name]
	if !ok {
		return nil
	}
	if existing.isDir && len(existing.children) > 0 && !recursive {
		return newError("remove", p, entity.ErrIOFailure, errors.New("directory not empty"))
	}
	parent.remove(name)
	return nil
}

func (d *MemoryDir) Rename(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidName(from) || !ValidName(to) {
		return newError("rename", from, entity.ErrNotFound, errors.New("invalid name"))
	}
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	if err := d.fs.checkWrite("rename", d.child(from)); err != nil {
		return err
	}
	parent, err := d.fs.lookupDir("rename", d.path)
	if err != nil {
		return err
	}
	node, ok := parent.children[from]
	if !ok {
		return newError("rename", d.child(from), entity.ErrNotFound, nil)
	}
	if _, taken := parent.children[to]; taken {
		return newError("rename", d.child(to), entity.ErrNameCollision, nil)
	}
	parent.remove(from)
	parent.add(to, node)
	return nil
}

// MemoryFile is a File handle into a MemoryFS
type MemoryFile struct {
	fs   *MemoryFS
	path string
}

func (f *MemoryFile) Name() string {
	return path.Base(f.path)
}

func (f *MemoryFile) node(op string) (*memNode, error) {
	if err := f.fs.checkRead(op, f.path); err != nil {
		return nil, err
	}
	if fault, ok := f.fs.readFaults[f.path]; ok {
		return nil, newError(op, f.path, entity.ErrIOFailure, fault)
	}
	node, err := f.fs.lookup(f.path)
	if err != nil {
		return nil, newError(op, f.path, entity.ErrNotFound, nil)
	}
	if node.isDir {
		return nil, newError(op, f.path, entity.ErrNameCollision, errors.New("is a directory"))
	}
	return node, nil
}

func (f *MemoryFile) Stat(ctx context.Context) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	node, err := f.node("stat")
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{Size: int64(len(node.data)), ModTime: node.modTime}, nil
}

func (f *MemoryFile) ReadAll(ctx context.Context) ([]byte, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, time.Time{}, err
	}
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	node, err := f.node("read")
	if err != nil {
		return nil, time.Time{}, err
	}
	return append([]byte(nil), node.data...), node.modTime, nil
}

func (f *MemoryFile) WriteAll(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if err := f.fs.checkWrite("write", f.path); err != nil {
		return err
	}
	if fault, ok := f.fs.writeFaults[f.path]; ok {
		return fault
	}
	dir, name := path.Split(f.path)
	parent, err := f.fs.lookupDir("write", strings.TrimSuffix(dir, "/"))
	if err != nil {
		return err
	}
	if existing, ok := parent.children[name]; ok && existing.isDir {
		return newError("write", f.path, entity.ErrNameCollision, errors.New("is a directory"))
	}
	parent.add(name, &memNode{data: append([]byte(nil), data...), modTime: f.fs.now()})
	return nil
}

var (
	_ Dir  = (*MemoryDir)(nil)
	_ File = (*MemoryFile)(nil)
)
