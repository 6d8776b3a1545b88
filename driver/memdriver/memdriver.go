//
//  Copyright 2026 The VFS Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

// Package memdriver implements an in-memory vfs.Driver, grounded on the
// node-tree shape of avfs's memfs package (dirNode/fileNode keyed by a
// children map, each guarded by its own lock) but trimmed to the surface
// vfs.Driver actually needs — no permissions, ownership or symlinks, which
// are outside this system's scope.
package memdriver

import (
	"strings"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"

	"github.com/vfscore/vfs"
)

// Driver is an in-memory vfs.Driver. The zero value is not usable; build
// one with New.
type Driver struct {
	vfs.MountNotifier

	mu   deadlock.Mutex
	root *node
	log  *logrus.Entry
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithLogger attaches a *logrus.Entry for diagnostic logging.
func WithLogger(log *logrus.Entry) Option {
	return func(d *Driver) { d.log = log }
}

// New builds an empty in-memory driver.
func New(opts ...Option) *Driver {
	d := &Driver{root: newNode(true)}

	for _, opt := range opts {
		opt(d)
	}

	d.MountNotifier.SetLogger(d.log)

	return d
}

// Notifier implements vfs.NotifierHost.
func (d *Driver) Notifier() *vfs.MountNotifier {
	return &d.MountNotifier
}

func splitParent(path vfs.Path) (vfs.Path, string) {
	parent := vfs.RootPath()
	for i := 0; i < path.Len()-1; i++ {
		parent = parent.Append(path.At(i))
	}

	return parent, path.At(path.Len() - 1)
}

// lookup walks path's components from the root, returning the node or
// ElementNotFound.
func (d *Driver) lookup(path vfs.Path) (*node, error) {
	cur := d.root

	for i := 0; i < path.Len(); i++ {
		name := path.At(i)

		cur.mu.Lock()
		if !cur.isDir {
			cur.mu.Unlock()

			return nil, vfs.ErrElementNotFound(path)
		}

		child, ok := cur.children[canonicalKey(name)]
		cur.mu.Unlock()

		if !ok {
			return nil, vfs.ErrElementNotFound(path)
		}

		cur = child
	}

	return cur, nil
}

func canonicalKey(name string) string {
	return strings.ToLower(name)
}

// Get implements vfs.Driver.
func (d *Driver) Get(path vfs.Path) (vfs.FileEntry, error) {
	n, err := d.lookup(path)
	if err != nil {
		return vfs.FileEntry{}, err
	}

	name := ""
	if path.Len() > 0 {
		name = path.At(path.Len() - 1)
	}

	return vfs.FileEntry{Name: name, IsDir: n.isDir}, nil
}

// List implements vfs.Driver.
func (d *Driver) List(path vfs.Path) ([]vfs.FileEntry, error) {
	n, err := d.lookup(path)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.isDir {
		return nil, vfs.ErrElementKindInvalid(path, "expected directory")
	}

	entries := make([]vfs.FileEntry, 0, len(n.children))
	for _, child := range n.children {
		entries = append(entries, vfs.FileEntry{Name: child.name, IsDir: child.isDir})
	}

	return entries, nil
}

// Size implements vfs.Driver.
func (d *Driver) Size(path vfs.Path) (uint64, error) {
	n, err := d.lookup(path)
	if err != nil {
		return 0, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	return uint64(len(n.data)), nil
}

// Resize implements vfs.Driver.
func (d *Driver) Resize(path vfs.Path, size uint64) error {
	n, err := d.lookup(path)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.data = resizeBytes(n.data, size)

	return nil
}

func resizeBytes(data []byte, size uint64) []byte {
	if uint64(len(data)) == size {
		return data
	}

	grown := make([]byte, size)
	copy(grown, data)

	return grown
}

func (d *Driver) createNode(path vfs.Path, isDir bool) error {
	if path.Empty() {
		return vfs.ErrInvalidPath(path, nil)
	}

	parentPath, name := splitParent(path)

	parent, err := d.lookup(parentPath)
	if err != nil {
		return err
	}

	parent.mu.Lock()
	defer parent.mu.Unlock()

	if !parent.isDir {
		return vfs.ErrElementKindInvalid(path, "parent is not a directory")
	}

	key := canonicalKey(name)
	if _, exists := parent.children[key]; exists {
		return vfs.ErrElementAlreadyExists(path)
	}

	child := newNode(isDir)
	child.name = name
	parent.children[key] = child

	if d.log != nil {
		d.log.WithField("path", path.String()).Info("created node")
	}

	return nil
}

// CreateFile implements vfs.Driver.
func (d *Driver) CreateFile(path vfs.Path) error {
	return d.createNode(path, false)
}

// CreateDirectory implements vfs.Driver.
func (d *Driver) CreateDirectory(path vfs.Path) error {
	return d.createNode(path, true)
}

func (d *Driver) removeNode(path vfs.Path, wantDir bool) error {
	n, err := d.lookup(path)
	if err != nil {
		return err
	}

	n.mu.Lock()
	isDir := n.isDir
	childCount := len(n.children)
	n.mu.Unlock()

	if isDir != wantDir {
		reason := "expected file"
		if wantDir {
			reason = "expected directory"
		}

		return vfs.ErrElementKindInvalid(path, reason)
	}

	if isDir && childCount > 0 {
		return vfs.ErrDirectoryNotEmpty
	}

	parentPath, name := splitParent(path)

	parent, err := d.lookup(parentPath)
	if err != nil {
		return err
	}

	parent.mu.Lock()
	delete(parent.children, canonicalKey(name))
	parent.mu.Unlock()

	if d.log != nil {
		d.log.WithField("path", path.String()).Info("removed node")
	}

	return nil
}

// RemoveFile implements vfs.Driver.
func (d *Driver) RemoveFile(path vfs.Path) error {
	return d.removeNode(path, false)
}

// RemoveDirectory implements vfs.Driver. Unlike the original MemoryDriver
// (which erased unconditionally, relying on nothing else checking), this
// reports ErrDirectoryNotEmpty for a non-empty target so that
// vfs.Directory.Remove's recovery path actually has something to recover
// from.
func (d *Driver) RemoveDirectory(path vfs.Path) error {
	return d.removeNode(path, true)
}

// Open implements vfs.Driver.
func (d *Driver) Open(path vfs.Path) (vfs.OpenFile, error) {
	n, err := d.lookup(path)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	isDir := n.isDir
	n.mu.Unlock()

	if isDir {
		return nil, vfs.ErrElementKindInvalid(path, "expected file")
	}

	return &openFile{node: n}, nil
}

// Map implements vfs.Driver. A node keeps at most one live mappedFile so
// concurrent File.Map calls on the same path serialise through the same
// lock, matching the original MemoryDriver's cached-mapping behaviour.
func (d *Driver) Map(path vfs.Path) (vfs.MappedFile, error) {
	n, err := d.lookup(path)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.isDir {
		return nil, vfs.ErrElementKindInvalid(path, "expected file")
	}

	if n.mapping == nil {
		n.mapping = &mappedFile{node: n}
	}

	return n.mapping, nil
}
