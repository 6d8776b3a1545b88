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

// Package nativedriver implements vfs.Driver over a host directory,
// grounded on TialVFS's NativeFSDriver (original_source/TialVFS) for the
// syscall sequencing and on avfs's osfs package for the Go idiom of
// splitting platform-specific pieces into build-tagged files.
package nativedriver

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"

	"github.com/vfscore/vfs"
)

// Driver is a vfs.Driver backed by a real directory on the host
// filesystem. All vfs.Path values it receives are interpreted relative to
// baseDir.
type Driver struct {
	vfs.MountNotifier

	baseDir     string
	descriptors *descriptorCache
	log         *logrus.Entry

	mappingsMu deadlock.Mutex
	mappings   map[string]vfs.MappedFile
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithLogger attaches a *logrus.Entry for diagnostic logging.
func WithLogger(log *logrus.Entry) Option {
	return func(d *Driver) { d.log = log }
}

// New builds a driver rooted at baseDir. A relative baseDir is resolved
// against the process's current working directory (matching the
// original's toAbsolute helper).
func New(baseDir string, opts ...Option) (*Driver, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		baseDir:     abs,
		descriptors: newDescriptorCache(),
		mappings:    make(map[string]vfs.MappedFile),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.MountNotifier.SetLogger(d.log)

	return d, nil
}

// Notifier implements vfs.NotifierHost.
func (d *Driver) Notifier() *vfs.MountNotifier {
	return &d.MountNotifier
}

func (d *Driver) native(path vfs.Path) string {
	elems := make([]string, 0, path.Len()+1)
	elems = append(elems, d.baseDir)

	for i := 0; i < path.Len(); i++ {
		elems = append(elems, path.At(i))
	}

	return filepath.Join(elems...)
}

func translateStatErr(path vfs.Path, err error) error {
	if os.IsNotExist(err) {
		return vfs.ErrElementNotFound(path)
	}

	return vfs.ErrIOFailed(path, err)
}

// Get implements vfs.Driver.
func (d *Driver) Get(path vfs.Path) (vfs.FileEntry, error) {
	info, err := os.Stat(d.native(path))
	if err != nil {
		return vfs.FileEntry{}, translateStatErr(path, err)
	}

	name := ""
	if path.Len() > 0 {
		name = path.At(path.Len() - 1)
	}

	return vfs.FileEntry{Name: name, IsDir: info.IsDir()}, nil
}

// List implements vfs.Driver.
func (d *Driver) List(path vfs.Path) ([]vfs.FileEntry, error) {
	entries, err := os.ReadDir(d.native(path))
	if err != nil {
		return nil, translateStatErr(path, err)
	}

	out := make([]vfs.FileEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, vfs.FileEntry{Name: e.Name(), IsDir: e.IsDir()})
	}

	return out, nil
}

// Size implements vfs.Driver.
func (d *Driver) Size(path vfs.Path) (uint64, error) {
	info, err := os.Stat(d.native(path))
	if err != nil {
		return 0, translateStatErr(path, err)
	}

	return uint64(info.Size()), nil
}

// Resize implements vfs.Driver. Any descriptor cached for path is closed,
// the file truncated, then the descriptor reopened in place — existing
// Stream/Mapping handles over it remain valid (§9).
func (d *Driver) Resize(path vfs.Path, size uint64) error {
	native := d.native(path)

	return d.descriptors.withClosedFor(native, func() error {
		return os.Truncate(native, int64(size))
	})
}

// CreateFile implements vfs.Driver.
func (d *Driver) CreateFile(path vfs.Path) error {
	f, err := os.OpenFile(d.native(path), os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o666)
	if err != nil {
		if os.IsExist(err) {
			return vfs.ErrElementAlreadyExists(path)
		}

		return vfs.ErrIOFailed(path, err)
	}

	if err := f.Close(); err != nil {
		return vfs.ErrIOFailed(path, err)
	}

	if d.log != nil {
		d.log.WithField("path", path.String()).Info("created file")
	}

	return nil
}

// CreateDirectory implements vfs.Driver.
func (d *Driver) CreateDirectory(path vfs.Path) error {
	if err := os.Mkdir(d.native(path), 0o777); err != nil {
		if os.IsExist(err) {
			return vfs.ErrElementAlreadyExists(path)
		}

		return vfs.ErrIOFailed(path, err)
	}

	if d.log != nil {
		d.log.WithField("path", path.String()).Info("created directory")
	}

	return nil
}

// RemoveFile implements vfs.Driver.
func (d *Driver) RemoveFile(path vfs.Path) error {
	if err := os.Remove(d.native(path)); err != nil {
		return translateStatErr(path, err)
	}

	if d.log != nil {
		d.log.WithField("path", path.String()).Info("removed file")
	}

	return nil
}

// RemoveDirectory implements vfs.Driver.
func (d *Driver) RemoveDirectory(path vfs.Path) error {
	err := os.Remove(d.native(path))
	if err != nil {
		if pe, ok := err.(*fs.PathError); ok && isDirNotEmpty(pe.Err) {
			return vfs.ErrDirectoryNotEmpty
		}

		return translateStatErr(path, err)
	}

	if d.log != nil {
		d.log.WithField("path", path.String()).Info("removed directory")
	}

	return nil
}

// Open implements vfs.Driver.
func (d *Driver) Open(path vfs.Path) (vfs.OpenFile, error) {
	desc, err := d.descriptors.acquire(d.native(path))
	if err != nil {
		return nil, vfs.ErrIOFailed(path, err)
	}

	return &openFile{descriptor: desc}, nil
}

// Map implements vfs.Driver. Mappings are cached per native path for the
// driver's lifetime, the way MemoryDriver caches node.mapping — a second
// Map() on the same path returns the same MappedFile, so its Lock serves
// as the mapping-exclusion point required by §4.7/§5.
func (d *Driver) Map(path vfs.Path) (vfs.MappedFile, error) {
	native := d.native(path)

	d.mappingsMu.Lock()
	defer d.mappingsMu.Unlock()

	if mf, ok := d.mappings[native]; ok {
		return mf, nil
	}

	mf, err := newMappedFile(native)
	if err != nil {
		return nil, vfs.ErrIOFailed(path, err)
	}

	d.mappings[native] = mf

	return mf, nil
}
