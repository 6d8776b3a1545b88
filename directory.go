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

package vfs

import (
	"strings"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// NotifierHost is implemented by Drivers that expose the invalidation
// channel of §4.2 (both driver/memdriver.Driver and
// driver/nativedriver.Driver do, via an embedded MountNotifier). Mount
// fails if the driver passed to it does not implement this.
type NotifierHost interface {
	Notifier() *MountNotifier
}

// Directory is an interior node of the tree (§3). A Directory optionally
// owns a Driver, in which case it is a mount point; navigation below any
// Directory delegates to the nearest mounted ancestor's Driver.
type Directory struct {
	base

	mu      deadlock.Mutex
	driver  Driver
	content map[string]Object // keyed by lowercased basename
	log     *logrus.Entry
}

func newDirectory(root *Root, parent *Directory, name string, log *logrus.Entry) *Directory {
	return &Directory{
		base:    newBase(root, parent, name),
		content: make(map[string]Object),
		log:     log,
	}
}

// IsDir always returns true for Directory.
func (d *Directory) IsDir() bool { return true }

// Path returns the object's absolute path from the tree root.
func (d *Directory) Path() (Path, error) {
	if err := d.checkBroken(); err != nil {
		return Path{}, err
	}

	if d.parent == nil {
		return RootPath(), nil
	}

	parentPath, err := d.parent.Path()
	if err != nil {
		return Path{}, err
	}

	return parentPath.Append(d.name), nil
}

// Mount attaches drv to d, making d a mount point. Fails with
// ErrAlreadyMounted if d already carries a driver (§4.5).
func (d *Directory) Mount(drv Driver) error {
	host, ok := drv.(NotifierHost)
	if !ok {
		path, _ := d.Path()

		return ErrInvalidPath(path, errUnnotifyingDriver)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.driver != nil {
		path, _ := d.Path()

		return ErrAlreadyMounted(path)
	}

	d.driver = drv
	host.Notifier().Register(d)
	d.markInvalidLocked()

	if d.log != nil {
		path, _ := d.Path()
		d.log.WithField("path", path.String()).Info("mounted driver")
	}

	return nil
}

// Unmount detaches d's driver. Fails with ErrNoMountPoint if d is not a
// mount point. Every currently-cached child is marked Broken and content
// is dropped; a subsequent Mount does not resurrect previously-issued
// handles (§4.5, tested by §8 scenario 3's analogue for unmount).
func (d *Directory) Unmount() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.driver == nil {
		path, _ := d.Path()

		return ErrNoMountPoint(path)
	}

	host, _ := d.driver.(NotifierHost)
	if host != nil {
		_ = host.Notifier().Unregister(d)
	}

	d.driver = nil
	d.markInvalidSelf()

	for _, child := range d.content {
		child.markBroken()
	}

	d.content = make(map[string]Object)

	if d.log != nil {
		path, _ := d.Path()
		d.log.WithField("path", path.String()).Info("unmounted driver")
	}

	return nil
}

// Content validates d and returns a snapshot of its current children.
// Order is unspecified (§4.5).
func (d *Directory) Content() ([]Object, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Object, 0, len(d.content))
	for _, child := range d.content {
		out = append(out, child)
	}

	return out, nil
}

// Collect recursively concatenates the content of d and every descendant
// directory, pre-order per directory. Order is unspecified (§4.5).
func (d *Directory) Collect() ([]Object, error) {
	children, err := d.Content()
	if err != nil {
		return nil, err
	}

	out := make([]Object, 0, len(children))

	for _, child := range children {
		out = append(out, child)

		if sub, ok := child.(*Directory); ok {
			nested, err := sub.Collect()
			if err != nil {
				continue
			}

			out = append(out, nested...)
		}
	}

	return out, nil
}

// Get resolves path (driver-relative, already split into components) to a
// single Object, following §4.6. A path containing a wildcard component
// delegates to GetAll and returns its first result.
func (d *Directory) Get(path Path) (Object, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	return d.resolve(path)
}

// GetAll expands wildcards in path ('?', '*', '**') and returns every
// matching descendant, deduplicated by path (§4.6).
func (d *Directory) GetAll(path Path) ([]Object, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	return d.getAll(path)
}

// CreateFile creates a new file named name in d and returns its handle
// (§4.5).
func (d *Directory) CreateFile(name string) (*File, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	driverPath, drv, err := d.effectiveDriver()
	if err != nil {
		return nil, err
	}

	if err := drv.CreateFile(driverPath.Append(name)); err != nil {
		return nil, err
	}

	d.markInvalid()

	obj, err := d.resolve(NewPath(name))
	if err != nil {
		return nil, err
	}

	f, ok := obj.(*File)
	if !ok {
		return nil, ErrElementKindInvalid(mustPath(obj), "expected file")
	}

	if d.log != nil {
		path, _ := f.Path()
		d.log.WithField("path", path.String()).Info("created file")
	}

	return f, nil
}

// CreateDirectory creates a new subdirectory named name in d and returns
// its handle (§4.5).
func (d *Directory) CreateDirectory(name string) (*Directory, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	driverPath, drv, err := d.effectiveDriver()
	if err != nil {
		return nil, err
	}

	if err := drv.CreateDirectory(driverPath.Append(name)); err != nil {
		return nil, err
	}

	d.markInvalid()

	obj, err := d.resolve(NewPath(name))
	if err != nil {
		return nil, err
	}

	sub, ok := obj.(*Directory)
	if !ok {
		return nil, ErrElementKindInvalid(mustPath(obj), "expected directory")
	}

	if d.log != nil {
		path, _ := sub.Path()
		d.log.WithField("path", path.String()).Info("created directory")
	}

	return sub, nil
}

// Remove deletes the directory through its driver. If the driver reports
// ErrDirectoryNotEmpty, Remove recursively removes every child first and
// retries (§4.5, §7).
func (d *Directory) Remove() error {
	if err := d.validate(); err != nil {
		return err
	}

	path, _ := d.Path()

	driverPath, drv, err := d.effectiveDriver()
	if err != nil {
		return err
	}

	if err := drv.RemoveDirectory(driverPath); err != nil {
		if !isDirectoryNotEmpty(err) {
			return err
		}

		children, cErr := d.Content()
		if cErr != nil {
			return cErr
		}

		for _, child := range children {
			if rErr := child.Remove(); rErr != nil {
				return rErr
			}
		}

		if err := drv.RemoveDirectory(driverPath); err != nil {
			return err
		}
	}

	// d may be a mount point in its own right (effectiveDriver above then
	// resolved to that same driver, at its root path). If so, deregister it from
	// its own notifier here rather than only on an explicit Unmount —
	// otherwise a mount point deleted through its parent's Remove (as
	// opposed to being explicitly unmounted first) would stay pinned by
	// a strong reference in MountNotifier.points forever, which is
	// exactly the leak a weak driver->mountpoint reference (§3
	// Ownership) exists to prevent.
	d.mu.Lock()
	ownDriver := d.driver
	d.driver = nil
	d.mu.Unlock()

	if ownDriver != nil {
		if host, ok := ownDriver.(NotifierHost); ok {
			_ = host.Notifier().Unregister(d)
		}
	}

	if d.parent != nil {
		d.parent.markInvalid()
	}

	d.markBroken()

	if d.log != nil {
		d.log.WithField("path", path.String()).Info("removed directory")
	}

	return nil
}

func isDirectoryNotEmpty(err error) bool {
	for err != nil {
		if err == ErrDirectoryNotEmpty {
			return true
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}

		err = u.Unwrap()
	}

	return false
}

func mustPath(o Object) Path {
	p, err := o.Path()
	if err != nil {
		return Path{}
	}

	return p
}

// canonicalKey lowercases ASCII letters for the case-insensitive content
// index (§3's basename equivalence).
func canonicalKey(name string) string {
	return strings.ToLower(name)
}

var errUnnotifyingDriver = &pathlessError{"driver does not implement NotifierHost"}

type pathlessError struct{ msg string }

func (e *pathlessError) Error() string { return e.msg }
