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
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// FileEntry is a single driver listing result: a basename and whether it
// names a directory (§4.2).
type FileEntry struct {
	Name  string
	IsDir bool
}

// OpenFile is a byte-level I/O accessor a Driver hands back from Open. Pos
// is always supplied explicitly by the caller (Stream keeps its own
// cursor) — OpenFile itself is stateless with respect to position.
type OpenFile interface {
	Read(pos uint64, buf []byte) (int, error)
	Write(pos uint64, buf []byte) (int, error)
	Size() (uint64, error)
}

// MappedFile is a memory-style accessor a Driver hands back from Map. It
// embeds sync.Locker because §4.7/§5 require a recursive-exclusive lock
// scoped to the MappedFile: Mapping acquires it once at construction and
// releases it once when the Mapping is closed, so concurrent map requests
// that resolve to the same MappedFile serialise. Implementations back it
// with a deadlock.Mutex (github.com/sasha-s/go-deadlock, also used for the
// directory content lock and the native driver's descriptor-table lock)
// rather than sync.Mutex, so a misordered lock acquisition across those
// three sites surfaces as a diagnosed deadlock instead of a hang.
type MappedFile interface {
	deadlock.Locker
	Get() []byte
	Size() uint64
	Resize(size uint64) error
}

// Driver is the pluggable backend contract of §4.2. All paths passed to a
// Driver are absolute and relative to the driver's own root — the VFS tree
// consumes a driver-relative path by walking up from a Directory to its
// nearest mounted ancestor (§3 invariant 3) and never exposes the
// mount-point-relative distinction to the Driver itself.
type Driver interface {
	Get(path Path) (FileEntry, error)
	List(path Path) ([]FileEntry, error)
	Size(path Path) (uint64, error)
	Resize(path Path, size uint64) error
	CreateFile(path Path) error
	CreateDirectory(path Path) error
	RemoveFile(path Path) error
	RemoveDirectory(path Path) error
	Open(path Path) (OpenFile, error)
	Map(path Path) (MappedFile, error)
}

// MountNotifier is the invalidation channel of §4.2: a Driver embeds one
// and calls Invalidate/Break whenever it detects, on its own (not via a
// VFS-initiated call), that something changed or vanished underneath a
// path it serves. Composition stands in for the C++ source's Driver base
// class, which the subtype (MemoryDriver/NativeFSDriver) would otherwise
// inherit from.
type MountNotifier struct {
	mu     deadlock.Mutex
	points []*Directory
	log    *logrus.Entry
}

// SetLogger attaches a *logrus.Entry used for the Debug-level invalidation
// dispatch logging in mark. Drivers call this from their own constructor so
// the notifier they embed logs under the same entry as the rest of the
// driver.
func (n *MountNotifier) SetLogger(log *logrus.Entry) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.log = log
}

// Register attaches a mount-point directory to this notifier. Called by
// Directory.Mount.
func (n *MountNotifier) Register(d *Directory) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.points = append(n.points, d)
}

// Unregister detaches a mount-point directory. Called by Directory.Unmount.
// Returns ErrNoMountPoint if d was never registered.
func (n *MountNotifier) Unregister(d *Directory) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, p := range n.points {
		if p == d {
			n.points = append(n.points[:i], n.points[i+1:]...)

			return nil
		}
	}

	path, _ := d.Path()

	return ErrNoMountPoint(path)
}

// Invalidate marks Invalid the object reached by navigating path from each
// registered mount point (§4.2). path is driver-relative and absolute; an
// empty path targets the mount point itself.
func (n *MountNotifier) Invalidate(path Path) error {
	return n.mark(path, func(o Object) { o.markInvalid() })
}

// Break marks Broken the object reached by navigating path from each
// registered mount point (§4.2).
func (n *MountNotifier) Break(path Path) error {
	return n.mark(path, func(o Object) { o.markBroken() })
}

func (n *MountNotifier) mark(path Path, apply func(Object)) error {
	n.mu.Lock()
	points := make([]*Directory, len(n.points))
	copy(points, n.points)
	log := n.log
	n.mu.Unlock()

	if log != nil {
		log.WithField("path", path.String()).Trace("dispatching invalidation")
	}

	if len(points) == 0 {
		// A driver with no live mount point is trying to publish an
		// invalidation. In the C++ source this is a weak_ptr that failed
		// to lock; in Go the registry simply has nothing left in it
		// once Directory.Unmount runs, so the failure mode is the same
		// observable outcome: the driver must not pretend the event was
		// delivered.
		return ErrNoMountPoint(path)
	}

	delivered := 0

	for _, mountPoint := range points {
		target, err := mountPoint.navigateForInvalidation(path)
		if err != nil {
			// Nothing cached at that path yet (or it is already gone) —
			// there is nothing to mark, not a delivery failure.
			continue
		}

		apply(target)
		delivered++
	}

	if log != nil {
		log.WithField("path", path.String()).WithField("delivered", delivered).Debug("invalidation dispatched")
	}

	return nil
}
