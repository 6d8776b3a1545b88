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
	"github.com/bmatcuk/doublestar/v4"
)

// validate runs the Directory validate algorithm of §4.4: if already Valid
// or Broken, resolve immediately; otherwise reconcile content against the
// effective driver's listing and settle on Valid or Broken.
func (d *Directory) validate() error {
	switch d.Valid() {
	case Valid:
		return nil
	case Broken:
		return ErrElementBroken
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.validateLocked()
}

// validateLocked assumes d.mu is held. Re-checks validity under the lock
// since another goroutine may have settled it while this one waited.
func (d *Directory) validateLocked() error {
	switch d.Valid() {
	case Valid:
		return nil
	case Broken:
		return ErrElementBroken
	}

	driverPath, drv, err := d.effectiveDriverLocked()
	if err != nil {
		d.markBrokenSelf()

		return err
	}

	if d.log != nil {
		d.log.WithField("path", driverPath.String()).Trace("reconciling content against driver listing")
	}

	entries, err := drv.List(driverPath)
	if err != nil {
		if IsKind(err, KindElementNotFound) {
			d.markBrokenSelf()
		}

		return err
	}

	seen := make(map[string]bool, len(entries))
	added, removed := 0, 0

	for _, entry := range entries {
		key := canonicalKey(entry.Name)
		seen[key] = true

		existing, ok := d.content[key]
		if ok {
			if existing.IsDir() == entry.IsDir {
				continue
			}

			existing.markBroken()
			delete(d.content, key)
		}

		d.content[key] = d.newChild(entry)
		added++
	}

	for key, child := range d.content {
		if !seen[key] {
			child.markBroken()
			delete(d.content, key)
			removed++
		}
	}

	d.markValidSelf()

	if d.log != nil {
		d.log.WithField("path", driverPath.String()).
			WithField("added", added).
			WithField("removed", removed).
			Debug("content reconciled")
	}

	return nil
}

// newChild builds a fresh, Invalid handle for a driver listing entry. The
// original casing from the driver is kept on the handle; only the content
// map key is lowercased (§3).
func (d *Directory) newChild(entry FileEntry) Object {
	if entry.IsDir {
		return newDirectory(d.root, d, entry.Name, d.log)
	}

	return newFile(d.root, d, entry.Name, d.log)
}

// effectiveDriver walks up from d to the nearest ancestor carrying a driver
// (including d itself) and returns the driver-relative path down to d.
// Fails with NoMountPoint if the tree root is reached without finding one.
func (d *Directory) effectiveDriver() (Path, Driver, error) {
	var segments []string

	cur := d

	for {
		cur.mu.Lock()
		drv := cur.driver
		cur.mu.Unlock()

		if drv != nil {
			return buildDriverPath(segments), drv, nil
		}

		if cur.parent == nil {
			p, _ := d.Path()

			return Path{}, nil, ErrNoMountPoint(p)
		}

		segments = append(segments, cur.name)
		cur = cur.parent
	}
}

// effectiveDriverLocked is effectiveDriver called from validateLocked, where
// d.mu is already held. It must not re-lock d.mu — only ancestors'.
func (d *Directory) effectiveDriverLocked() (Path, Driver, error) {
	if d.driver != nil {
		return RootPath(), d.driver, nil
	}

	if d.parent == nil {
		p, _ := d.Path()

		return Path{}, nil, ErrNoMountPoint(p)
	}

	parentPath, drv, err := d.parent.effectiveDriver()
	if err != nil {
		return Path{}, nil, err
	}

	return parentPath.Append(d.name), drv, nil
}

func buildDriverPath(segments []string) Path {
	p := RootPath()

	for i := len(segments) - 1; i >= 0; i-- {
		p = p.Append(segments[i])
	}

	return p
}

// resolve implements get(path) of §4.6.
func (d *Directory) resolve(path Path) (Object, error) {
	if path.Empty() {
		return d, nil
	}

	if path.HasWildcard() {
		results, err := d.getAll(path)
		if err != nil {
			return nil, err
		}

		if len(results) == 0 {
			p, _ := d.Path()

			return nil, ErrElementNotFound(p.Join(path))
		}

		return results[0], nil
	}

	return d.resolveExact(path)
}

func (d *Directory) resolveExact(path Path) (Object, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	child, ok := d.content[canonicalKey(path.At(0))]
	d.mu.Unlock()

	if !ok {
		p, _ := d.Path()

		return nil, ErrElementNotFound(p.Join(path))
	}

	if path.Len() == 1 {
		return child, nil
	}

	sub, ok := child.(*Directory)
	if !ok {
		p, _ := d.Path()

		return nil, ErrElementNotFound(p.Join(path))
	}

	return sub.resolveExact(path.Subpath(1))
}

type getAllWorkItem struct {
	pattern Path
	dir     *Directory
}

// getAll implements the wildcard queue algorithm of §4.6.
func (d *Directory) getAll(path Path) ([]Object, error) {
	queue := []getAllWorkItem{{pattern: path, dir: d}}

	results := make(map[string]Object)

	var order []string

	record := func(o Object) {
		p, err := o.Path()
		if err != nil {
			return
		}

		key := p.String()
		if _, exists := results[key]; exists {
			return
		}

		results[key] = o
		order = append(order, key)
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.pattern.Empty() {
			record(item.dir)

			continue
		}

		head := item.pattern.At(0)
		tail := item.pattern.Subpath(1)

		if head == "**" {
			descendants, err := item.dir.Collect()
			if err != nil {
				return nil, err
			}

			for _, desc := range descendants {
				if desc.IsDir() {
					queue = append(queue, getAllWorkItem{pattern: tail, dir: desc.(*Directory)})
				} else if tail.Empty() {
					record(desc)
				}
			}

			continue
		}

		children, err := item.dir.Content()
		if err != nil {
			return nil, err
		}

		for _, child := range children {
			matched, err := doublestar.Match(head, child.basename())
			if err != nil || !matched {
				continue
			}

			if tail.Empty() {
				record(child)
			}

			if sub, ok := child.(*Directory); ok {
				queue = append(queue, getAllWorkItem{pattern: tail, dir: sub})
			}
		}
	}

	out := make([]Object, 0, len(order))
	for _, key := range order {
		out = append(out, results[key])
	}

	return out, nil
}

// navigateForInvalidation is the entry point the invalidation channel uses
// (§4.2): path is empty when the event targets the mount point itself,
// otherwise it is resolved the same way Get does, which may validate
// intermediate directories along the way.
func (d *Directory) navigateForInvalidation(path Path) (Object, error) {
	if path.Empty() {
		return d, nil
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	return d.resolve(path)
}

// markInvalidLocked assumes d.mu is held and cascades Invalid to every
// current child (§4.4).
func (d *Directory) markInvalidLocked() {
	d.markInvalidSelf()

	for _, child := range d.content {
		child.markInvalid()
	}
}

// markInvalid implements the Object interface: mark self Invalid and
// cascade to every current child. content itself is left untouched.
func (d *Directory) markInvalid() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.markInvalidLocked()
}

// markBroken implements the Object interface: mark self Broken and cascade
// to every current child.
func (d *Directory) markBroken() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.markBrokenSelf()

	for _, child := range d.content {
		child.markBroken()
	}
}

// Remove deletes d through its driver; see the exported Remove in
// directory.go. Object.Remove is satisfied there.
var _ Object = (*Directory)(nil)
