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

package nativedriver

import (
	"os"

	"github.com/sasha-s/go-deadlock"
)

// descriptor is a shared, reference-counted *os.File for one native path.
// Concurrent Open calls on the same path reuse it (§5's descriptor-table
// sharing). The original C++ source keys this table by weak_ptr and
// purges expired entries lazily at each access; Go has no weak pointer
// primitive available at this module's Go version, so refs is an explicit
// count instead — the file closes the moment the last caller releases it,
// and purgeLocked drops the now-closed entry from the table on the next
// access, which is the same externally observable behaviour.
type descriptor struct {
	mu     deadlock.Mutex
	path   string
	file   *os.File
	refs   int
	closed bool
}

func (d *descriptor) readAt(pos uint64, buf []byte) (int, error) {
	d.mu.Lock()
	f := d.file
	d.mu.Unlock()

	n, err := f.ReadAt(buf, int64(pos))
	if n > 0 {
		err = nil
	}

	return n, err
}

func (d *descriptor) writeAt(pos uint64, buf []byte) (int, error) {
	d.mu.Lock()
	f := d.file
	d.mu.Unlock()

	return f.WriteAt(buf, int64(pos))
}

func (d *descriptor) size() (uint64, error) {
	d.mu.Lock()
	f := d.file
	d.mu.Unlock()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	return uint64(info.Size()), nil
}

func (d *descriptor) acquire() {
	d.mu.Lock()
	d.refs++
	d.mu.Unlock()
}

func (d *descriptor) release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.refs--
	if d.refs <= 0 && !d.closed {
		d.file.Close()
		d.closed = true
	}
}

// descriptorCache is the per-driver descriptor-table lock of §5.
type descriptorCache struct {
	mu      deadlock.Mutex
	entries map[string]*descriptor
}

func newDescriptorCache() *descriptorCache {
	return &descriptorCache{entries: make(map[string]*descriptor)}
}

func (c *descriptorCache) purgeLocked() {
	for path, d := range c.entries {
		d.mu.Lock()
		closed := d.closed
		d.mu.Unlock()

		if closed {
			delete(c.entries, path)
		}
	}
}

// acquire returns the shared descriptor for path, opening it if the cache
// holds no live entry.
func (c *descriptorCache) acquire(path string) (*descriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeLocked()

	d, ok := c.entries[path]
	if !ok {
		f, err := os.OpenFile(path, os.O_RDWR, 0)
		if err != nil {
			return nil, err
		}

		d = &descriptor{path: path, file: f}
		c.entries[path] = d
	}

	d.mu.Lock()
	d.refs++
	d.mu.Unlock()

	return d, nil
}

// withClosedFor closes the live descriptor for path (if any), runs fn,
// then reopens it in place so accessor handles already holding a pointer
// to it keep working (§9's resize ordering).
func (c *descriptorCache) withClosedFor(path string, fn func() error) error {
	c.mu.Lock()
	d, ok := c.entries[path]
	c.mu.Unlock()

	if !ok {
		return fn()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fn()
	}

	if err := d.file.Close(); err != nil {
		return err
	}

	if err := fn(); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}

	d.file = f

	return nil
}
