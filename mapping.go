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
	"fmt"
	"unsafe"
)

// Mapping is a read-write view into a file's content (§4.7). File.Map
// acquires the backing MappedFile's lock at construction and holds it for
// the Mapping's entire lifetime; Close releases it. A second File.Map call
// that resolves to the same MappedFile blocks until this Mapping closes.
//
// Mapping is not safe to copy — pass it by pointer, the way the teacher's
// own accessor types are always handed around as *Stream/*Mapping.
type Mapping struct {
	file   MappedFile
	path   Path
	closed bool
}

// Get returns the mapping's current byte region. The returned slice is
// only valid until the next call to Resize — refresh it with another Get
// afterwards.
func (m *Mapping) Get() ([]byte, error) {
	if m.file == nil {
		return nil, ErrUnassignedAccessor
	}

	return m.file.Get(), nil
}

// Size returns the mapping's current size in bytes.
func (m *Mapping) Size() (uint64, error) {
	if m.file == nil {
		return 0, ErrUnassignedAccessor
	}

	return m.file.Size(), nil
}

// Resize changes the backing file's size, which may reallocate the mapped
// region. Callers must call Get again afterwards rather than reusing a
// previously returned slice.
func (m *Mapping) Resize(size uint64) error {
	if m.file == nil {
		return ErrUnassignedAccessor
	}

	return m.file.Resize(size)
}

// Close releases the MappedFile's lock acquired at construction. Close is
// idempotent; calling it more than once is a no-op.
func (m *Mapping) Close() error {
	if m.file == nil || m.closed {
		return nil
	}

	m.closed = true
	m.file.Unlock()

	return nil
}

// As reinterprets m's mapped region as a sequence of T elements (§6's
// as<T>()): "view the region as an element sequence of a plain-old-data
// type". Go has no generic methods, so the C++ template method becomes a
// free function taking the Mapping as its first argument. The returned
// slice aliases the mapped region directly (no copy) and, like the slice
// from Get, is only valid until the next Resize. len(region) must be an
// exact multiple of T's size or As fails rather than silently truncating.
func As[T any](m *Mapping) ([]T, error) {
	region, err := m.Get()
	if err != nil {
		return nil, err
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))

	if len(region) == 0 {
		return nil, nil
	}

	if elemSize == 0 || len(region)%elemSize != 0 {
		return nil, ErrIOFailed(m.path, fmt.Errorf("mapped region of %d bytes is not a whole number of %T elements", len(region), zero))
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&region[0])), len(region)/elemSize), nil
}
