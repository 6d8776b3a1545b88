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

//go:build !unix

package nativedriver

import (
	"os"

	"github.com/sasha-s/go-deadlock"
)

// mappedFile is the non-unix fallback: no mmap(2) equivalent is wired up,
// so the region is a plain in-memory buffer synced back to the file on
// every Resize. Semantically equivalent for this driver's callers (the
// VFS layer only ever observes Get/Size/Resize), just without a real
// memory-mapped view.
type mappedFile struct {
	lockMu deadlock.Mutex

	file *os.File
	data []byte
}

func newMappedFile(path string) (*mappedFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, err
	}

	data := make([]byte, info.Size())
	if _, err := f.ReadAt(data, 0); err != nil && info.Size() > 0 {
		f.Close()

		return nil, err
	}

	return &mappedFile{file: f, data: data}, nil
}

func (m *mappedFile) Lock()   { m.lockMu.Lock() }
func (m *mappedFile) Unlock() { m.lockMu.Unlock() }

func (m *mappedFile) Get() []byte {
	return m.data
}

func (m *mappedFile) Size() uint64 {
	return uint64(len(m.data))
}

func (m *mappedFile) Resize(size uint64) error {
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown

	if err := m.file.Truncate(int64(size)); err != nil {
		return err
	}

	_, err := m.file.WriteAt(m.data, 0)

	return err
}
