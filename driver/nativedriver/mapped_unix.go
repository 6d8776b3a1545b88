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

//go:build unix

package nativedriver

import (
	"os"

	"github.com/sasha-s/go-deadlock"
	"golang.org/x/sys/unix"
)

// mappedFile implements vfs.MappedFile with a real mmap(2) region,
// translated from NativeMappedFile (original_source/TialVFS). lockMu is
// the exclusive mapping lock of §4.7/§5; it is not re-entrant, so a
// goroutine that already holds it blocks if it locks it again. It is
// distinct from the descriptor table lock in descriptor.go, which this
// type never takes.
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

	m := &mappedFile{file: f}

	if err := m.remap(); err != nil {
		f.Close()

		return nil, err
	}

	return m, nil
}

func (m *mappedFile) remap() error {
	if m.data != nil {
		if err := unix.Munmap(m.data); err != nil {
			return err
		}

		m.data = nil
	}

	info, err := m.file.Stat()
	if err != nil {
		return err
	}

	if info.Size() == 0 {
		return nil
	}

	data, err := unix.Mmap(int(m.file.Fd()), 0, int(info.Size()), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}

	m.data = data

	return nil
}

func (m *mappedFile) Lock()   { m.lockMu.Lock() }
func (m *mappedFile) Unlock() { m.lockMu.Unlock() }

func (m *mappedFile) Get() []byte {
	return m.data
}

func (m *mappedFile) Size() uint64 {
	return uint64(len(m.data))
}

// Resize truncates the backing file and remaps, per NativeMappedFile's
// resize → driver.resizeNative sequencing.
func (m *mappedFile) Resize(size uint64) error {
	if err := m.file.Truncate(int64(size)); err != nil {
		return err
	}

	return m.remap()
}
