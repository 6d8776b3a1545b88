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

package memdriver

// openFile implements vfs.OpenFile directly over a node's byte slice,
// translated from MemoryDriver::MemoryOpenFile::read/write.
type openFile struct {
	node *node
}

func (f *openFile) Read(pos uint64, buf []byte) (int, error) {
	f.node.mu.Lock()
	defer f.node.mu.Unlock()

	if pos >= uint64(len(f.node.data)) {
		return 0, nil
	}

	n := copy(buf, f.node.data[pos:])

	return n, nil
}

func (f *openFile) Write(pos uint64, buf []byte) (int, error) {
	f.node.mu.Lock()
	defer f.node.mu.Unlock()

	end := pos + uint64(len(buf))
	if end > uint64(len(f.node.data)) {
		grown := make([]byte, end)
		copy(grown, f.node.data)
		f.node.data = grown
	}

	copy(f.node.data[pos:end], buf)

	return len(buf), nil
}

func (f *openFile) Size() (uint64, error) {
	f.node.mu.Lock()
	defer f.node.mu.Unlock()

	return uint64(len(f.node.data)), nil
}

// mappedFile implements vfs.MappedFile. Its lock is the node's own lock,
// held by a Mapping for its entire lifetime (§4.7) — the same lock Read,
// Write, Size and Resize briefly take, so a live Mapping excludes Stream
// I/O on the same node too, which is a stricter but still spec-compliant
// reading of "Per-MappedFile recursive lock" (§5): nothing requires Stream
// access to be lock-free, only that it need not serialise with other
// Streams.
type mappedFile struct {
	node *node
}

func (m *mappedFile) Lock() {
	m.node.mu.Lock()
}

func (m *mappedFile) Unlock() {
	m.node.mu.Unlock()
}

func (m *mappedFile) Get() []byte {
	return m.node.data
}

func (m *mappedFile) Size() uint64 {
	return uint64(len(m.node.data))
}

func (m *mappedFile) Resize(size uint64) error {
	m.node.data = resizeBytes(m.node.data, size)

	return nil
}
