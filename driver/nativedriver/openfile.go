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

// openFile implements vfs.OpenFile over a shared descriptor. It also
// implements io.Closer — vfs.Stream.Close calls it when present — so the
// descriptor's refcount drops when the Stream is done with it.
type openFile struct {
	descriptor *descriptor
}

func (f *openFile) Read(pos uint64, buf []byte) (int, error) {
	return f.descriptor.readAt(pos, buf)
}

func (f *openFile) Write(pos uint64, buf []byte) (int, error) {
	return f.descriptor.writeAt(pos, buf)
}

func (f *openFile) Size() (uint64, error) {
	return f.descriptor.size()
}

func (f *openFile) Close() error {
	f.descriptor.release()

	return nil
}

// Acquire adds a reference to the shared descriptor. vfs.Stream.Assign calls
// this (via the optional sharer capability) when it takes over another
// Stream's OpenFile, so the descriptor's refcount reflects both Streams now
// holding it rather than closing early when only one of them is done.
func (f *openFile) Acquire() {
	f.descriptor.acquire()
}
