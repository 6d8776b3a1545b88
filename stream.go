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

import "io"

// Stream is a seekable byte stream over a File's content (§4.7). Its zero
// value is the "default-constructed" unassigned Stream: every method on it
// fails with ErrUnassignedAccessor until it is replaced by one returned
// from File.Open. Assigning an opened Stream to another is done with
// Assign, which keeps the underlying OpenFile and carries over the source's
// current cursor; a plain struct copy (s2 = *s1) copies file and pos but
// takes no extra reference on a shared descriptor.
type Stream struct {
	file OpenFile
	path Path
	pos  uint64
}

var (
	_ io.Reader = (*Stream)(nil)
	_ io.Writer = (*Stream)(nil)
	_ io.Seeker = (*Stream)(nil)
	_ io.Closer = (*Stream)(nil)
)

// Read reads into p starting at the stream's current cursor and advances
// the cursor by the number of bytes actually transferred. Reading at or
// past the end of the file returns (0, io.EOF).
func (s *Stream) Read(p []byte) (int, error) {
	if s.file == nil {
		return 0, ErrUnassignedAccessor
	}

	n, err := s.file.Read(s.pos, p)
	s.pos += uint64(n)

	if n == 0 && err == nil {
		return 0, io.EOF
	}

	return n, err
}

// Write writes p at the stream's current cursor — at the current end of
// file this appends, before it this overwrites and may extend the file —
// and advances the cursor by the number of bytes actually transferred.
func (s *Stream) Write(p []byte) (int, error) {
	if s.file == nil {
		return 0, ErrUnassignedAccessor
	}

	n, err := s.file.Write(s.pos, p)
	s.pos += uint64(n)

	return n, err
}

// Seek repositions the cursor. whence follows io.Seeker: io.SeekStart,
// io.SeekCurrent, io.SeekEnd.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.file == nil {
		return 0, ErrUnassignedAccessor
	}

	var base int64

	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = int64(s.pos)
	case io.SeekEnd:
		size, err := s.file.Size()
		if err != nil {
			return 0, err
		}

		base = int64(size)
	default:
		return 0, ErrInvalidPath(s.path, io.ErrUnexpectedEOF)
	}

	next := base + offset
	if next < 0 {
		next = 0
	}

	s.pos = uint64(next)

	return int64(s.pos), nil
}

// Size returns the driver's file size at the time of the call.
func (s *Stream) Size() (uint64, error) {
	if s.file == nil {
		return 0, ErrUnassignedAccessor
	}

	return s.file.Size()
}

// sharer is an optional OpenFile capability: Acquire adds a reference to a
// shared underlying descriptor, so a second Stream holding the same
// OpenFile doesn't cause it to close early when only one of them is done
// with it.
type sharer interface{ Acquire() }

// Assign repoints s at other's underlying OpenFile and cursor, closing
// whatever s was previously open on first. This is the Go equivalent of the
// original C++ source's Stream::operator=, which closes the destination's
// existing device and re-opens onto the source's OpenFile before copying
// its current position — assigning a Stream carries over the live
// descriptor, not just the cursor value.
func (s *Stream) Assign(other *Stream) error {
	if err := s.Close(); err != nil {
		return err
	}

	if sh, ok := other.file.(sharer); ok {
		sh.Acquire()
	}

	s.file = other.file
	s.path = other.path
	s.pos = other.pos

	return nil
}

// Close releases any resources the driver's OpenFile holds on behalf of
// this Stream (e.g. a shared descriptor's reference count), if the
// concrete OpenFile participates in that protocol. Drivers that hand back
// a bare in-memory OpenFile have nothing to release here.
func (s *Stream) Close() error {
	if closer, ok := s.file.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}
