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

package vfs_test

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfs"
	"github.com/vfscore/vfs/driver/memdriver"
)

func TestUnassignedStreamFailsEveryMethod(t *testing.T) {
	var s vfs.Stream

	_, err := s.Read(make([]byte, 1))
	require.True(t, errors.Is(err, vfs.ErrUnassignedAccessor))

	_, err = s.Write([]byte("x"))
	require.True(t, errors.Is(err, vfs.ErrUnassignedAccessor))

	_, err = s.Seek(0, 0)
	require.True(t, errors.Is(err, vfs.ErrUnassignedAccessor))

	_, err = s.Size()
	require.True(t, errors.Is(err, vfs.ErrUnassignedAccessor))
}

func TestUnassignedMappingFailsEveryMethod(t *testing.T) {
	var m vfs.Mapping

	_, err := m.Get()
	require.True(t, errors.Is(err, vfs.ErrUnassignedAccessor))

	_, err = m.Size()
	require.True(t, errors.Is(err, vfs.ErrUnassignedAccessor))

	err = m.Resize(10)
	require.True(t, errors.Is(err, vfs.ErrUnassignedAccessor))

	require.NoError(t, m.Close())
}

func TestStreamSeekClampsNegative(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)

	s, err := f.Open()
	require.NoError(t, err)
	defer s.Close()

	pos, err := s.Seek(-100, io.SeekCurrent)
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)
}

func TestFileSizeAndResize(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)

	s, err := f.Open()
	require.NoError(t, err)

	_, err = s.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	size, err := f.Size()
	require.NoError(t, err)
	require.Equal(t, uint64(5), size)

	require.NoError(t, f.Resize(2))

	size, err = f.Size()
	require.NoError(t, err)
	require.Equal(t, uint64(2), size)
}

func TestMappingCloseIsIdempotent(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)

	m, err := f.Map()
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestStreamAssignCarriesOverCursor(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)

	src, err := f.Open()
	require.NoError(t, err)

	_, err = src.Write([]byte("hello"))
	require.NoError(t, err)

	var dst vfs.Stream
	require.NoError(t, dst.Assign(src))

	buf := make([]byte, 16)
	n, err := dst.Read(buf)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 0, n)

	_, err = dst.Seek(0, io.SeekStart)
	require.NoError(t, err)

	n, err = dst.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))
}

func TestMappingAsViewsRegionAsElementSequence(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)
	require.NoError(t, f.Resize(16))

	m, err := f.Map()
	require.NoError(t, err)
	defer m.Close()

	words, err := vfs.As[uint32](m)
	require.NoError(t, err)
	require.Len(t, words, 4)

	words[1] = 0xdeadbeef

	region, err := m.Get()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), binary.LittleEndian.Uint32(region[4:8]))
}

func TestMappingAsRejectsPartialElement(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)
	require.NoError(t, f.Resize(3))

	m, err := f.Map()
	require.NoError(t, err)
	defer m.Close()

	_, err = vfs.As[uint32](m)
	require.True(t, vfs.IsKind(err, vfs.KindIOFailed))
}

func TestOperationOnBrokenFileFails(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)
	require.NoError(t, f.Remove())

	_, err = f.Open()
	require.True(t, errors.Is(err, vfs.ErrElementBroken))

	_, err = f.Size()
	require.True(t, errors.Is(err, vfs.ErrElementBroken))
}
