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

package nativedriver_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfs"
	"github.com/vfscore/vfs/driver/nativedriver"
	"github.com/vfscore/vfs/vfstest"
)

func TestNativeDriverSuite(t *testing.T) {
	vfstest.Suite(t, func(t *testing.T) vfs.Driver {
		drv, err := nativedriver.New(t.TempDir())
		require.NoError(t, err)

		return drv
	})
}

func TestResizeReopensInPlace(t *testing.T) {
	drv, err := nativedriver.New(t.TempDir())
	require.NoError(t, err)

	root := vfs.NewRoot()
	require.NoError(t, root.Mount(drv))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)

	s, err := f.Open()
	require.NoError(t, err)

	_, err = s.Write([]byte("hello world"))
	require.NoError(t, err)

	require.NoError(t, f.Resize(5))

	_, err = s.Seek(0, io.SeekStart)
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))
}
