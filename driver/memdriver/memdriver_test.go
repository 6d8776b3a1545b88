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

package memdriver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfs"
	"github.com/vfscore/vfs/driver/memdriver"
	"github.com/vfscore/vfs/vfstest"
)

func TestMemDriverSuite(t *testing.T) {
	vfstest.Suite(t, func(t *testing.T) vfs.Driver {
		return memdriver.New()
	})
}

func TestExternalEvents(t *testing.T) {
	drv := memdriver.New()
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(drv))

	require.NoError(t, drv.InjectFile(vfs.NewPath("/foo")))

	content, err := root.Directory().Content()
	require.NoError(t, err)
	require.Len(t, content, 1)

	foo := content[0]
	fooName, _ := foo.Name()
	require.Equal(t, "foo", fooName)

	require.NoError(t, drv.InjectFile(vfs.NewPath("/bar")))

	content, err = root.Directory().Content()
	require.NoError(t, err)
	require.Len(t, content, 2)

	require.NoError(t, drv.InjectRemove(vfs.NewPath("/foo")))
	require.Equal(t, vfs.Broken, foo.Valid())

	content, err = root.Directory().Content()
	require.NoError(t, err)
	require.Len(t, content, 1)

	require.NoError(t, drv.InjectRemove(vfs.NewPath("/bar")))

	content, err = root.Directory().Content()
	require.NoError(t, err)
	require.Empty(t, content)
}

func TestUnmountBreaksHandles(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	dir, err := root.Directory().CreateDirectory("a")
	require.NoError(t, err)

	require.NoError(t, root.Directory().Unmount())
	require.Equal(t, vfs.Broken, dir.Valid())

	require.NoError(t, root.Mount(memdriver.New()))

	content, err := root.Directory().Content()
	require.NoError(t, err)
	require.Empty(t, content)
	require.Equal(t, vfs.Broken, dir.Valid())
}
