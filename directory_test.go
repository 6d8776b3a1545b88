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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfs"
	"github.com/vfscore/vfs/driver/memdriver"
)

// bareDriver implements vfs.Driver but not vfs.NotifierHost.
type bareDriver struct{}

func (bareDriver) Get(vfs.Path) (vfs.FileEntry, error)    { return vfs.FileEntry{}, nil }
func (bareDriver) List(vfs.Path) ([]vfs.FileEntry, error) { return nil, nil }
func (bareDriver) Size(vfs.Path) (uint64, error)          { return 0, nil }
func (bareDriver) Resize(vfs.Path, uint64) error          { return nil }
func (bareDriver) CreateFile(vfs.Path) error              { return nil }
func (bareDriver) CreateDirectory(vfs.Path) error         { return nil }
func (bareDriver) RemoveFile(vfs.Path) error              { return nil }
func (bareDriver) RemoveDirectory(vfs.Path) error         { return nil }
func (bareDriver) Open(vfs.Path) (vfs.OpenFile, error)    { return nil, nil }
func (bareDriver) Map(vfs.Path) (vfs.MappedFile, error)   { return nil, nil }

func TestMountRejectsNonNotifyingDriver(t *testing.T) {
	root := vfs.NewRoot()
	err := root.Mount(bareDriver{})
	require.True(t, vfs.IsKind(err, vfs.KindInvalidPath))
}

func TestMountTwiceFails(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	err := root.Mount(memdriver.New())
	require.True(t, vfs.IsKind(err, vfs.KindAlreadyMounted))
}

func TestUnmountWithoutMountFails(t *testing.T) {
	root := vfs.NewRoot()
	err := root.Directory().Unmount()
	require.True(t, vfs.IsKind(err, vfs.KindNoMountPoint))
}

func TestCreateFileThenGet(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)

	name, err := f.Name()
	require.NoError(t, err)
	require.Equal(t, "f", name)

	path, err := f.Path()
	require.NoError(t, err)
	require.Equal(t, "/f", path.String())
}

func TestCreateFileOnExistingNameFails(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	_, err := root.Directory().CreateFile("f")
	require.NoError(t, err)

	_, err = root.Directory().CreateFile("f")
	require.True(t, vfs.IsKind(err, vfs.KindElementAlreadyExists))
}

func TestCreateDirectoryThenGetIsDir(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	_, err := root.Directory().CreateDirectory("d")
	require.NoError(t, err)

	obj, err := root.Directory().Get(vfs.NewPath("d"))
	require.NoError(t, err)
	require.True(t, obj.IsDir())
}

func TestRemoveBreaksHandle(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	f, err := root.Directory().CreateFile("f")
	require.NoError(t, err)
	require.NoError(t, f.Remove())

	_, err = f.Name()
	require.True(t, errors.Is(err, vfs.ErrElementBroken))
}

func TestRemoveNonEmptyDirectoryRecurses(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	d, err := root.Directory().CreateDirectory("d")
	require.NoError(t, err)

	_, err = d.CreateFile("inner")
	require.NoError(t, err)

	require.NoError(t, d.Remove())

	content, err := root.Directory().Content()
	require.NoError(t, err)
	require.Empty(t, content)
}
