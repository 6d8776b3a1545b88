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
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfs"
	"github.com/vfscore/vfs/driver/memdriver"
)

func TestRootGetAndGetAllConvenience(t *testing.T) {
	root := vfs.NewRoot()
	require.NoError(t, root.Mount(memdriver.New()))

	_, err := root.Directory().CreateFile("a")
	require.NoError(t, err)
	_, err = root.Directory().CreateFile("b")
	require.NoError(t, err)

	obj, err := root.Get("/a")
	require.NoError(t, err)
	name, err := obj.Name()
	require.NoError(t, err)
	require.Equal(t, "a", name)

	all, err := root.GetAll("/*")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestRootWithLoggerOption(t *testing.T) {
	log := logrus.NewEntry(logrus.New())
	root := vfs.NewRoot(vfs.WithLogger(log))
	require.NoError(t, root.Mount(memdriver.New()))

	_, err := root.Directory().CreateDirectory("d")
	require.NoError(t, err)
}

func TestRootDirectoryIsStableAcrossCalls(t *testing.T) {
	root := vfs.NewRoot()
	require.Same(t, root.Directory(), root.Directory())
}
