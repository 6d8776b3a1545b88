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

	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfs"
)

func TestNewPath(t *testing.T) {
	p := vfs.NewPath("/a/b/c")
	require.True(t, p.Absolute())
	require.Equal(t, 3, p.Len())
	require.Equal(t, "a", p.At(0))
	require.Equal(t, "/a/b/c", p.String())

	rel := vfs.NewPath("a//b/")
	require.False(t, rel.Absolute())
	require.Equal(t, 2, rel.Len())
}

func TestPathAppendAndSubpath(t *testing.T) {
	p := vfs.RootPath().Append("a").Append("b")
	require.Equal(t, "/a/b", p.String())

	tail := p.Subpath(1)
	require.False(t, tail.Absolute())
	require.Equal(t, "b", tail.String())

	require.True(t, p.Subpath(0).Absolute())
}

func TestPathJoin(t *testing.T) {
	base := vfs.NewPath("/mnt")
	rel := vfs.NewPath("test/file")
	require.Equal(t, "/mnt/test/file", base.Join(rel).String())

	abs := vfs.NewPath("/absolute")
	require.Equal(t, "/absolute", base.Join(abs).String())
}

func TestPathHasWildcard(t *testing.T) {
	require.True(t, vfs.NewPath("a/*b").HasWildcard())
	require.True(t, vfs.NewPath("a/?b").HasWildcard())
	require.False(t, vfs.NewPath("a/b").HasWildcard())
}

func TestPathEqual(t *testing.T) {
	require.True(t, vfs.NewPath("/a/b").Equal(vfs.NewPath("/a/b")))
	require.False(t, vfs.NewPath("/a/b").Equal(vfs.NewPath("a/b")))
	require.False(t, vfs.NewPath("/a/b").Equal(vfs.NewPath("/a/B")))
}

func TestPathEmptyString(t *testing.T) {
	require.Equal(t, ".", vfs.Path{}.String())
	require.Equal(t, "/", vfs.RootPath().String())
}
