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
)

func TestIsKind(t *testing.T) {
	err := vfs.ErrElementNotFound(vfs.NewPath("/a"))
	require.True(t, vfs.IsKind(err, vfs.KindElementNotFound))
	require.False(t, vfs.IsKind(err, vfs.KindAlreadyMounted))
	require.False(t, vfs.IsKind(errors.New("unrelated"), vfs.KindElementNotFound))
}

func TestPathErrorIsByKindOnly(t *testing.T) {
	a := vfs.ErrElementNotFound(vfs.NewPath("/a"))
	b := vfs.ErrElementNotFound(vfs.NewPath("/b"))
	require.True(t, errors.Is(a, b))
}

func TestPathErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := vfs.ErrIOFailed(vfs.NewPath("/a"), cause)
	require.ErrorIs(t, err, cause)
}

func TestErrElementBrokenIsSentinel(t *testing.T) {
	require.True(t, errors.Is(vfs.ErrElementBroken, vfs.ErrElementBroken))
}
