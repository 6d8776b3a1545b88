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

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// Each run() call mounts its own driver, so tests that chain commands use
// --native against a shared temp directory to persist state between calls;
// the in-memory driver only makes sense for single-command assertions.

func TestMkdirThenLs(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, run([]string{"--native", dir, "mkdir", "/a"}, &out))

	out.Reset()
	require.NoError(t, run([]string{"--native", dir, "ls", "/*"}, &out))
	require.Contains(t, out.String(), "d /a")
}

func TestWriteThenCat(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, run([]string{"--native", dir, "write", "/f", "hello"}, &out))

	out.Reset()
	require.NoError(t, run([]string{"--native", dir, "cat", "/f"}, &out))
	require.Equal(t, "hello", out.String())
}

func TestSizeOnDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, run([]string{"--native", dir, "mkdir", "/d"}, &out))
	require.Error(t, run([]string{"--native", dir, "size", "/d"}, &out))
}

func TestUnknownCommandFails(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, run([]string{"frobnicate", "/x"}, &out))
}
