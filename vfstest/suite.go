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

// Package vfstest is a shared scenario suite run against every vfs.Driver
// implementation, grounded on the shape of avfs's test.SuiteFS (a single
// table-driven suite exercised identically by memfs_test.go, osfs_test.go
// and mountfs_test.go) — here narrowed to the handful of driver-agnostic
// scenarios §8 of the specification calls out by name.
package vfstest

import (
	"io"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfs"
)

// Factory builds a fresh, unmounted Driver for one test. Cleanup (if any)
// runs via t.Cleanup inside the factory itself.
type Factory func(t *testing.T) vfs.Driver

// Suite runs every scenario in this package against the driver newDriver
// produces, mounted at root.
func Suite(t *testing.T, newDriver Factory) {
	t.Run("CreateRemoveParity", func(t *testing.T) { CreateRemoveParity(t, newDriver) })
	t.Run("WildcardResolution", func(t *testing.T) { WildcardResolution(t, newDriver) })
	t.Run("InvalidationOnParentRemoval", func(t *testing.T) { InvalidationOnParentRemoval(t, newDriver) })
	t.Run("StreamReadWrite", func(t *testing.T) { StreamReadWrite(t, newDriver) })
	t.Run("MappingReadWrite", func(t *testing.T) { MappingReadWrite(t, newDriver) })
	t.Run("ConcurrentMappings", func(t *testing.T) { ConcurrentMappings(t, newDriver) })
	t.Run("CaseInsensitiveLookup", func(t *testing.T) { CaseInsensitiveLookup(t, newDriver) })
}

func newMountedRoot(t *testing.T, newDriver Factory) *vfs.Root {
	t.Helper()

	root := vfs.NewRoot()
	require.NoError(t, root.Mount(newDriver(t)))

	return root
}

func names(objs []vfs.Object) []string {
	out := make([]string, 0, len(objs))

	for _, o := range objs {
		n, err := o.Name()
		if err != nil {
			continue
		}

		out = append(out, n)
	}

	sort.Strings(out)

	return out
}

// CreateRemoveParity is §8 scenario 1.
func CreateRemoveParity(t *testing.T, newDriver Factory) {
	root := newMountedRoot(t, newDriver)
	dir := root.Directory()

	_, err := dir.CreateDirectory("a")
	require.NoError(t, err)

	_, err = dir.CreateDirectory("b")
	require.NoError(t, err)

	_, err = dir.CreateDirectory("a")
	require.True(t, vfs.IsKind(err, vfs.KindElementAlreadyExists))

	a, err := dir.Get(vfs.NewPath("a"))
	require.NoError(t, err)
	require.NoError(t, a.Remove())

	b, err := dir.Get(vfs.NewPath("b"))
	require.NoError(t, err)
	require.NoError(t, b.Remove())

	content, err := dir.Content()
	require.NoError(t, err)
	require.Empty(t, content)
}

// WildcardResolution is §8 scenario 2.
func WildcardResolution(t *testing.T, newDriver Factory) {
	root := newMountedRoot(t, newDriver)
	dir := root.Directory()

	china, err := dir.CreateDirectory("China")
	require.NoError(t, err)

	cities := []string{
		"Beijing", "Nanjing", "Dalian", "Dandong", "Danyang",
		"Daqing", "Datong", "Dengzhou", "Dezhou", "Dingzhou",
		"Dongguan", "Dongying", "Qujing",
	}
	for _, city := range cities {
		_, err := china.CreateDirectory(city)
		require.NoError(t, err)
	}

	nz, err := dir.CreateDirectory("New Zealand")
	require.NoError(t, err)
	_, err = nz.CreateDirectory("Auckland")
	require.NoError(t, err)

	us, err := dir.CreateDirectory("United States")
	require.NoError(t, err)

	california, err := us.CreateDirectory("California")
	require.NoError(t, err)
	_, err = california.CreateDirectory("Oakland")
	require.NoError(t, err)
	_, err = california.CreateDirectory("San Francisco")
	require.NoError(t, err)

	florida, err := us.CreateDirectory("Florida")
	require.NoError(t, err)
	_, err = florida.CreateDirectory("Orlando")
	require.NoError(t, err)

	oregon, err := us.CreateDirectory("Oregon")
	require.NoError(t, err)
	_, err = oregon.CreateDirectory("Portland")
	require.NoError(t, err)

	matches, err := dir.GetAll(vfs.NewPath("China/*jing"))
	require.NoError(t, err)
	require.Equal(t, []string{"Beijing", "Nanjing", "Qujing"}, names(matches))

	matches, err = dir.GetAll(vfs.NewPath("China/???jing"))
	require.NoError(t, err)
	require.Equal(t, []string{"Beijing", "Nanjing"}, names(matches))

	matches, err = dir.GetAll(vfs.NewPath("**/*land"))
	require.NoError(t, err)
	require.Equal(t, []string{"Auckland", "Oakland", "Portland"}, names(matches))
}

// InvalidationOnParentRemoval is §8 scenario 3.
func InvalidationOnParentRemoval(t *testing.T, newDriver Factory) {
	root := newMountedRoot(t, newDriver)
	dir := root.Directory()

	asia, err := dir.CreateDirectory("Asia")
	require.NoError(t, err)

	indonesia, err := asia.CreateDirectory("Indonesia")
	require.NoError(t, err)

	require.NoError(t, asia.Remove())

	require.Equal(t, vfs.Broken, indonesia.Valid())
	_, err = indonesia.Name()
	require.ErrorIs(t, err, vfs.ErrElementBroken)

	asiaAgain, err := dir.CreateDirectory("Asia")
	require.NoError(t, err)

	_, err = asiaAgain.Get(vfs.NewPath("Indonesia"))
	require.True(t, vfs.IsKind(err, vfs.KindElementNotFound))
	require.Equal(t, vfs.Broken, indonesia.Valid())
}

// StreamReadWrite is §8 scenario 5's non-concurrent core: two streams on
// the same file observe each other's writes.
func StreamReadWrite(t *testing.T, newDriver Factory) {
	root := newMountedRoot(t, newDriver)
	dir := root.Directory()

	f, err := dir.CreateFile("f")
	require.NoError(t, err)

	s1, err := f.Open()
	require.NoError(t, err)

	_, err = s1.Write([]byte("what is that..."))
	require.NoError(t, err)

	s2, err := f.Open()
	require.NoError(t, err)

	_, err = s2.Seek(0, io.SeekEnd)
	require.NoError(t, err)

	_, err = s2.Write([]byte(" I don't even"))
	require.NoError(t, err)

	buf := make([]byte, 64)

	_, err = s1.Seek(0, io.SeekStart)
	require.NoError(t, err)

	n, err := s1.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "what is that... I don't even", string(buf[:n]))
}

// MappingReadWrite checks one direction of §8's Mapping round-trip
// invariant: data written via Mapping is visible via Stream.
func MappingReadWrite(t *testing.T, newDriver Factory) {
	root := newMountedRoot(t, newDriver)
	dir := root.Directory()

	f, err := dir.CreateFile("f")
	require.NoError(t, err)

	require.NoError(t, f.Resize(5))

	m, err := f.Map()
	require.NoError(t, err)

	region, err := m.Get()
	require.NoError(t, err)
	copy(region, "hello")
	require.NoError(t, m.Close())

	s, err := f.Open()
	require.NoError(t, err)

	buf := make([]byte, 5)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))

	size, err := f.Size()
	require.NoError(t, err)
	require.Equal(t, uint64(5), size)
}

// ConcurrentMappings is §8 scenario 6: two goroutines each call File.Map on
// the same path; the second must block in Map until the first Mapping
// closes, since both resolve to the same MappedFile and a Mapping holds
// that file's lock for its entire lifetime (§4.7/§5).
func ConcurrentMappings(t *testing.T, newDriver Factory) {
	root := newMountedRoot(t, newDriver)
	dir := root.Directory()

	f, err := dir.CreateFile("f")
	require.NoError(t, err)
	require.NoError(t, f.Resize(4))

	first, err := f.Map()
	require.NoError(t, err)

	mapped := make(chan *vfs.Mapping, 1)

	go func() {
		m, err := f.Map()
		require.NoError(t, err)
		mapped <- m
	}()

	select {
	case <-mapped:
		t.Fatal("second Map() returned before the first Mapping closed")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, first.Close())

	select {
	case second := <-mapped:
		require.NoError(t, second.Close())
	case <-time.After(5 * time.Second):
		t.Fatal("second Map() never unblocked after the first Mapping closed")
	}
}

// CaseInsensitiveLookup is §8's case-insensitivity invariant.
func CaseInsensitiveLookup(t *testing.T, newDriver Factory) {
	root := newMountedRoot(t, newDriver)
	dir := root.Directory()

	_, err := dir.CreateFile("README")
	require.NoError(t, err)

	lower, err := dir.Get(vfs.NewPath("readme"))
	require.NoError(t, err)

	mixed, err := dir.Get(vfs.NewPath("ReadMe"))
	require.NoError(t, err)

	lowerName, _ := lower.Name()
	mixedName, _ := mixed.Name()
	require.Equal(t, lowerName, mixedName)
}
