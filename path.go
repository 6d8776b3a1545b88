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

import "strings"

// Separator is the component separator used when parsing and rendering paths.
const Separator = "/"

// Path is an ordered sequence of non-empty basename components, plus a flag
// recording whether the path is absolute (began with a leading Separator).
//
// Path has value semantics: every operation that would mutate a path returns
// a new one. Components may contain the wildcard characters '?', '*' — Path
// itself never interprets them, it only stores and joins.
type Path struct {
	components []string
	absolute   bool
}

// NewPath parses s into a Path. A leading "/" marks the path absolute.
// Empty components produced by repeated separators are dropped, mirroring
// the teacher's path-segmentation helpers (avfs's PathIterator skips empty
// segments between repeated separators).
func NewPath(s string) Path {
	absolute := strings.HasPrefix(s, Separator)

	var components []string

	for _, part := range strings.Split(s, Separator) {
		if part == "" {
			continue
		}

		components = append(components, part)
	}

	return Path{components: components, absolute: absolute}
}

// RootPath is the absolute path with no components, "/".
func RootPath() Path {
	return Path{absolute: true}
}

// Append returns a new Path with name added as the last component. The
// result is absolute iff the receiver is.
func (p Path) Append(name string) Path {
	components := make([]string, len(p.components)+1)
	copy(components, p.components)
	components[len(p.components)] = name

	return Path{components: components, absolute: p.absolute}
}

// Join returns a new Path obtained by appending other's components to p.
// If other is absolute, the join result is absolute regardless of p — this
// lets a driver-relative absolute path be joined onto any mount prefix and
// still yield the absolute path (§4.1).
func (p Path) Join(other Path) Path {
	if other.absolute {
		return other
	}

	components := make([]string, 0, len(p.components)+len(other.components))
	components = append(components, p.components...)
	components = append(components, other.components...)

	return Path{components: components, absolute: p.absolute}
}

// Subpath returns the tail of p starting at component index i. The result
// keeps the absolute flag only when i == 0, per §4.1.
func (p Path) Subpath(i int) Path {
	if i == 0 {
		return p
	}

	if i >= len(p.components) {
		return Path{absolute: false}
	}

	components := make([]string, len(p.components)-i)
	copy(components, p.components[i:])

	return Path{components: components, absolute: false}
}

// Len returns the number of components.
func (p Path) Len() int {
	return len(p.components)
}

// Empty reports whether p has no components.
func (p Path) Empty() bool {
	return len(p.components) == 0
}

// At returns the i-th component.
func (p Path) At(i int) string {
	return p.components[i]
}

// Absolute reports whether p began with a leading separator.
func (p Path) Absolute() bool {
	return p.absolute
}

// HasWildcard reports whether any component of p contains '?' or '*'.
func (p Path) HasWildcard() bool {
	for _, c := range p.components {
		if strings.ContainsAny(c, "?*") {
			return true
		}
	}

	return false
}

// Equal reports whether p and other have the same components in the same
// order and the same absolute flag. Component comparison is exact (case
// sensitive); the directory content index, not Path, is where basename
// equivalence is made case-insensitive (§3).
func (p Path) Equal(other Path) bool {
	if p.absolute != other.absolute || len(p.components) != len(other.components) {
		return false
	}

	for i, c := range p.components {
		if c != other.components[i] {
			return false
		}
	}

	return true
}

// Less provides a deterministic lexical ordering of paths, for tests that
// need reproducible output from operations whose order is otherwise
// unspecified (content, collect, getAll).
func (p Path) Less(other Path) bool {
	return p.String() < other.String()
}

// String renders p using Separator, with a leading separator iff absolute.
func (p Path) String() string {
	var b strings.Builder

	if p.absolute {
		b.WriteString(Separator)
	}

	for i, c := range p.components {
		if i > 0 {
			b.WriteString(Separator)
		}

		b.WriteString(c)
	}

	if !p.absolute && len(p.components) == 0 {
		return "."
	}

	return b.String()
}
