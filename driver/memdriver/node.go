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

package memdriver

import "github.com/sasha-s/go-deadlock"

// node is either a directory (children populated, data nil) or a file
// (data populated, children nil), mirroring memfs's dirNode/fileNode split
// but unified into one type since this driver carries none of the
// permission/symlink state that justified separate types in the teacher.
type node struct {
	mu       deadlock.Mutex
	name     string
	isDir    bool
	data     []byte
	children map[string]*node
	mapping  *mappedFile
}

func newNode(isDir bool) *node {
	n := &node{isDir: isDir}
	if isDir {
		n.children = make(map[string]*node)
	}

	return n
}
