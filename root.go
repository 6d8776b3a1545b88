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

import "github.com/sirupsen/logrus"

// Root owns the tree's top-level Directory. It has no parent and no
// name — attempting to mount a driver directly is done through its
// Directory the same as any other directory (§3 invariant: Root's parent
// back-reference is nil, never a self-cycle).
type Root struct {
	dir *Directory
	log *logrus.Entry
}

// Option configures a Root at construction time, following the teacher's
// functional-options config pattern (avfs's memfs_cfg.go WithXxx helpers).
type Option func(*rootConfig)

type rootConfig struct {
	log *logrus.Entry
}

// WithLogger attaches a *logrus.Entry used for Mount/Unmount diagnostics.
// Without this option, Root logs nothing.
func WithLogger(log *logrus.Entry) Option {
	return func(c *rootConfig) {
		c.log = log
	}
}

// NewRoot constructs an empty, unmounted tree root.
func NewRoot(opts ...Option) *Root {
	cfg := rootConfig{log: discardLogger()}

	for _, opt := range opts {
		opt(&cfg)
	}

	root := &Root{log: cfg.log}
	root.dir = newDirectory(root, nil, "", cfg.log)

	return root
}

// Directory returns the root Directory handle, through which Mount,
// Unmount, Get, GetAll, Content, Collect, CreateFile, CreateDirectory and
// Remove are all reached.
func (r *Root) Directory() *Directory {
	return r.dir
}

// Mount is a convenience wrapper for Directory().Mount.
func (r *Root) Mount(drv Driver) error {
	return r.dir.Mount(drv)
}

// Get is a convenience wrapper for Directory().Get, parsing path with
// NewPath first.
func (r *Root) Get(path string) (Object, error) {
	return r.dir.Get(NewPath(path))
}

// GetAll is a convenience wrapper for Directory().GetAll, parsing path
// with NewPath first.
func (r *Root) GetAll(path string) ([]Object, error) {
	return r.dir.GetAll(NewPath(path))
}
