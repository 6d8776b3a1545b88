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

import "github.com/vfscore/vfs"

// InjectFile creates path as a file directly in the backing tree, bypassing
// the VFS, and publishes an Invalidate through the driver's MountNotifier —
// the shape of an externally-sourced change a real backend would push on
// its own (§8 scenario 4, "external driver events").
func (d *Driver) InjectFile(path vfs.Path) error {
	if err := d.createNode(path, false); err != nil {
		return err
	}

	return d.Invalidate(parentOf(path))
}

// InjectDirectory is InjectFile's directory counterpart.
func (d *Driver) InjectDirectory(path vfs.Path) error {
	if err := d.createNode(path, true); err != nil {
		return err
	}

	return d.Invalidate(parentOf(path))
}

// InjectRemove removes path directly in the backing tree and publishes a
// Break for the removed path plus an Invalidate for its parent.
func (d *Driver) InjectRemove(path vfs.Path) error {
	n, err := d.lookup(path)
	if err != nil {
		return err
	}

	if err := d.removeNode(path, n.isDir); err != nil {
		return err
	}

	_ = d.Break(path)

	return d.Invalidate(parentOf(path))
}

func parentOf(path vfs.Path) vfs.Path {
	parent, _ := splitParent(path)

	return parent
}
