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

import (
	"github.com/sirupsen/logrus"
)

// File is a leaf node of the tree (§3): a handle to a single file entry
// served by the nearest mounted ancestor's driver.
type File struct {
	base

	log *logrus.Entry
}

func newFile(root *Root, parent *Directory, name string, log *logrus.Entry) *File {
	return &File{base: newBase(root, parent, name), log: log}
}

// IsDir always returns false for File.
func (f *File) IsDir() bool { return false }

// Path returns the object's absolute path from the tree root.
func (f *File) Path() (Path, error) {
	if err := f.checkBroken(); err != nil {
		return Path{}, err
	}

	parentPath, err := f.parent.Path()
	if err != nil {
		return Path{}, err
	}

	return parentPath.Append(f.name), nil
}

// validate runs the File validate algorithm of §4.4: stat the entry through
// the parent's effective driver; ElementNotFound marks Broken, success
// marks Valid, and any other driver error is returned without changing
// validity. Kind mismatch is the parent directory's responsibility during
// its own reconciliation.
func (f *File) validate() error {
	switch f.Valid() {
	case Valid:
		return nil
	case Broken:
		return ErrElementBroken
	}

	driverPath, drv, err := f.parent.effectiveDriver()
	if err != nil {
		f.markBrokenSelf()

		return err
	}

	target := driverPath.Append(f.name)

	if f.log != nil {
		f.log.WithField("path", target.String()).Trace("validating file against driver")
	}

	_, err = drv.Get(target)
	if err != nil {
		if IsKind(err, KindElementNotFound) {
			f.markBrokenSelf()

			return ErrElementBroken
		}

		return err
	}

	f.markValidSelf()

	if f.log != nil {
		f.log.WithField("path", target.String()).Debug("file reconciled as valid")
	}

	return nil
}

// markInvalid implements the Object interface. A File has no children to
// cascade to.
func (f *File) markInvalid() {
	f.markInvalidSelf()
}

// markBroken implements the Object interface.
func (f *File) markBroken() {
	f.markBrokenSelf()
}

func (f *File) effectiveDriver() (Path, Driver, error) {
	if err := f.checkBroken(); err != nil {
		return Path{}, nil, err
	}

	parentPath, drv, err := f.parent.effectiveDriver()
	if err != nil {
		return Path{}, nil, err
	}

	return parentPath.Append(f.name), drv, nil
}

// Size returns the current size of the file in bytes.
func (f *File) Size() (uint64, error) {
	if err := f.validate(); err != nil {
		return 0, err
	}

	driverPath, drv, err := f.effectiveDriver()
	if err != nil {
		return 0, err
	}

	return drv.Size(driverPath)
}

// Resize truncates or extends the file to size bytes.
func (f *File) Resize(size uint64) error {
	if err := f.validate(); err != nil {
		return err
	}

	driverPath, drv, err := f.effectiveDriver()
	if err != nil {
		return err
	}

	return drv.Resize(driverPath, size)
}

// Open returns a fresh Stream positioned at offset 0, backed by the
// driver's OpenFile for this path. Opening the same File twice yields two
// independent cursors over whatever the driver hands back from Open — a
// driver MAY share the underlying descriptor across calls (§4.7).
func (f *File) Open() (*Stream, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	driverPath, drv, err := f.effectiveDriver()
	if err != nil {
		return nil, err
	}

	of, err := drv.Open(driverPath)
	if err != nil {
		return nil, err
	}

	return &Stream{file: of, path: driverPath}, nil
}

// Map returns a Mapping over the file's content. Construction acquires the
// backing MappedFile's lock and holds it for the Mapping's lifetime (§4.7).
func (f *File) Map() (*Mapping, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	driverPath, drv, err := f.effectiveDriver()
	if err != nil {
		return nil, err
	}

	mf, err := drv.Map(driverPath)
	if err != nil {
		return nil, err
	}

	mf.Lock()

	return &Mapping{file: mf, path: driverPath}, nil
}

// Remove deletes the file through its driver and marks this handle Broken.
func (f *File) Remove() error {
	if err := f.validate(); err != nil {
		return err
	}

	driverPath, drv, err := f.effectiveDriver()
	if err != nil {
		return err
	}

	if err := drv.RemoveFile(driverPath); err != nil {
		return err
	}

	if f.parent != nil {
		f.parent.markInvalid()
	}

	f.markBrokenSelf()

	if f.log != nil {
		f.log.WithField("path", driverPath.String()).Info("removed file")
	}

	return nil
}

var _ Object = (*File)(nil)
