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

import "errors"

// Sentinel errors for the no-argument error kinds of §7. Use errors.Is to
// test for these; the argument-carrying kinds below implement Is themselves
// so the same errors.Is(err, ErrXxx) idiom works uniformly.
var (
	// ErrElementBroken is returned by any operation on a Broken handle.
	ErrElementBroken = errors.New("vfs: element is broken")

	// ErrUnassignedAccessor is returned by an operation on a default
	// constructed (unopened) Stream or Mapping.
	ErrUnassignedAccessor = errors.New("vfs: accessor is unassigned")

	// ErrAlreadyOpened is returned when re-opening an already-open
	// descriptor that does not support being opened twice.
	ErrAlreadyOpened = errors.New("vfs: descriptor is already opened")

	// ErrDirectoryNotEmpty is returned by a driver's RemoveDirectory when
	// the target directory still has entries. Directory.Remove recovers
	// from this error internally (§4.5) by removing children first.
	ErrDirectoryNotEmpty = errors.New("vfs: directory not empty")
)

// PathError is the common shape of the path-carrying error kinds in §7:
// InvalidPath, ElementNotFound, ElementKindInvalid, AlreadyMounted,
// NoMountPoint, ElementAlreadyExists and IOFailed. Kind distinguishes them
// for errors.Is, and Path/Err give the caller context, mirroring the
// teacher's use of *fs.PathError for filesystem-shaped errors.
type PathError struct {
	Kind Kind
	Path Path
	Err  error // optional underlying cause, e.g. a syscall error
}

// Kind enumerates the taxonomy in §7.
type Kind int

const (
	KindInvalidPath Kind = iota + 1
	KindElementNotFound
	KindElementKindInvalid
	KindAlreadyMounted
	KindNoMountPoint
	KindElementAlreadyExists
	KindIOFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPath:
		return "invalid path"
	case KindElementNotFound:
		return "element not found"
	case KindElementKindInvalid:
		return "element kind invalid"
	case KindAlreadyMounted:
		return "already mounted"
	case KindNoMountPoint:
		return "no mount point"
	case KindElementAlreadyExists:
		return "element already exists"
	case KindIOFailed:
		return "I/O failed"
	default:
		return "unknown vfs error"
	}
}

func (e *PathError) Error() string {
	msg := e.Kind.String() + ": " + e.Path.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same Kind, following the
// ErrorIdentifier pattern the teacher uses (avfs.ErrorIdentifier) so
// errors.Is(err, vfs.ErrElementNotFound(Path{})) style comparisons by kind
// work without comparing the Path payload. Prefer IsKind for kind-only
// comparisons.
func (e *PathError) Is(target error) bool {
	other, ok := target.(*PathError)
	if !ok {
		return false
	}

	return e.Kind == other.Kind
}

// IsKind reports whether err is a *PathError of the given Kind.
func IsKind(err error, kind Kind) bool {
	var pe *PathError

	if !errors.As(err, &pe) {
		return false
	}

	return pe.Kind == kind
}

func newPathError(kind Kind, path Path, cause error) *PathError {
	return &PathError{Kind: kind, Path: path, Err: cause}
}

// ErrElementNotFound builds the ElementNotFound error for path.
func ErrElementNotFound(path Path) error {
	return newPathError(KindElementNotFound, path, nil)
}

// ErrElementKindInvalid builds the ElementKindInvalid error for path.
func ErrElementKindInvalid(path Path, reason string) error {
	return newPathError(KindElementKindInvalid, path, errors.New(reason))
}

// ErrAlreadyMounted builds the AlreadyMounted error for path.
func ErrAlreadyMounted(path Path) error {
	return newPathError(KindAlreadyMounted, path, nil)
}

// ErrNoMountPoint builds the NoMountPoint error for path.
func ErrNoMountPoint(path Path) error {
	return newPathError(KindNoMountPoint, path, nil)
}

// ErrElementAlreadyExists builds the ElementAlreadyExists error for path.
func ErrElementAlreadyExists(path Path) error {
	return newPathError(KindElementAlreadyExists, path, nil)
}

// ErrInvalidPath builds the InvalidPath error for path.
func ErrInvalidPath(path Path, cause error) error {
	return newPathError(KindInvalidPath, path, cause)
}

// ErrIOFailed builds the IOFailed error for path, wrapping the underlying
// driver/syscall cause.
func ErrIOFailed(path Path, cause error) error {
	return newPathError(KindIOFailed, path, cause)
}
