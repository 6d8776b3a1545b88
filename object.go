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

import "sync/atomic"

// Validity is the three-state machine of §4.4: every handle starts Invalid,
// becomes Valid once it has been reconciled against its driver, and can be
// marked Broken (terminal) at any point before or after that.
type Validity int32

const (
	// Invalid is the zero value: the handle carries only name/parent/root
	// and has not yet been reconciled with the driver.
	Invalid Validity = iota
	Valid
	Broken
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "Valid"
	case Invalid:
		return "Invalid"
	case Broken:
		return "Broken"
	default:
		return "Validity(?)"
	}
}

// Object is the client-visible handle to either a File or a Directory. It
// is intentionally a small, sealed interface — File and Directory are the
// only implementations — so that Directory.Content, Directory.Collect and
// the resolver can hand back either kind uniformly, the way the C++ source
// lets code hold a shared_ptr<Object> without caring which subtype it is.
type Object interface {
	// Name returns the object's basename. Fails with ErrElementBroken if
	// the handle is Broken.
	Name() (string, error)

	// Path returns the object's path from the tree root. Fails with
	// ErrElementBroken if the handle is Broken.
	Path() (Path, error)

	// Parent returns the enclosing directory, or nil for Root. Fails with
	// ErrElementBroken if the handle is Broken.
	Parent() (*Directory, error)

	// Root returns the tree root this object belongs to.
	Root() *Root

	// Valid returns the current validity state without triggering a
	// validate() call or raising an error.
	Valid() Validity

	// IsDir reports whether this Object is a Directory.
	IsDir() bool

	// Remove deletes the underlying driver entry and marks this handle
	// Broken.
	Remove() error

	markInvalid()
	markBroken()
	basename() string
}

// base carries the attributes common to File and Directory (§3's Object
// supertype): a back-reference to the root, a back-reference to the
// parent, the basename, and the validity state. root/parent are ordinary
// Go pointers rather than the C++ source's weak_ptr — Go's tracing
// collector has no trouble with the resulting parent/child cycle, so there
// is nothing to leak the way there would be with shared_ptr reference
// counting.
type base struct {
	root     *Root
	parent   *Directory
	name     string
	validity atomic.Int32
}

func newBase(root *Root, parent *Directory, name string) base {
	b := base{root: root, parent: parent, name: name}
	b.validity.Store(int32(Invalid))

	return b
}

func (b *base) Valid() Validity {
	return Validity(b.validity.Load())
}

func (b *base) markValidSelf() {
	b.validity.Store(int32(Valid))
}

// markInvalidSelf moves Invalid->Invalid or Valid->Invalid. Broken is
// terminal (§4.4) — a cascade that reaches an already-Broken handle (e.g.
// Directory.Remove invalidating a parent after one of its other children
// was just broken by the same removal) must not resurrect it to Invalid.
func (b *base) markInvalidSelf() {
	b.validity.CompareAndSwap(int32(Valid), int32(Invalid))
}

func (b *base) markBrokenSelf() {
	b.validity.Store(int32(Broken))
}

func (b *base) basename() string {
	return b.name
}

// checkBroken returns ErrElementBroken if the handle is Broken; it never
// triggers a validate() call, matching the original C++ source's
// Object::checkIfBroken.
func (b *base) checkBroken() error {
	if b.Valid() == Broken {
		return ErrElementBroken
	}

	return nil
}

func (b *base) Root() *Root {
	return b.root
}

func (b *base) Parent() (*Directory, error) {
	if err := b.checkBroken(); err != nil {
		return nil, err
	}

	return b.parent, nil
}

func (b *base) Name() (string, error) {
	if err := b.checkBroken(); err != nil {
		return "", err
	}

	return b.name, nil
}
