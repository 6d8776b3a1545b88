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

// Command vfsshell is a one-shot command runner over a mounted tree: each
// invocation mounts a driver, performs a single operation and exits. It
// exists to exercise the library end to end the way a real client would,
// not as a production shell.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/vfscore/vfs"
	"github.com/vfscore/vfs/driver/memdriver"
	"github.com/vfscore/vfs/driver/nativedriver"
)

type options struct {
	Native  string `long:"native" description:"root a nativedriver at this directory instead of an in-memory driver"`
	Verbose bool   `short:"v" long:"verbose" description:"log at debug level"`

	Args struct {
		Command string   `positional-arg-name:"command" description:"one of: ls cat write mkdir rm size"`
		Path    string   `positional-arg-name:"path"`
		Rest    []string `positional-arg-name:"args"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "vfsshell:", err)
		os.Exit(1)
	}
}

func run(argv []string, out io.Writer) error {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(argv); err != nil {
		return err
	}

	log := logrus.New()
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	entry := logrus.NewEntry(log)

	root := vfs.NewRoot(vfs.WithLogger(entry))

	drv, cleanup, err := openDriver(opts, entry)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := root.Mount(drv); err != nil {
		return err
	}

	return dispatch(root, opts, out)
}

func openDriver(opts options, log *logrus.Entry) (vfs.Driver, func(), error) {
	if opts.Native != "" {
		drv, err := nativedriver.New(opts.Native, nativedriver.WithLogger(log))
		if err != nil {
			return nil, nil, err
		}

		return drv, func() {}, nil
	}

	return memdriver.New(memdriver.WithLogger(log)), func() {}, nil
}

func dispatch(root *vfs.Root, opts options, out io.Writer) error {
	path := opts.Args.Path

	switch opts.Args.Command {
	case "ls":
		return cmdLs(root, path, out)
	case "cat":
		return cmdCat(root, path, out)
	case "write":
		if len(opts.Args.Rest) == 0 {
			return fmt.Errorf("write requires data")
		}

		return cmdWrite(root, path, opts.Args.Rest[0])
	case "mkdir":
		return cmdMkdir(root, path)
	case "rm":
		return cmdRm(root, path)
	case "size":
		return cmdSize(root, path, out)
	default:
		return fmt.Errorf("unknown command %q", opts.Args.Command)
	}
}

func cmdLs(root *vfs.Root, path string, out io.Writer) error {
	objects, err := root.GetAll(path)
	if err != nil {
		return err
	}

	for _, obj := range objects {
		p, err := obj.Path()
		if err != nil {
			continue
		}

		kind := "f"
		if obj.IsDir() {
			kind = "d"
		}

		fmt.Fprintf(out, "%s %s\n", kind, p.String())
	}

	return nil
}

func cmdCat(root *vfs.Root, path string, out io.Writer) error {
	obj, err := root.Get(path)
	if err != nil {
		return err
	}

	f, ok := obj.(*vfs.File)
	if !ok {
		return fmt.Errorf("%s is a directory", path)
	}

	s, err := f.Open()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = io.Copy(out, s)

	return err
}

func cmdWrite(root *vfs.Root, path, data string) error {
	obj, err := root.Get(path)
	var f *vfs.File

	if err != nil {
		if !vfs.IsKind(err, vfs.KindElementNotFound) {
			return err
		}

		f, err = createFile(root, path)
		if err != nil {
			return err
		}
	} else {
		var ok bool

		f, ok = obj.(*vfs.File)
		if !ok {
			return fmt.Errorf("%s is a directory", path)
		}
	}

	s, err := f.Open()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Write([]byte(data))

	return err
}

func createFile(root *vfs.Root, path string) (*vfs.File, error) {
	p := vfs.NewPath(path)
	if p.Empty() {
		return nil, vfs.ErrInvalidPath(p, nil)
	}

	parent, err := navigateToParent(root, p)
	if err != nil {
		return nil, err
	}

	return parent.CreateFile(p.At(p.Len() - 1))
}

func navigateToParent(root *vfs.Root, p vfs.Path) (*vfs.Directory, error) {
	dir := root.Directory()

	for i := 0; i < p.Len()-1; i++ {
		obj, err := dir.Get(vfs.NewPath(p.At(i)))
		if err != nil {
			return nil, err
		}

		sub, ok := obj.(*vfs.Directory)
		if !ok {
			return nil, vfs.ErrElementKindInvalid(p, "expected directory")
		}

		dir = sub
	}

	return dir, nil
}

func cmdMkdir(root *vfs.Root, path string) error {
	p := vfs.NewPath(path)
	if p.Empty() {
		return vfs.ErrInvalidPath(p, nil)
	}

	parent, err := navigateToParent(root, p)
	if err != nil {
		return err
	}

	_, err = parent.CreateDirectory(p.At(p.Len() - 1))

	return err
}

func cmdRm(root *vfs.Root, path string) error {
	obj, err := root.Get(path)
	if err != nil {
		return err
	}

	return obj.Remove()
}

func cmdSize(root *vfs.Root, path string, out io.Writer) error {
	obj, err := root.Get(path)
	if err != nil {
		return err
	}

	f, ok := obj.(*vfs.File)
	if !ok {
		return fmt.Errorf("%s is a directory", path)
	}

	size, err := f.Size()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, size)

	return nil
}
