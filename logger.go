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
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a *logrus.Entry the way lazydocker's pkg/log.NewLogger
// does: a single configured logger wrapped into an Entry carrying static
// fields, passed down to collaborators instead of reaching for a package
// global. debug selects Trace-level, human-readable output; otherwise the
// logger discards everything below Error.
func NewLogger(debug bool) *logrus.Entry {
	log := logrus.New()

	if debug {
		log.SetLevel(logrus.TraceLevel)
	} else {
		log.SetLevel(logrus.ErrorLevel)
	}

	return log.WithField("component", "vfs")
}

// discardLogger is used by constructors that receive no logger option.
func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log.WithField("component", "vfs")
}
