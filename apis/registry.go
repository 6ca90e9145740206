/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import (
	"reflect"

	"dirpx.dev/meta/dyn"
)

// Registry memoizes one TypeDescriptor per Go type.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Of returns the descriptor of t, building it on first request.
	// Every call for the same t returns the same descriptor, or the same error.
	Of(t reflect.Type) (dyn.Type, error)
	// Lookup returns the descriptor of t if it has already been built.
	Lookup(t reflect.Type) (dyn.Type, bool)
	// Register adopts a prebuilt descriptor for t. It is idempotent for the
	// same descriptor and fails if t already has a different one.
	Register(t reflect.Type, d *dyn.TypeDescriptor) error
	// Entries returns a snapshot for diagnostics (order is unspecified).
	Entries() []Entry
	// Count returns the number of built descriptors.
	Count() int
}

// Entry is a single (type, descriptor) association in a Registry snapshot.
type Entry struct {
	// Type is the described reflect.Type.
	Type reflect.Type
	// Descriptor is its memoized descriptor.
	Descriptor *dyn.TypeDescriptor
}
