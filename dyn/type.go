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

package dyn

import (
	"iter"
	"reflect"
)

// Type is a read-only view over a TypeDescriptor. The zero Type is the null
// type carried by Null.
//
// Two Types are equal, with == or Equal, exactly when they view the same
// descriptor.
type Type struct {
	d *TypeDescriptor
}

// NewType returns the view over d.
func NewType(d *TypeDescriptor) Type { return Type{d: d} }

// IsNull reports whether t is the null type.
func (t Type) IsNull() bool { return t.d == nil }

// Descriptor returns the underlying descriptor, nil for the null type.
func (t Type) Descriptor() *TypeDescriptor { return t.d }

// Name returns the type's name, "" for the null type.
func (t Type) Name() string {
	if t.d == nil {
		return ""
	}
	return t.d.name.String()
}

// NameInfo returns the resolved name variant.
func (t Type) NameInfo() Name {
	if t.d == nil {
		return Name{}
	}
	return t.d.name
}

// ReflectType returns the described Go type, nil for the null type.
func (t Type) ReflectType() reflect.Type {
	if t.d == nil {
		return nil
	}
	return t.d.rtype
}

// Size returns the type's size in bytes.
func (t Type) Size() uintptr {
	if t.d == nil {
		return 0
	}
	return t.d.size
}

// NumField returns the number of direct members.
func (t Type) NumField() int {
	if t.d == nil {
		return 0
	}
	return len(t.d.fields)
}

// FieldAt returns the i-th member in declaration order.
func (t Type) FieldAt(i int) (Object, bool) {
	if i < 0 || i >= t.NumField() {
		return Object{}, false
	}
	return Object{f: &t.d.fields[i]}, true
}

// ForEachField calls fn for each member in declaration order. It stops at
// the first member for which fn returns false and then reports false.
func (t Type) ForEachField(fn func(Object) bool) bool {
	for i := 0; i < t.NumField(); i++ {
		if !fn(Object{f: &t.d.fields[i]}) {
			return false
		}
	}
	return true
}

// Fields returns the members in declaration order. The sequence is lazy and
// may be ranged over any number of times.
func (t Type) Fields() iter.Seq[Object] {
	return func(yield func(Object) bool) {
		t.ForEachField(yield)
	}
}

// Field returns the first member named name.
func (t Type) Field(name string) (Object, bool) {
	f, ok := t.d.lookup(name)
	if !ok {
		return Object{}, false
	}
	return Object{f: f}, true
}

// Equal reports whether t and o view the same descriptor.
func (t Type) Equal(o Type) bool { return t.d == o.d }

// String returns the type's name, or "<null>".
func (t Type) String() string {
	if t.d == nil {
		return "<null>"
	}
	return t.d.name.String()
}
