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
	"unsafe"

	"dirpx.dev/meta/bitfield"
)

// Object is a read-only view over a FieldDescriptor. The zero Object is
// the null member returned by failed lookups; it has no name, the null
// Type and an invalid offset, and binds to Null.
type Object struct {
	f *FieldDescriptor
}

// IsNull reports whether o is the null member.
func (o Object) IsNull() bool { return o.f == nil }

// Name returns the member's name or placeholder.
func (o Object) Name() string {
	if o.f == nil {
		return ""
	}
	return o.f.name.String()
}

// NameInfo returns the resolved name variant.
func (o Object) NameInfo() Name {
	if o.f == nil {
		return Name{}
	}
	return o.f.name
}

// Type returns the member's own type.
func (o Object) Type() Type {
	if o.f == nil {
		return Type{}
	}
	return Type{d: o.f.typ}
}

// Offset returns the member's position.
func (o Object) Offset() Offset {
	if o.f == nil {
		return InvalidOffset
	}
	return o.f.offset
}

// Size returns the member's size in bytes.
func (o Object) Size() uintptr {
	if o.f == nil {
		return 0
	}
	return o.f.size
}

// Index returns the member's declaration index, -1 for the null member.
func (o Object) Index() int {
	if o.f == nil {
		return -1
	}
	return o.f.index
}

// IsBitField reports whether the member is packed into a storage unit.
func (o Object) IsBitField() bool { return o.f != nil && o.f.layout != nil }

// BitField returns the member's packing, if it is a bit member.
func (o Object) BitField() (bitfield.Layout, bool) {
	if o.f == nil {
		return bitfield.Layout{}, false
	}
	return o.f.BitField()
}

// Accessor returns the member's accessor; nil for the null member.
func (o Object) Accessor() Accessor {
	if o.f == nil {
		return nil
	}
	return o.f.accessor
}

// Bind applies the accessor to the owning object at obj.
func (o Object) Bind(obj unsafe.Pointer) Value {
	if o.f == nil {
		return Null
	}
	return o.f.accessor(obj)
}
