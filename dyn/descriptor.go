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
	"reflect"

	"dirpx.dev/meta/bitfield"
)

// Offset is the position of a data member within its owning struct.
// For bit members it is informational only.
type Offset struct {
	Bytes int64
	Bits  int64
}

// InvalidOffset marks a member without a meaningful position.
var InvalidOffset = Offset{Bytes: -1, Bits: -1}

// Valid reports whether o denotes a position.
func (o Offset) Valid() bool {
	return o.Bytes >= 0 && o.Bits >= 0
}

// TypeDescriptor is the immutable metadata record of one Go type.
// A registry builds exactly one per type and never mutates it afterwards.
type TypeDescriptor struct {
	name   Name
	rtype  reflect.Type
	size   uintptr
	fields []FieldDescriptor
}

// FieldDescriptor describes one direct data member of a TypeDescriptor.
type FieldDescriptor struct {
	name     Name
	typ      *TypeDescriptor
	offset   Offset
	size     uintptr
	index    int
	layout   *bitfield.Layout
	proxy    BitFieldProxy
	accessor Accessor
}

// FieldSpec is the input for one member of NewTypeDescriptor.
type FieldSpec struct {
	// Name is the resolved member name.
	Name Name
	// Type is the member's own descriptor.
	Type *TypeDescriptor
	// Offset is the member's position in the owning struct.
	Offset Offset
	// Size is the member's size in bytes.
	Size uintptr
	// BitField is set for members packed into a storage unit.
	BitField *bitfield.Layout
}

// NewTypeDescriptor builds a descriptor for rt with the given members in
// declaration order, generating an accessor for each member.
func NewTypeDescriptor(name Name, rt reflect.Type, specs []FieldSpec) *TypeDescriptor {
	d := &TypeDescriptor{name: name, rtype: rt}
	if rt != nil {
		d.size = rt.Size()
	}
	if len(specs) == 0 {
		return d
	}

	d.fields = make([]FieldDescriptor, len(specs))
	for i, s := range specs {
		f := &d.fields[i]
		f.name = s.Name
		f.typ = s.Type
		f.offset = s.Offset
		f.size = s.Size
		f.index = i
		if s.BitField != nil {
			l := *s.BitField
			f.layout = &l
			f.proxy = d.proxy(i)
		}
		f.accessor = d.accessor(i)
	}
	return d
}

// Name returns the resolved type name.
func (d *TypeDescriptor) Name() Name { return d.name }

// ReflectType returns the described Go type.
func (d *TypeDescriptor) ReflectType() reflect.Type { return d.rtype }

// Size returns the type's size in bytes.
func (d *TypeDescriptor) Size() uintptr { return d.size }

// NumField returns the number of direct members.
func (d *TypeDescriptor) NumField() int { return len(d.fields) }

// Field returns the i-th member in declaration order.
func (d *TypeDescriptor) Field(i int) *FieldDescriptor { return &d.fields[i] }

// lookup returns the first member named name.
func (d *TypeDescriptor) lookup(name string) (*FieldDescriptor, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.fields {
		if d.fields[i].name.String() == name {
			return &d.fields[i], true
		}
	}
	return nil, false
}

// Name returns the resolved member name.
func (f *FieldDescriptor) Name() Name { return f.name }

// Type returns the member's own descriptor.
func (f *FieldDescriptor) Type() *TypeDescriptor { return f.typ }

// Offset returns the member's position.
func (f *FieldDescriptor) Offset() Offset { return f.offset }

// Size returns the member's size in bytes.
func (f *FieldDescriptor) Size() uintptr { return f.size }

// Index returns the member's declaration index.
func (f *FieldDescriptor) Index() int { return f.index }

// BitField returns the member's packing, if it is a bit member.
func (f *FieldDescriptor) BitField() (bitfield.Layout, bool) {
	if f.layout == nil {
		return bitfield.Layout{}, false
	}
	return *f.layout, true
}

// Accessor returns the member's bound accessor.
func (f *FieldDescriptor) Accessor() Accessor { return f.accessor }
