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

package bitfield

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
)

var (
	// ErrBadBitFieldTag is returned when a bits tag cannot be parsed.
	ErrBadBitFieldTag = errors.New("meta(bitfield): malformed bit-field tag")
	// ErrBitFieldStorage is returned when the storage unit is not an integer kind.
	ErrBitFieldStorage = errors.New("meta(bitfield): storage unit must be an integer kind")
	// ErrBitFieldOverflow is returned when the declared members do not fit the storage unit.
	ErrBitFieldOverflow = errors.New("meta(bitfield): members exceed storage unit width")
)

// Blank is the member name of an unnamed bit-field.
const Blank = "_"

// Layout locates one bit member inside its storage unit.
type Layout struct {
	// Name is the declared member name, or Blank.
	Name string
	// Unit is the byte offset of the storage unit within the owning struct.
	Unit uintptr
	// UnitSize is the storage unit size in bytes (1, 2, 4 or 8).
	UnitSize uintptr
	// Shift is the position of the member's lowest bit within the unit.
	Shift uint8
	// Width is the number of bits the member occupies.
	Width uint8
	// Signed reports whether reads sign-extend the member.
	Signed bool
}

// Anonymous reports whether the member was declared without a name.
func (l Layout) Anonymous() bool {
	return l.Name == Blank
}

// Load returns the member's bits from the owning object at obj.
// Signed members are sign-extended to 64 bits; unsigned members are
// zero-extended.
func (l Layout) Load(obj unsafe.Pointer) uint64 {
	p := unsafe.Add(obj, l.Unit)

	var raw uint64
	switch l.UnitSize {
	case 1:
		raw = uint64(extract(*(*uint8)(p), l.Shift, l.Width))
	case 2:
		raw = uint64(extract(*(*uint16)(p), l.Shift, l.Width))
	case 4:
		raw = uint64(extract(*(*uint32)(p), l.Shift, l.Width))
	default:
		raw = extract(*(*uint64)(p), l.Shift, l.Width)
	}

	if l.Signed && l.Width < 64 {
		s := 64 - l.Width
		raw = uint64(int64(raw<<s) >> s)
	}
	return raw
}

// Store writes the low Width bits of v into the member of the owning object
// at obj.
func (l Layout) Store(obj unsafe.Pointer, v uint64) {
	p := unsafe.Add(obj, l.Unit)

	switch l.UnitSize {
	case 1:
		q := (*uint8)(p)
		*q = insert(*q, uint8(v), l.Shift, l.Width)
	case 2:
		q := (*uint16)(p)
		*q = insert(*q, uint16(v), l.Shift, l.Width)
	case 4:
		q := (*uint32)(p)
		*q = insert(*q, uint32(v), l.Shift, l.Width)
	default:
		q := (*uint64)(p)
		*q = insert(*q, v, l.Shift, l.Width)
	}
}

// String renders the layout as "name:width@shift".
func (l Layout) String() string {
	return l.Name + ":" + strconv.Itoa(int(l.Width)) + "@" + strconv.Itoa(int(l.Shift))
}

// Parse decodes a bits tag attached to the storage unit field.
func Parse(tag string, unit reflect.StructField) ([]Layout, error) {
	signed, ok := storageKind(unit.Type)
	if !ok {
		return nil, fmt.Errorf("%w: field %s is %s", ErrBitFieldStorage, unit.Name, unit.Type)
	}
	if strings.TrimSpace(tag) == "" {
		return nil, fmt.Errorf("%w: empty tag on %s", ErrBadBitFieldTag, unit.Name)
	}

	size := unit.Type.Size()
	total := uint64(size) * 8

	var (
		out   []Layout
		shift uint64
	)
	for _, part := range strings.Split(tag, ",") {
		name, w, ok := strings.Cut(strings.TrimSpace(part), ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadBitFieldTag, part)
		}
		width, err := strconv.ParseUint(strings.TrimSpace(w), 10, 8)
		if err != nil || width == 0 || width > 64 {
			return nil, fmt.Errorf("%w: bad width in %q", ErrBadBitFieldTag, part)
		}
		if shift+width > total {
			return nil, fmt.Errorf("%w: %s needs bits %d..%d, %s holds %d",
				ErrBitFieldOverflow, name, shift, shift+width-1, unit.Type, total)
		}
		out = append(out, Layout{
			Name:     name,
			Unit:     unit.Offset,
			UnitSize: size,
			Shift:    uint8(shift),
			Width:    uint8(width),
			Signed:   signed,
		})
		shift += width
	}
	return out, nil
}

// storageKind reports whether t can hold bit members and whether it is signed.
func storageKind(t reflect.Type) (signed bool, ok bool) {
	if t == nil {
		return false, false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return false, true
	default:
		return false, false
	}
}

// mask returns width low-order ones in W.
func mask[W constraints.Unsigned](width uint8) W {
	bits := uint8(unsafe.Sizeof(W(0)) * 8)
	return ^W(0) >> (bits - width)
}

func extract[W constraints.Unsigned](word W, shift, width uint8) W {
	return (word >> shift) & mask[W](width)
}

func insert[W constraints.Unsigned](word, v W, shift, width uint8) W {
	m := mask[W](width) << shift
	return word&^m | (v<<shift)&m
}
