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
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

var (
	// ErrNullAccess is returned when reading or writing through an empty Value.
	ErrNullAccess = errors.New("meta(dyn): access through an empty value")
	// ErrUnsupportedBitFieldType is returned when a bit member is read or
	// written as a non-scalar type, or asked for its address.
	ErrUnsupportedBitFieldType = errors.New("meta(dyn): unsupported type for a bit-field")
	// ErrTypeMismatch is returned by the checked operations when the requested
	// type is not the bound type.
	ErrTypeMismatch = errors.New("meta(dyn): type mismatch")
)

// Status is the storage state of a Value. It is fixed at construction.
type Status uint8

const (
	// StatusEmpty is the state of Null.
	StatusEmpty Status = iota
	// StatusDirect is addressable storage.
	StatusDirect
	// StatusBitField is a bit member reached through its proxy.
	StatusBitField
)

// String returns a short name for s.
func (s Status) String() string {
	switch s {
	case StatusDirect:
		return "direct"
	case StatusBitField:
		return "bitfield"
	default:
		return "empty"
	}
}

// Value is a type-erased, non-owning handle over a live object or one of
// its members.
type Value struct {
	ptr    unsafe.Pointer
	typ    *TypeDescriptor
	status Status
	proxy  BitFieldProxy
}

// Null is the canonical empty Value.
var Null = Value{}

// Bind returns a direct Value over obj described by t.
// A nil obj or a null t yields Null.
func Bind[T any](obj *T, t Type) (Value, error) {
	if obj == nil || t.IsNull() {
		return Null, nil
	}
	if want := reflect.TypeFor[T](); t.d.rtype != nil && t.d.rtype != want {
		return Null, fmt.Errorf("%w: cannot bind %s to %s", ErrTypeMismatch, want, t.d.rtype)
	}
	return Value{ptr: unsafe.Pointer(obj), typ: t.d, status: StatusDirect}, nil
}

// BindPointer returns a direct Value over the object at p, trusting the
// caller that p points to an instance of t.
func BindPointer(p unsafe.Pointer, t Type) Value {
	if p == nil || t.IsNull() {
		return Null
	}
	return Value{ptr: p, typ: t.d, status: StatusDirect}
}

// Field returns a Value over the first member of v's type named name,
// or Null when there is no such member.
func (v Value) Field(name string) Value {
	if v.status == StatusEmpty {
		return Null
	}
	f, ok := v.typ.lookup(name)
	if !ok {
		return Null
	}
	return f.accessor(v.ptr)
}

// FieldAt returns a Value over the i-th member of v's type, or Null when i
// is out of range.
func (v Value) FieldAt(i int) Value {
	if v.status == StatusEmpty || i < 0 || i >= len(v.typ.fields) {
		return Null
	}
	return v.typ.fields[i].accessor(v.ptr)
}

// Path follows Field through each name in turn.
func (v Value) Path(names ...string) Value {
	for _, name := range names {
		v = v.Field(name)
	}
	return v
}

// Type returns the bound type; the null Type for Null.
func (v Value) Type() Type { return Type{d: v.typ} }

// Status returns v's storage state.
func (v Value) Status() Status { return v.status }

// IsEmpty reports whether v is empty.
func (v Value) IsEmpty() bool { return v.status == StatusEmpty }

// IsBitField reports whether v is a bit member.
func (v Value) IsBitField() bool { return v.status == StatusBitField }

// Pointer returns the raw bound pointer: the member's address for direct
// values, the owning object's address for bit members.
func (v Value) Pointer() unsafe.Pointer { return v.ptr }

// As reads v as a T. Direct values must be bound to exactly T;
// bit members accept any scalar T.
func As[T any](v Value) (T, error) {
	var zero T
	switch v.status {
	case StatusDirect:
		if err := v.check(reflect.TypeFor[T]()); err != nil {
			return zero, err
		}
		return *(*T)(v.ptr), nil
	case StatusBitField:
		return loadBits[T](v)
	default:
		return zero, ErrNullAccess
	}
}

// UncheckedAs reads v as a T without verifying that T is the bound type.
// Reading a direct value as the wrong T is undefined.
func UncheckedAs[T any](v Value) (T, error) {
	var zero T
	switch v.status {
	case StatusDirect:
		return *(*T)(v.ptr), nil
	case StatusBitField:
		return loadBits[T](v)
	default:
		return zero, ErrNullAccess
	}
}

// Ref returns a pointer to v's storage. Bit members have none.
func Ref[T any](v Value) (*T, error) {
	switch v.status {
	case StatusDirect:
		if err := v.check(reflect.TypeFor[T]()); err != nil {
			return nil, err
		}
		return (*T)(v.ptr), nil
	case StatusBitField:
		return nil, fmt.Errorf("%w: bit member has no address", ErrUnsupportedBitFieldType)
	default:
		return nil, ErrNullAccess
	}
}

// UncheckedRef is Ref without the type check.
func UncheckedRef[T any](v Value) (*T, error) {
	switch v.status {
	case StatusDirect:
		return (*T)(v.ptr), nil
	case StatusBitField:
		return nil, fmt.Errorf("%w: bit member has no address", ErrUnsupportedBitFieldType)
	default:
		return nil, ErrNullAccess
	}
}

// Assign writes x into v. The rules mirror As.
func Assign[T any](v Value, x T) error {
	switch v.status {
	case StatusDirect:
		if err := v.check(reflect.TypeFor[T]()); err != nil {
			return err
		}
		*(*T)(v.ptr) = x
		return nil
	case StatusBitField:
		return storeBits(v, x)
	default:
		return ErrNullAccess
	}
}

// UncheckedAssign writes x into v without verifying that T is the bound
// type. Writing a direct value as the wrong T is undefined.
func UncheckedAssign[T any](v Value, x T) error {
	switch v.status {
	case StatusDirect:
		*(*T)(v.ptr) = x
		return nil
	case StatusBitField:
		return storeBits(v, x)
	default:
		return ErrNullAccess
	}
}

func (v Value) check(want reflect.Type) error {
	if have := v.typ.rtype; have != nil && have != want {
		return fmt.Errorf("%w: bound %s, requested %s", ErrTypeMismatch, have, want)
	}
	return nil
}

func loadBits[T any](v Value) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	raw := v.proxy.Get(v.ptr)

	switch rv.Kind() {
	case reflect.Bool:
		rv.SetBool(raw != 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		rv.SetInt(int64(raw))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		rv.SetUint(raw)
	case reflect.Float32, reflect.Float64:
		if v.proxy.Signed {
			rv.SetFloat(float64(int64(raw)))
		} else {
			rv.SetFloat(float64(raw))
		}
	default:
		return out, fmt.Errorf("%w: %s", ErrUnsupportedBitFieldType, rv.Type())
	}
	return out, nil
}

func storeBits[T any](v Value, x T) error {
	rv := reflect.ValueOf(&x).Elem()

	var raw uint64
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			raw = 1
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		raw = uint64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		raw = rv.Uint()
	case reflect.Float32, reflect.Float64:
		if v.proxy.Signed {
			raw = uint64(int64(rv.Float()))
		} else {
			raw = uint64(rv.Float())
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedBitFieldType, rv.Type())
	}
	v.proxy.Set(v.ptr, raw)
	return nil
}
