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

package dyn_test

import (
	"reflect"
	"testing"

	"dirpx.dev/meta/bitfield"
	"dirpx.dev/meta/dyn"
)

type record struct {
	A     int32
	flags uint16
	B     float64
}

type outer struct {
	Pad int8
	In  record
}

var (
	int32Desc   = scalar[int32]()
	uint16Desc  = scalar[uint16]()
	float64Desc = scalar[float64]()
	int8Desc    = scalar[int8]()
	recordDesc  = newRecordDesc()
	outerDesc   = newOuterDesc()
)

func scalar[T any]() *dyn.TypeDescriptor {
	rt := reflect.TypeFor[T]()
	return dyn.NewTypeDescriptor(dyn.Named(rt.Name()), rt, nil)
}

func offsetOf(rt reflect.Type, name string) dyn.Offset {
	f, _ := rt.FieldByName(name)
	return dyn.Offset{Bytes: int64(f.Offset)}
}

// bits returns the layout of a member packed into record.flags.
func bits(name string, shift, width uint8) *bitfield.Layout {
	rt := reflect.TypeFor[record]()
	f, _ := rt.FieldByName("flags")
	return &bitfield.Layout{
		Name:     name,
		Unit:     f.Offset,
		UnitSize: f.Type.Size(),
		Shift:    shift,
		Width:    width,
	}
}

func bitSpec(name dyn.Name, l *bitfield.Layout) dyn.FieldSpec {
	return dyn.FieldSpec{
		Name:     name,
		Type:     uint16Desc,
		Offset:   dyn.Offset{Bytes: int64(l.Unit) + int64(l.Shift/8), Bits: int64(l.Shift % 8)},
		Size:     l.UnitSize,
		BitField: l,
	}
}

func newRecordDesc() *dyn.TypeDescriptor {
	rt := reflect.TypeFor[record]()
	return dyn.NewTypeDescriptor(dyn.Named("record"), rt, []dyn.FieldSpec{
		{Name: dyn.Named("A"), Type: int32Desc, Offset: offsetOf(rt, "A"), Size: 4},
		bitSpec(dyn.Named("x"), bits("x", 0, 3)),
		bitSpec(dyn.Named("y"), bits("y", 3, 5)),
		bitSpec(dyn.Anonymous(dyn.AnonymousMember), bits(bitfield.Blank, 8, 2)),
		{Name: dyn.Named("B"), Type: float64Desc, Offset: offsetOf(rt, "B"), Size: 8},
	})
}

func newOuterDesc() *dyn.TypeDescriptor {
	rt := reflect.TypeFor[outer]()
	return dyn.NewTypeDescriptor(dyn.Named("outer"), rt, []dyn.FieldSpec{
		{Name: dyn.Named("Pad"), Type: int8Desc, Offset: offsetOf(rt, "Pad"), Size: 1},
		{Name: dyn.Named("In"), Type: recordDesc, Offset: offsetOf(rt, "In"), Size: rt.Field(1).Type.Size()},
	})
}

func bind(t *testing.T, r *record) dyn.Value {
	t.Helper()
	v, err := dyn.Bind(r, dyn.NewType(recordDesc))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	return v
}
