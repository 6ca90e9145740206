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

package registry_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/bitfield"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/dyn"
	"dirpx.dev/meta/registry"
	"dirpx.dev/meta/resolver"
	"dirpx.dev/meta/strategy"
)

type Inner struct {
	A int32
	B string
}

type Outer struct {
	In    Inner
	Count int
	ptr   *Outer
}

type Packed struct {
	Tag   int8
	flags int32 `bits:"b:8,c:2"`
	Z     float32
}

type Blanks struct {
	_     int
	X     int
	_     struct{ Y int }
	_     [4]byte `meta:"union"`
	Skip  int     `meta:"-"`
	Trail bool
}

type BadBits struct {
	F float64 `bits:"a:3"`
}

type HasBad struct {
	Ok  int
	Bad BadBits
}

func newRegistry(opts ...config.Option) apis.Registry {
	cfg := config.NewConfig(opts...)
	res := resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewIdentifierStrategy(),
		strategy.NewAnonymousStrategy(),
		strategy.NewDisplayStrategy(),
	)
	return registry.New(cfg, res)
}

func mustOf(t *testing.T, reg apis.Registry, typ reflect.Type) dyn.Type {
	t.Helper()
	got, err := reg.Of(typ)
	if err != nil {
		t.Fatalf("Of(%v): unexpected error: %v", typ, err)
	}
	return got
}

func TestOf_IdentityStable(t *testing.T) {
	reg := newRegistry()

	a := mustOf(t, reg, reflect.TypeOf(Outer{}))
	b := mustOf(t, reg, reflect.TypeOf(Outer{}))
	if a != b || !a.Equal(b) || a.Descriptor() != b.Descriptor() {
		t.Fatalf("two requests for Outer returned different descriptors")
	}

	c := mustOf(t, reg, reflect.TypeOf(Inner{}))
	if a == c || a.Equal(c) {
		t.Fatalf("Outer and Inner compare equal")
	}

	// The nested descriptor is the memoized one.
	in, ok := a.Field("In")
	if !ok {
		t.Fatalf("Field(In) not found")
	}
	if in.Type() != c {
		t.Fatalf("nested Inner descriptor is not the memoized Inner descriptor")
	}
}

func TestOf_FieldsInDeclarationOrder(t *testing.T) {
	reg := newRegistry()
	typ := mustOf(t, reg, reflect.TypeOf(Outer{}))

	if typ.Name() != "Outer" {
		t.Fatalf("Name() = %q, want Outer", typ.Name())
	}
	want := []struct {
		name   string
		offset uintptr
		size   uintptr
	}{
		{"In", unsafe.Offsetof(Outer{}.In), unsafe.Sizeof(Inner{})},
		{"Count", unsafe.Offsetof(Outer{}.Count), unsafe.Sizeof(int(0))},
		{"ptr", unsafe.Offsetof(Outer{}.ptr), unsafe.Sizeof(uintptr(0))},
	}
	if typ.NumField() != len(want) {
		t.Fatalf("NumField() = %d, want %d", typ.NumField(), len(want))
	}
	for i, w := range want {
		f, _ := typ.FieldAt(i)
		if f.Name() != w.name || f.Offset() != (dyn.Offset{Bytes: int64(w.offset)}) || f.Size() != w.size {
			t.Fatalf("field %d = (%q,%+v,%d), want (%q,%d,%d)", i, f.Name(), f.Offset(), f.Size(), w.name, w.offset, w.size)
		}
		if f.Index() != i || f.IsBitField() {
			t.Fatalf("field %d: Index=%d IsBitField=%v", i, f.Index(), f.IsBitField())
		}
	}

	// Leaf types have no fields; unnamed types get a reconstructed name.
	p, _ := typ.FieldAt(2)
	if p.Type().NumField() != 0 || p.Type().Name() != "*registry_test.Outer" {
		t.Fatalf("ptr type = (%q, %d fields)", p.Type().Name(), p.Type().NumField())
	}
	if p.Type().NameInfo().Kind() != dyn.NameReconstructed {
		t.Fatalf("ptr type name kind = %v, want reconstructed", p.Type().NameInfo().Kind())
	}
}

func TestOf_BitMembers(t *testing.T) {
	reg := newRegistry()
	typ := mustOf(t, reg, reflect.TypeOf(Packed{}))

	var names []string
	typ.ForEachField(func(o dyn.Object) bool {
		names = append(names, o.Name())
		return true
	})
	if !reflect.DeepEqual(names, []string{"Tag", "b", "c", "Z"}) {
		t.Fatalf("fields = %v, want [Tag b c Z]", names)
	}

	unit := unsafe.Offsetof(Packed{}.flags)
	c, _ := typ.Field("c")
	l, ok := c.BitField()
	if !ok || !c.IsBitField() {
		t.Fatalf("c is not a bit member")
	}
	want := bitfield.Layout{Name: "c", Unit: unit, UnitSize: 4, Shift: 8, Width: 2, Signed: true}
	if l != want {
		t.Fatalf("layout = %+v, want %+v", l, want)
	}
	if c.Offset() != (dyn.Offset{Bytes: int64(unit) + 1, Bits: 0}) {
		t.Fatalf("offset = %+v", c.Offset())
	}
	if c.Type() != mustOf(t, reg, reflect.TypeOf(int32(0))) || c.Size() != 4 {
		t.Fatalf("c type/size = (%v,%d), want (int32,4)", c.Type(), c.Size())
	}
}

func TestOf_AnonymousAndTagOptions(t *testing.T) {
	reg := newRegistry()
	typ := mustOf(t, reg, reflect.TypeOf(Blanks{}))

	var names []string
	for o := range typ.Fields() {
		names = append(names, o.Name())
	}
	want := []string{"(anonymous member)", "X", "(anonymous class)", "(anonymous union)", "Trail"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("fields = %v, want %v", names, want)
	}
}

func TestOf_ExcludeUnexported(t *testing.T) {
	reg := newRegistry(config.WithIncludeUnexported(false))
	typ := mustOf(t, reg, reflect.TypeOf(Packed{}))

	if _, ok := typ.Field("b"); ok {
		t.Fatalf("bit members with unexported names should be omitted")
	}
	if typ.NumField() != 2 {
		t.Fatalf("NumField() = %d, want 2", typ.NumField())
	}
}

func TestOf_ExcludeUnexported_ExportedBitMembers(t *testing.T) {
	type header struct {
		A     int8
		flags uint32 `bits:"B:8,C:2"`
	}
	reg := newRegistry(config.WithIncludeUnexported(false))
	typ := mustOf(t, reg, reflect.TypeOf(header{}))

	var names []string
	for o := range typ.Fields() {
		names = append(names, o.Name())
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("fields = %v, want %v", names, want)
	}

	var h header
	v, err := dyn.Bind(&h, typ)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := dyn.Assign(v.Field("C"), 3); err != nil {
		t.Fatalf("Assign C: %v", err)
	}
	if h.flags != 3<<8 {
		t.Fatalf("flags = %#x, want 0x300", h.flags)
	}
}

func TestOf_Errors(t *testing.T) {
	reg := newRegistry()

	if _, err := reg.Of(nil); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}

	_, err1 := reg.Of(reflect.TypeOf(BadBits{}))
	if !errors.Is(err1, bitfield.ErrBitFieldStorage) {
		t.Fatalf("BadBits: want ErrBitFieldStorage, got %v", err1)
	}
	// The failure is memoized.
	_, err2 := reg.Of(reflect.TypeOf(BadBits{}))
	if err1 != err2 {
		t.Fatalf("second request returned a different error: %v vs %v", err1, err2)
	}

	// A failing nested type fails the owner.
	if _, err := reg.Of(reflect.TypeOf(HasBad{})); !errors.Is(err, bitfield.ErrBitFieldStorage) {
		t.Fatalf("HasBad: want ErrBitFieldStorage, got %v", err)
	}
	if _, ok := reg.Lookup(reflect.TypeOf(HasBad{})); ok {
		t.Fatalf("Lookup(HasBad) should miss")
	}
}

func TestOf_NoName(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), resolver.New())
	if _, err := reg.Of(reflect.TypeOf(Inner{})); !errors.Is(err, registry.ErrNoName) {
		t.Fatalf("want ErrNoName, got %v", err)
	}
}

func TestRegister_AdoptIdempotentConflict(t *testing.T) {
	src := newRegistry()
	dst := newRegistry()

	inner := mustOf(t, src, reflect.TypeOf(Inner{}))
	if err := dst.Register(reflect.TypeOf(Inner{}), inner.Descriptor()); err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}
	if err := dst.Register(reflect.TypeOf(Inner{}), inner.Descriptor()); err != nil {
		t.Fatalf("Register idempotent: unexpected error: %v", err)
	}
	if got := mustOf(t, dst, reflect.TypeOf(Inner{})); got != inner {
		t.Fatalf("Of after Register returned a different descriptor")
	}

	other := dyn.NewTypeDescriptor(dyn.Named("Inner"), reflect.TypeOf(Inner{}), nil)
	if err := dst.Register(reflect.TypeOf(Inner{}), other); !errors.Is(err, registry.ErrConflictingRegistration) {
		t.Fatalf("expected ErrConflictingRegistration, got: %v", err)
	}

	if err := dst.Register(nil, other); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := dst.Register(reflect.TypeOf(0), nil); err != registry.ErrNilDescriptor {
		t.Fatalf("nil descriptor: want ErrNilDescriptor, got %v", err)
	}
}

func TestEntriesCountLookup(t *testing.T) {
	reg := newRegistry()

	if _, ok := reg.Lookup(reflect.TypeOf(Inner{})); ok {
		t.Fatalf("Lookup before Of should miss")
	}
	if _, ok := reg.Lookup(nil); ok {
		t.Fatalf("Lookup(nil) should miss")
	}

	// Inner, int32, string.
	mustOf(t, reg, reflect.TypeOf(Inner{}))
	if reg.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", reg.Count())
	}
	if len(reg.Entries()) != 3 {
		t.Fatalf("Entries len = %d, want 3", len(reg.Entries()))
	}
	if _, ok := reg.Lookup(reflect.TypeOf("")); !ok {
		t.Fatalf("nested string descriptor should be registered")
	}
}

func TestBuild_LogsDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reg := newRegistry(config.WithLogger(zap.New(core)))

	mustOf(t, reg, reflect.TypeOf(Inner{}))
	mustOf(t, reg, reflect.TypeOf(Inner{}))

	built := logs.FilterMessage("descriptor built").FilterField(zap.String("name", "Inner"))
	if built.Len() != 1 {
		t.Fatalf("Inner built %d times, want 1", built.Len())
	}
	entry := built.All()[0]
	if entry.LoggerName != "registry" || entry.ContextMap()["fields"] != int64(2) {
		t.Fatalf("unexpected log entry: %+v", entry)
	}

	_, _ = reg.Of(reflect.TypeOf(BadBits{}))
	if logs.FilterMessage("descriptor build failed").Len() == 0 {
		t.Fatalf("no warning for a failed build")
	}
}

type countingObserver struct {
	mu     sync.Mutex
	built  map[reflect.Type]int
	failed int
	hits   int
	misses int
}

func (o *countingObserver) DescriptorBuilt(t reflect.Type, _ int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.built == nil {
		o.built = map[reflect.Type]int{}
	}
	o.built[t]++
}

func (o *countingObserver) DescriptorFailed(reflect.Type, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed++
}

func (o *countingObserver) Lookup(_ reflect.Type, hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func TestBuild_Observer(t *testing.T) {
	obs := &countingObserver{}
	reg := newRegistry(config.WithObserver(obs))

	mustOf(t, reg, reflect.TypeOf(Inner{}))
	mustOf(t, reg, reflect.TypeOf(Inner{}))
	_, _ = reg.Of(reflect.TypeOf(BadBits{}))

	if obs.built[reflect.TypeOf(Inner{})] != 1 {
		t.Fatalf("Inner built %d times, want 1", obs.built[reflect.TypeOf(Inner{})])
	}
	if obs.hits != 1 {
		t.Fatalf("hits = %d, want 1", obs.hits)
	}
	// Inner, int32, string, BadBits.
	if obs.misses != 4 {
		t.Fatalf("misses = %d, want 4", obs.misses)
	}
	if obs.failed != 1 {
		t.Fatalf("failed = %d, want 1", obs.failed)
	}
}
