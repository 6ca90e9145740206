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

package meta

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/builder"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/dyn"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.rebuild(&state{})
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("meta: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("meta: builder returned nil resolver")
)

type (
	// Type is a read-only view over a memoized type descriptor.
	Type = dyn.Type
	// Object is a read-only view over one data member.
	Object = dyn.Object
	// Value is a type-erased handle over a live object or member.
	Value = dyn.Value
)

// Reflect returns the descriptor of T from the global registry, building it
// on first use. Every call for the same T returns an equal Type.
// It panics if the descriptor cannot be built (e.g. a malformed bits tag),
// which is a defect in the declaration of T.
func Reflect[T any]() Type {
	t, err := TypeOf(reflect.TypeFor[T]())
	if err != nil {
		panic(err)
	}
	return t
}

// TypeOf returns the descriptor of t from the global registry.
func TypeOf(t reflect.Type) (Type, error) {
	return st.Load().reg.Of(t)
}

// Of binds obj to the descriptor of T.
func Of[T any](obj *T) Value {
	v, _ := dyn.Bind(obj, Reflect[T]())
	return v
}

// Bind binds obj to t. It fails with dyn.ErrTypeMismatch if t describes
// another type.
func Bind[T any](obj *T, t Type) (Value, error) {
	return dyn.Bind(obj, t)
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced. A non-nil reg or res is pinned;
// a nil one is rebuilt and unpinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	update(func(n *state) bool {
		if cfg != nil {
			n.cfg = *cfg
		}
		if bld != nil {
			n.bld = bld
		}
		n.ext = ext
		n.reg, n.preg = reg, reg != nil
		n.res, n.pres = res, res != nil
		return true
	})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the unpinned
// layers. Descriptors already built keep their identity; only types first
// requested afterwards are built under cfg.
func SetConfig(cfg apis.Config) {
	update(func(n *state) bool {
		n.cfg = cfg
		return true
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(n *state) bool {
		n.reg, n.preg = reg, true
		return false
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver. An unpinned registry is
// rebuilt so that types built from now on are named by res.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(n *state) bool {
		n.res, n.pres = res, true
		return true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(n *state) bool {
		n.bld = b
		return true
	})
}

// SetExt replaces the extension value and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	update(func(n *state) bool {
		n.ext = ext
		return true
	})
}

// ExtAs returns the global extension value as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops automatic rebuilds of the global registry.
func PinRegistry() {
	update(func(n *state) bool {
		n.preg = true
		return false
	})
}

// UnpinRegistry re-enables automatic rebuilds of the global registry.
func UnpinRegistry() {
	update(func(n *state) bool {
		n.preg = false
		return false
	})
}

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops automatic rebuilds of the global resolver.
func PinResolver() {
	update(func(n *state) bool {
		n.pres = true
		return false
	})
}

// UnpinResolver re-enables automatic rebuilds of the global resolver.
func UnpinResolver() {
	update(func(n *state) bool {
		n.pres = false
		return false
	})
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension value.
	ext any
	// reg is the global registry.
	reg apis.Registry
	// res is the global resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether reg is pinned.
	preg bool
	// pres indicates whether res is pinned.
	pres bool
}

// update copies the current snapshot, lets fn edit the copy, rebuilds the
// unpinned layers if fn asks for it, and publishes the result.
func update(fn func(n *state) bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	n := *old
	if fn(&n) {
		n.rebuild(old)
	}
	st.Store(&n)
}

// rebuild refreshes every unpinned layer of s through its builder. The
// resolver comes first because the registry names types with it; the
// registry migrates descriptors from old.
func (s *state) rebuild(old *state) {
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, old.res, s.ext)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, s.res, old.reg, s.ext)
	}
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
}
