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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/dyn"
	uref "dirpx.dev/meta/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("meta(registry): nil reflect.Type provided")
	// ErrNilDescriptor is returned when Register is given a nil descriptor.
	ErrNilDescriptor = errors.New("meta(registry): nil descriptor provided")
	// ErrConflictingRegistration indicates an attempt to register a second,
	// different descriptor for a type.
	ErrConflictingRegistration = errors.New("meta(registry): conflicting descriptor registration")
	// ErrNoName is returned when the resolver cannot name a type.
	ErrNoName = errors.New("meta(registry): resolver produced no name")
)

// New constructs a Registry that builds descriptors according to cfg and
// names types and members with res.
func New(cfg apis.Config, res apis.Resolver) apis.Registry {
	return &registry{
		cfg: cfg,
		res: res,
		log: config.Logger(cfg).Named("registry"),
	}
}

// registry is a construct-once-per-type Registry backed by sync.Map.
type registry struct {
	// cfg is the configuration used for member enumeration.
	cfg apis.Config
	// res names types and members.
	res apis.Resolver
	// log receives build diagnostics.
	log *zap.Logger
	// m maps reflect.Type to *entry.
	m sync.Map
	// count tracks the number of built descriptors.
	count atomic.Int64
}

// entry is one memoized slot. once guards the build; d and err are
// published by it.
type entry struct {
	once sync.Once
	d    atomic.Pointer[dyn.TypeDescriptor]
	err  error
}

// Of returns the descriptor of t, building it on first request.
func (r *registry) Of(t reflect.Type) (dyn.Type, error) {
	if t == nil {
		return dyn.Type{}, ErrNilType
	}

	// Fast read path: already built.
	if v, ok := r.m.Load(t); ok {
		e := v.(*entry)
		if d := e.d.Load(); d != nil {
			r.observeLookup(t, true)
			return dyn.NewType(d), nil
		}
	}
	r.observeLookup(t, false)

	v, _ := r.m.LoadOrStore(t, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		d, err := r.build(t)
		if err != nil {
			e.err = err
			return
		}
		e.d.Store(d)
	})
	if e.err != nil {
		return dyn.Type{}, e.err
	}
	return dyn.NewType(e.d.Load()), nil
}

// Lookup returns the descriptor of t if it has already been built.
func (r *registry) Lookup(t reflect.Type) (dyn.Type, bool) {
	if t == nil {
		return dyn.Type{}, false
	}
	v, ok := r.m.Load(t)
	if !ok {
		return dyn.Type{}, false
	}
	d := v.(*entry).d.Load()
	if d == nil {
		return dyn.Type{}, false
	}
	return dyn.NewType(d), true
}

// Register adopts d as the descriptor of t.
// It is idempotent for the same descriptor.
func (r *registry) Register(t reflect.Type, d *dyn.TypeDescriptor) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if d == nil {
		return ErrNilDescriptor
	}

	v, _ := r.m.LoadOrStore(t, &entry{})
	e := v.(*entry)
	adopted := false
	e.once.Do(func() {
		e.d.Store(d)
		adopted = true
	})
	if adopted {
		r.count.Add(1)
		return nil
	}
	if e.d.Load() == d {
		return nil // idempotent re-registration
	}
	return fmt.Errorf("%w: %s", ErrConflictingRegistration, t)
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		if d := value.(*entry).d.Load(); d != nil {
			entries = append(entries, apis.Entry{
				Type:       key.(reflect.Type),
				Descriptor: d,
			})
		}
		return true
	})
	return entries
}

// Count returns the number of built descriptors.
func (r *registry) Count() int {
	return int(r.count.Load())
}

// build enumerates t's members and resolves every name and nested type.
// Nested types go through Of, so they are memoized as well; Go forbids
// value recursion, so this never re-enters the slot being built.
func (r *registry) build(t reflect.Type) (*dyn.TypeDescriptor, error) {
	start := time.Now()

	members, err := uref.Members(t, r.cfg)
	if err != nil {
		r.fail(t, err)
		return nil, err
	}

	name := r.res.ResolveType(t, r.cfg)
	if name.IsZero() {
		err := fmt.Errorf("%w: %s", ErrNoName, t)
		r.fail(t, err)
		return nil, err
	}

	specs := make([]dyn.FieldSpec, len(members))
	for i, m := range members {
		nested, err := r.Of(m.Type)
		if err != nil {
			err = fmt.Errorf("%s: member %d: %w", t, i, err)
			r.fail(t, err)
			return nil, err
		}
		fname := r.res.Resolve(m.Entity, r.cfg)
		if fname.IsZero() {
			err := fmt.Errorf("%w: %s member %d", ErrNoName, t, i)
			r.fail(t, err)
			return nil, err
		}
		specs[i] = dyn.FieldSpec{
			Name:     fname,
			Type:     nested.Descriptor(),
			Offset:   m.Offset,
			Size:     m.Size,
			BitField: m.BitField,
		}
	}

	d := dyn.NewTypeDescriptor(name, t, specs)
	r.count.Add(1)

	took := time.Since(start)
	r.log.Debug("descriptor built",
		zap.Stringer("type", t),
		zap.String("name", name.String()),
		zap.Int("fields", len(specs)),
		zap.Duration("took", took),
	)
	if o := r.cfg.Observer; o != nil {
		o.DescriptorBuilt(t, len(specs), took)
	}
	return d, nil
}

func (r *registry) fail(t reflect.Type, err error) {
	r.log.Warn("descriptor build failed", zap.Stringer("type", t), zap.Error(err))
	if o := r.cfg.Observer; o != nil {
		o.DescriptorFailed(t, err)
	}
}

func (r *registry) observeLookup(t reflect.Type, hit bool) {
	if o := r.cfg.Observer; o != nil {
		o.Lookup(t, hit)
	}
}
