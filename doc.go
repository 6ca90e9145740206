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

// Package meta provides runtime type introspection over Go structs:
// memoized type descriptors, per-member accessors and type-erased value
// handles that read and write members (bit-field members included) of
// live objects through a single API.
//
// # Design
//
// The core of meta is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: rules that control how members are discovered (the struct
//     tag keys, whether unexported members are described), plus the
//     logger and metrics observer used while building descriptors.
//
//   - Registry: the process-wide, construct-once map from reflect.Type to
//     its *dyn.TypeDescriptor. The first request for a type builds its
//     descriptor and every later request returns the same one.
//
//   - Resolver: answers "what is the name of this type or member?". It
//     tries strategies in priority order: apis.Namer, the declared Go
//     identifier, an anonymous placeholder, and finally a name
//     reconstructed from the type's textual form.
//
//   - Builder: a pluggable factory that constructs the Resolver and the
//     Registry for a given Config and optional extension value. A rebuilt
//     Registry adopts every descriptor of the previous one, so a Type
//     obtained before SetConfig stays equal to one obtained after it.
//
// Readers load the current snapshot atomically and never lock. Writers
// take a short build mutex, derive a new snapshot and publish it.
//
// # Usage
//
//	type Header struct {
//		Tag   int8
//		flags uint32 `bits:"b:8,c:2"`
//		Z     float32
//	}
//
//	h := Header{Tag: 1}
//	v := meta.Of(&h)
//	_ = dyn.Assign(v.Field("c"), uint8(2))
//	z, _ := dyn.As[float32](v.Field("Z"))
//
//	t := meta.Reflect[Header]()
//	for m := range t.Fields() {
//		fmt.Println(m.Name(), m.Offset(), m.Size())
//	}
//
// # Pinning
//
// SetRegistry and SetResolver install a layer and pin it: later calls to
// SetConfig, SetBuilder or SetExt leave a pinned layer alone until it is
// unpinned. SetAll replaces everything at once and is mainly useful in
// tests.
//
// # Extension
//
// The snapshot carries an opaque ext value handed to the Builder on every
// rebuild. The default builder accepts an apis.Strategy or a
// []apis.Strategy and runs it before its own naming chain.
package meta
