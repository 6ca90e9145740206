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

// Package dyn holds the dynamic-value model: immutable type and field
// descriptors, the per-field accessors that bind a descriptor to a live
// object, and Value, a type-erased handle that reads and writes a live
// object's members by name.
//
// Descriptors are normally produced by a registry (see package registry)
// and shared read-only by the whole process. A Value never owns the memory
// it points to; it is valid for as long as the object it was bound to.
//
//	t, _ := reg.Of(reflect.TypeFor[Foo]())
//	v, _ := dyn.Bind(&foo, t)
//	_ = dyn.Assign(v.Field("z"), float32(6.28))
//	z, _ := dyn.As[float32](v.Field("z"))
//
// A Value is in exactly one of three states for its whole lifetime: empty,
// direct (ordinary addressable storage) or bit-field (a member packed into
// a storage unit, reachable only through its proxy).
package dyn
