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

import "unsafe"

// Accessor turns a pointer to a live owning object into a Value over one of
// its members. A nil owner yields Null.
type Accessor func(obj unsafe.Pointer) Value

// BitFieldProxy reads and writes one bit member through a pointer to its
// owning object. Get returns the member sign- or zero-extended to 64 bits;
// Set stores the low bits of its argument.
type BitFieldProxy struct {
	Get    func(obj unsafe.Pointer) uint64
	Set    func(obj unsafe.Pointer, v uint64)
	Signed bool
}

// Valid reports whether both halves of the proxy are present.
func (p BitFieldProxy) Valid() bool {
	return p.Get != nil && p.Set != nil
}

// accessor returns the accessor of the i-th member of d.
func (d *TypeDescriptor) accessor(i int) Accessor {
	return func(obj unsafe.Pointer) Value {
		if obj == nil {
			return Null
		}
		f := &d.fields[i]
		if f.layout == nil {
			return Value{ptr: unsafe.Add(obj, f.offset.Bytes), typ: f.typ, status: StatusDirect}
		}
		// Bit members have no address; the value keeps the owner.
		return Value{ptr: obj, typ: f.typ, status: StatusBitField, proxy: f.proxy}
	}
}

// proxy returns a proxy that looks the i-th member's layout up in d on
// every call.
func (d *TypeDescriptor) proxy(i int) BitFieldProxy {
	return BitFieldProxy{
		Get: func(obj unsafe.Pointer) uint64 {
			return d.fields[i].layout.Load(obj)
		},
		Set: func(obj unsafe.Pointer, v uint64) {
			d.fields[i].layout.Store(obj, v)
		},
		Signed: d.fields[i].layout.Signed,
	}
}
