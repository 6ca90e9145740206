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

// Package bitfield implements packed sub-word members for Go structs.
//
// Go has no bit-field declarations, so a struct declares an integer storage
// unit and describes the members packed into it with a struct tag:
//
//	type Foo struct {
//	    A     int8
//	    flags int32 `bits:"b:8,c:2"`
//	    Z     float32
//	}
//
// Members are allocated LSB-first starting at bit 0 of the unit, in tag
// order. Their signedness is the signedness of the unit's kind. A member
// named "_" is an unnamed bit-field that only occupies bits.
//
// Bit members have no address of their own. Layout.Load and Layout.Store
// are the only way to read or write them; both touch exactly the member's
// bits and leave every other bit of the unit unchanged.
package bitfield
