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

// Package reflect enumerates the direct data members of Go types.
//
// It is the only place that reads struct layout from the standard reflect
// package: declaration order, offsets and sizes come from reflect.StructField,
// and bit members come from the storage unit's bits tag (see package
// bitfield). Everything above this package works from the Member list.
package reflect

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/bitfield"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/dyn"
)

// ErrReflectNilType is returned when a nil reflect.Type is provided.
var ErrReflectNilType = errors.New("meta(reflect): nil reflect.Type provided")

// Member is one direct data member, in the order it was declared.
type Member struct {
	// Entity is the naming input for the member.
	Entity apis.Entity
	// Type is the member's own type; the storage unit's type for bit members.
	Type reflect.Type
	// Offset is the member's position in the owning struct.
	Offset dyn.Offset
	// Size is the member's size; the storage unit's size for bit members.
	Size uintptr
	// BitField is set for bit members.
	BitField *bitfield.Layout
}

// Members returns the direct data members of t in declaration order.
// Types other than structs have none.
//
// Members honours these struct tags (keys from cfg):
//   - `meta:"-"` omits the member;
//   - `meta:"union"` marks a blank member as an anonymous union;
//   - `bits:"a:3,b:5"` replaces an integer storage unit by its bit members.
func Members(t reflect.Type, cfg apis.Config) ([]Member, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if t.Kind() != reflect.Struct {
		return nil, nil
	}

	tagKey := cfg.TagKey
	if tagKey == "" {
		tagKey = config.DefaultTagKey
	}
	bitsKey := cfg.BitsTagKey
	if bitsKey == "" {
		bitsKey = config.DefaultBitsTagKey
	}

	out := make([]Member, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		opts := parseOptions(f.Tag.Get(tagKey))
		if opts.skip {
			continue
		}

		if tag, ok := f.Tag.Lookup(bitsKey); ok {
			layouts, err := bitfield.Parse(tag, f)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t, f.Name, err)
			}
			for j := range layouts {
				l := layouts[j]
				// Bit members are filtered by their own names, not the unit's.
				if !visible(l.Name, cfg) {
					continue
				}
				out = append(out, Member{
					Entity: apis.Entity{Type: f.Type, Ident: l.Name, Member: true},
					Type:   f.Type,
					Offset: dyn.Offset{
						Bytes: int64(f.Offset) + int64(l.Shift/8),
						Bits:  int64(l.Shift % 8),
					},
					Size:     f.Type.Size(),
					BitField: &l,
				})
			}
			continue
		}

		if !visible(f.Name, cfg) {
			continue
		}
		out = append(out, Member{
			Entity: apis.Entity{Type: f.Type, Ident: f.Name, Member: true, Union: opts.union},
			Type:   f.Type,
			Offset: dyn.Offset{Bytes: int64(f.Offset)},
			Size:   f.Type.Size(),
		})
	}
	return out, nil
}

// visible reports whether a member declared as name is described under cfg.
// Blank members are always described.
func visible(name string, cfg apis.Config) bool {
	return cfg.IncludeUnexported || name == bitfield.Blank || token.IsExported(name)
}

type options struct {
	skip  bool
	union bool
}

func parseOptions(tag string) options {
	var o options
	for _, opt := range strings.Split(tag, ",") {
		switch strings.TrimSpace(opt) {
		case "-":
			o.skip = true
		case "union":
			o.union = true
		}
	}
	return o
}
