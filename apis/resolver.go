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

package apis

import (
	"reflect"

	"dirpx.dev/meta/dyn"
)

// Entity is something that needs a name: a type, or a data member of a
// struct type.
type Entity struct {
	// Type is the entity's own type.
	Type reflect.Type
	// Ident is the declared identifier; "" or "_" means there is none.
	Ident string
	// Member reports whether the entity is a data member.
	Member bool
	// Union reports whether a member is tagged as an anonymous union.
	Union bool
}

// HasIdent reports whether e carries a declared identifier.
func (e Entity) HasIdent() bool {
	return e.Ident != "" && e.Ident != "_"
}

// Resolver coordinates strategies to resolve entity names.
// Typical chain: Namer -> Identifier -> Anonymous -> Display.
type Resolver interface {
	// Resolve returns the name of e. The zero Name means no strategy applied.
	Resolve(e Entity, cfg Config) dyn.Name

	// ResolveType returns the name of the type t.
	ResolveType(t reflect.Type, cfg Config) dyn.Name
}
