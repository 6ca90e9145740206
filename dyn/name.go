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

// NameKind discriminates the variants of Name.
type NameKind uint8

const (
	// NameNone is the zero Name, carried by the null Type.
	NameNone NameKind = iota
	// NameNamed is a declared identifier, used verbatim.
	NameNamed
	// NameAnonymous is a data member declared without an identifier.
	NameAnonymous
	// NameReconstructed is a display string rebuilt from the type's structure.
	NameReconstructed
)

// AnonymousKind selects the placeholder of an anonymous member.
type AnonymousKind uint8

const (
	// AnonymousMember is any anonymous member that is neither a union nor a struct.
	AnonymousMember AnonymousKind = iota
	// AnonymousClass is an anonymous member of struct type.
	AnonymousClass
	// AnonymousUnion is an anonymous member marked as a union.
	AnonymousUnion
)

// String returns the placeholder used as the member's name.
func (k AnonymousKind) String() string {
	switch k {
	case AnonymousUnion:
		return "(anonymous union)"
	case AnonymousClass:
		return "(anonymous class)"
	default:
		return "(anonymous member)"
	}
}

// Name is the resolved name of a type or data member:
// Named(identifier) | Anonymous(kind) | Reconstructed(display string).
type Name struct {
	kind NameKind
	anon AnonymousKind
	text string
}

// Named returns the Name of an entity with a declared identifier.
func Named(ident string) Name {
	return Name{kind: NameNamed, text: ident}
}

// Anonymous returns the Name of a data member without an identifier.
func Anonymous(k AnonymousKind) Name {
	return Name{kind: NameAnonymous, anon: k, text: k.String()}
}

// Reconstructed returns the Name of an entity known only by its structure.
func Reconstructed(display string) Name {
	return Name{kind: NameReconstructed, text: display}
}

// Kind returns the variant.
func (n Name) Kind() NameKind { return n.kind }

// AnonymousKind returns the placeholder kind; meaningful only for NameAnonymous.
func (n Name) AnonymousKind() AnonymousKind { return n.anon }

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool { return n.kind == NameNone }

// String returns the identifier, the placeholder or the display string.
func (n Name) String() string { return n.text }
