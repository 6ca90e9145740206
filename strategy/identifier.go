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

package strategy

import (
	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/dyn"
)

// NewIdentifierStrategy creates an apis.Strategy that uses declared identifiers.
func NewIdentifierStrategy() apis.Strategy {
	return identifierStrategy{}
}

// identifierStrategy returns the declared identifier verbatim: the field
// name of a member, or reflect.Type.Name() of a defined type.
type identifierStrategy struct{}

// Ensure identifierStrategy implements apis.Strategy.
var _ apis.Strategy = identifierStrategy{}

// TryResolve names e by its identifier, if it has one.
func (identifierStrategy) TryResolve(e apis.Entity, _ apis.Config) (dyn.Name, bool) {
	if !e.HasIdent() {
		return dyn.Name{}, false
	}
	return dyn.Named(e.Ident), true
}
