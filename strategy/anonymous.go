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
	"reflect"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/dyn"
)

// NewAnonymousStrategy creates an apis.Strategy naming anonymous members.
func NewAnonymousStrategy() apis.Strategy {
	return anonymousStrategy{}
}

// anonymousStrategy gives data members without an identifier a placeholder
// chosen by the member's own type category.
type anonymousStrategy struct{}

// Ensure anonymousStrategy implements apis.Strategy.
var _ apis.Strategy = anonymousStrategy{}

// TryResolve handles members without an identifier only.
func (anonymousStrategy) TryResolve(e apis.Entity, _ apis.Config) (dyn.Name, bool) {
	if !e.Member || e.HasIdent() {
		return dyn.Name{}, false
	}
	switch {
	case e.Union:
		return dyn.Anonymous(dyn.AnonymousUnion), true
	case e.Type != nil && e.Type.Kind() == reflect.Struct:
		return dyn.Anonymous(dyn.AnonymousClass), true
	default:
		return dyn.Anonymous(dyn.AnonymousMember), true
	}
}
