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

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is the explicit override: if a type implements apis.Namer,
// its TypeName() is the type's name and the chain stops.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryResolve asks a zero value of e.Type for its TypeName().
func (*namerStrategy) TryResolve(e apis.Entity, _ apis.Config) (dyn.Name, bool) {
	// Members are named by their declaration, not by their type.
	if e.Member || e.Type == nil || e.Type.Kind() == reflect.Interface {
		return dyn.Name{}, false
	}
	if !reflect.PointerTo(e.Type).Implements(namerType) {
		return dyn.Name{}, false
	}
	n := reflect.New(e.Type).Interface().(apis.Namer)
	if name := n.TypeName(); name != "" {
		return dyn.Named(name), true
	}
	return dyn.Name{}, false
}

var namerType = reflect.TypeFor[apis.Namer]()
