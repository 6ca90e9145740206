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
	"sync"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/dyn"
)

// NewDisplayStrategy creates an apis.Strategy that reconstructs a display
// string from the type's structure.
func NewDisplayStrategy() apis.Strategy {
	return displayStrategy{}
}

// displayStrategy is the universal fallback for types that lost (or never
// had) an identifier: "[]int", "map[string]pkg.T", "struct { X int }".
type displayStrategy struct{}

// Ensure displayStrategy implements apis.Strategy.
var _ apis.Strategy = displayStrategy{}

// displayCache caches display strings by type.
var displayCache sync.Map // key: reflect.Type, val: string

// TryResolve renders e.Type.
func (displayStrategy) TryResolve(e apis.Entity, _ apis.Config) (dyn.Name, bool) {
	if e.Type == nil {
		return dyn.Name{}, false
	}
	return dyn.Reconstructed(display(e.Type)), true
}

// display returns t.String() with memoization.
func display(t reflect.Type) string {
	if v, ok := displayCache.Load(t); ok {
		return v.(string)
	}
	s := t.String()
	displayCache.Store(t, s)
	return s
}
