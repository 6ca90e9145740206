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
	"time"
)

// Observer receives registry events, typically to export metrics.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	// DescriptorBuilt is called once per type after its descriptor is built.
	DescriptorBuilt(t reflect.Type, fields int, took time.Duration)
	// DescriptorFailed is called once per type whose descriptor failed to build.
	DescriptorFailed(t reflect.Type, err error)
	// Lookup is called on every Of request; hit reports whether the
	// descriptor was already built.
	Lookup(t reflect.Type, hit bool)
}
