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

// Builder composes Resolver and Registry from a Config.
// Implementations may migrate state from previous instances, or ignore them.
type Builder interface {
	// BuildResolver constructs a Resolver for Config. May reuse state from the previous resolver.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildResolver(cfg Config, res Resolver, ext any) Resolver
	// BuildRegistry constructs a Registry for Config that names entities with res.
	// It should migrate descriptors from the previous registry so that every
	// type keeps its descriptor identity.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildRegistry(cfg Config, res Resolver, reg Registry, ext any) Registry
}
