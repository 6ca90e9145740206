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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/registry"
	"dirpx.dev/meta/resolver"
	"dirpx.dev/meta/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildResolver builds the default naming chain:
// Namer -> Identifier -> Anonymous -> Display.
//
// If ext is an apis.Strategy or a []apis.Strategy, those strategies run
// before the default chain.
func (b *builder) BuildResolver(_ apis.Config, _ apis.Resolver, ext any) apis.Resolver {
	var strats []apis.Strategy
	switch x := ext.(type) {
	case apis.Strategy:
		strats = append(strats, x)
	case []apis.Strategy:
		strats = append(strats, x...)
	}
	strats = append(strats,
		strategy.NewNamerStrategy(),
		strategy.NewIdentifierStrategy(),
		strategy.NewAnonymousStrategy(),
		strategy.NewDisplayStrategy(),
	)
	return resolver.New(strats...)
}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and resolver. If a previous registry is provided, every
// descriptor it built is adopted by the new one, so descriptor identity
// survives the rebuild.
func (b *builder) BuildRegistry(cfg apis.Config, res apis.Resolver, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg, res)
	if preg == nil {
		return nreg
	}
	migrated := 0
	for _, e := range preg.Entries() {
		if err := nreg.Register(e.Type, e.Descriptor); err != nil {
			config.Logger(cfg).Warn("descriptor migration failed",
				zap.Stringer("type", e.Type), zap.Error(err))
			continue
		}
		migrated++
	}
	config.Logger(cfg).Debug("registry rebuilt", zap.Int("migrated", migrated))
	return nreg
}
