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

package config

import (
	"go.uber.org/zap"

	"dirpx.dev/meta/apis"
)

const (
	// DefaultTagKey represents the default for TagKey.
	DefaultTagKey = "meta"
	// DefaultBitsTagKey represents the default for BitsTagKey.
	DefaultBitsTagKey = "bits"
	// DefaultIncludeUnexported represents the default for IncludeUnexported.
	// When true, unexported members are described and accessible.
	DefaultIncludeUnexported = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure tag keys are usable.
	if cfg.TagKey == "" {
		cfg.TagKey = DefaultTagKey
	}
	if cfg.BitsTagKey == "" {
		cfg.BitsTagKey = DefaultBitsTagKey
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		TagKey:            DefaultTagKey,
		BitsTagKey:        DefaultBitsTagKey,
		IncludeUnexported: DefaultIncludeUnexported,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithTagKey sets the TagKey option.
// An empty key resets to the default.
func WithTagKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			key = DefaultTagKey
		}
		c.TagKey = key
	}
}

// WithBitsTagKey sets the BitsTagKey option.
// An empty key resets to the default.
func WithBitsTagKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			key = DefaultBitsTagKey
		}
		c.BitsTagKey = key
	}
}

// WithIncludeUnexported sets the IncludeUnexported option.
func WithIncludeUnexported(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeUnexported = include
	}
}

// WithLogger sets the Logger option.
func WithLogger(l *zap.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = l
	}
}

// WithObserver sets the Observer option.
func WithObserver(o apis.Observer) Option {
	return func(c *apis.Config) {
		c.Observer = o
	}
}

// Logger returns cfg.Logger, or a no-op logger when it is nil.
func Logger(cfg apis.Config) *zap.Logger {
	if cfg.Logger == nil {
		return zap.NewNop()
	}
	return cfg.Logger
}
