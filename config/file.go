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
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/meta/apis"
)

// File is the YAML form of the serializable part of apis.Config.
// Absent keys keep their defaults.
//
//	tag_key: meta
//	bits_tag_key: bits
//	include_unexported: false
type File struct {
	TagKey            string `yaml:"tag_key"`
	BitsTagKey        string `yaml:"bits_tag_key"`
	IncludeUnexported *bool  `yaml:"include_unexported"`
}

// Options converts f into options applied on top of the defaults.
func (f File) Options() []Option {
	var opts []Option
	if f.TagKey != "" {
		opts = append(opts, WithTagKey(f.TagKey))
	}
	if f.BitsTagKey != "" {
		opts = append(opts, WithBitsTagKey(f.BitsTagKey))
	}
	if f.IncludeUnexported != nil {
		opts = append(opts, WithIncludeUnexported(*f.IncludeUnexported))
	}
	return opts
}

// Load parses YAML data into an apis.Config. Options in opts are applied
// after the file, so they win.
func Load(data []byte, opts ...Option) (apis.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return apis.Config{}, fmt.Errorf("meta(config): parse: %w", err)
	}
	return NewConfig(append(f.Options(), opts...)...), nil
}

// LoadReader is Load over the contents of r.
func LoadReader(r io.Reader, opts ...Option) (apis.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return apis.Config{}, fmt.Errorf("meta(config): read: %w", err)
	}
	return Load(data, opts...)
}

// LoadFile is Load over the contents of the file at path.
func LoadFile(path string, opts ...Option) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("meta(config): read %s: %w", path, err)
	}
	return Load(data, opts...)
}
