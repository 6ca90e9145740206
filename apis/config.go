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

import "go.uber.org/zap"

// Config carries read-only knobs that influence how descriptors are built.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// TagKey is the struct tag key holding member options ("-", "union").
	TagKey string

	// BitsTagKey is the struct tag key declaring the bit members packed into
	// an integer storage unit.
	BitsTagKey string

	// IncludeUnexported controls whether unexported members are described.
	// Bit members are judged by their own names, not by their storage unit's.
	// Descriptors are built with unchecked access, so the default is true.
	IncludeUnexported bool

	// Logger receives build diagnostics. Nil means no logging.
	Logger *zap.Logger

	// Observer receives registry events. Nil means none.
	Observer Observer
}
