// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package uuid

import (
	"fmt"

	"go.uber.org/atomic"
)

// SequenceGenerator generates `<prefix>-<n>` identifiers with n starting at 1.
// Tests use it to get stable identifiers in a known order.
type SequenceGenerator struct {
	prefix string
	seq    atomic.Uint64
}

// NewSequenceGenerator creates a SequenceGenerator.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewString implements Generator.NewString
func (g *SequenceGenerator) NewString() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.seq.Inc())
}

// ConstGenerator always returns the same identifier.
type ConstGenerator string

// NewString implements Generator.NewString
func (g ConstGenerator) NewString() string {
	return string(g)
}
