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
	guuid "github.com/google/uuid"
)

// Generator hands out identifiers for bridges, processors and connectors.
type Generator interface {
	NewString() string
}

type randomGenerator struct{}

// NewString implements Generator.NewString
func (g randomGenerator) NewString() string {
	return guuid.NewString()
}

// NewGenerator returns a Generator backed by random (version 4) uuids.
func NewGenerator() Generator {
	return randomGenerator{}
}
