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

package context

import (
	"context"
	"sync"
)

var (
	defaultContext     context.Context
	defaultContextLock sync.RWMutex
)

// SetDefaultContext sets the default context for the command line usage.
func SetDefaultContext(ctx context.Context) {
	defaultContextLock.Lock()
	defer defaultContextLock.Unlock()
	defaultContext = ctx
}

// GetDefaultContext returns the default context for the command line usage.
// It falls back to context.Background when InitCmd has not been called.
func GetDefaultContext() context.Context {
	defaultContextLock.RLock()
	defer defaultContextLock.RUnlock()
	if defaultContext == nil {
		return context.Background()
	}
	return defaultContext
}
