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

package model

import (
	"strings"

	"github.com/smartevents/fleet-manager/pkg/errors"
)

// ManagedResourceStatus is the lifecycle status shared by bridges, processors
// and connectors.
type ManagedResourceStatus string

// All managed resource statuses.
// The provisioning path is accepted -> preparing -> provisioning -> ready and
// the teardown path is deprovision -> deleting -> deleted.
const (
	StatusAccepted     ManagedResourceStatus = "accepted"
	StatusPreparing    ManagedResourceStatus = "preparing"
	StatusProvisioning ManagedResourceStatus = "provisioning"
	StatusReady        ManagedResourceStatus = "ready"
	StatusDeprovision  ManagedResourceStatus = "deprovision"
	StatusDeleting     ManagedResourceStatus = "deleting"
	StatusDeleted      ManagedResourceStatus = "deleted"
	StatusFailed       ManagedResourceStatus = "failed"
)

var allStatuses = []ManagedResourceStatus{
	StatusAccepted,
	StatusPreparing,
	StatusProvisioning,
	StatusReady,
	StatusDeprovision,
	StatusDeleting,
	StatusDeleted,
	StatusFailed,
}

// String implements fmt.Stringer
func (s ManagedResourceStatus) String() string {
	return string(s)
}

// Valid returns whether s is a known status.
func (s ManagedResourceStatus) Valid() bool {
	for _, st := range allStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// ParseManagedResourceStatus parses a status from its case-insensitive name.
func ParseManagedResourceStatus(s string) (ManagedResourceStatus, error) {
	st := ManagedResourceStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", errors.ErrInvalidArgument.GenWithStackByArgs("unknown status " + s)
	}
	return st, nil
}

// ProcessorType is the type of a processor.
type ProcessorType string

// processor types
const (
	ProcessorTypeSource ProcessorType = "source"
	ProcessorTypeSink   ProcessorType = "sink"
)

// String implements fmt.Stringer
func (t ProcessorType) String() string {
	return string(t)
}

// ParseProcessorType parses a processor type from its case-insensitive name.
func ParseProcessorType(s string) (ProcessorType, error) {
	switch tp := ProcessorType(strings.ToLower(strings.TrimSpace(s))); tp {
	case ProcessorTypeSource, ProcessorTypeSink:
		return tp, nil
	default:
		return "", errors.ErrInvalidArgument.GenWithStackByArgs("unknown processor type " + s)
	}
}
