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

// AggregateDependencyStatus folds the statuses of a processor's connectors
// into the value stored in Processor.DependencyStatus.
//
// A processor without connectors has nothing to wait for and is ready. Any
// failed connector fails the processor. Otherwise the processor is ready when
// every connector is ready, deleted when every connector is deleted and
// deleting when some connector is on the teardown path. Everything else is
// still provisioning.
//
// The query engine and the scheduling selector never call this function, they
// read the persisted column.
func AggregateDependencyStatus(statuses []ManagedResourceStatus) ManagedResourceStatus {
	if len(statuses) == 0 {
		return StatusReady
	}

	var ready, deleted, tearingDown int
	for _, st := range statuses {
		switch st {
		case StatusFailed:
			return StatusFailed
		case StatusReady:
			ready++
		case StatusDeleted:
			deleted++
		case StatusDeprovision, StatusDeleting:
			tearingDown++
		}
	}

	switch {
	case ready == len(statuses):
		return StatusReady
	case deleted == len(statuses):
		return StatusDeleted
	case tearingDown > 0:
		return StatusDeleting
	default:
		return StatusProvisioning
	}
}

// ProcessorDependencyStatus is AggregateDependencyStatus for a processor in
// processorStatus. A processor on the teardown path with no connector left
// has nothing to wait for, its dependencies are deleted.
func ProcessorDependencyStatus(
	processorStatus ManagedResourceStatus, connectorStatuses []ManagedResourceStatus,
) ManagedResourceStatus {
	if len(connectorStatuses) == 0 {
		switch processorStatus {
		case StatusDeprovision, StatusDeleting, StatusDeleted:
			return StatusDeleted
		}
	}
	return AggregateDependencyStatus(connectorStatuses)
}
