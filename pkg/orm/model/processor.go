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

import "time"

// Processor is a configurable event processing unit attached to a bridge.
// DependencyStatus is the aggregate state of the processor's connectors and is
// maintained by the reconciliation worker, see AggregateDependencyStatus.
type Processor struct {
	Model
	ID               string                `gorm:"column:id;type:varchar(128) not null;uniqueIndex:uidx_processor_id" json:"id"`
	Name             string                `gorm:"column:name;type:varchar(255) not null;uniqueIndex:uidx_processor_bridge_name,priority:2" json:"name"`
	Type             ProcessorType         `gorm:"column:type;type:varchar(16) not null" json:"type"`
	BridgeID         string                `gorm:"column:bridge_id;type:varchar(128) not null;uniqueIndex:uidx_processor_bridge_name,priority:1" json:"bridge_id"`
	Status           ManagedResourceStatus `gorm:"column:status;type:varchar(32) not null;index:idx_processor_shard_status,priority:2" json:"status"`
	DependencyStatus ManagedResourceStatus `gorm:"column:dependency_status;type:varchar(32) not null" json:"dependency_status"`
	SubmittedAt      time.Time             `gorm:"column:submitted_at;not null" json:"submitted_at"`
	PublishedAt      *time.Time            `gorm:"column:published_at" json:"published_at,omitempty"`
	ShardID          string                `gorm:"column:shard_id;type:varchar(128);index:idx_processor_shard_status,priority:1" json:"shard_id"`
	Owner            string                `gorm:"column:owner;type:varchar(128)" json:"owner,omitempty"`
	Definition       Definition            `gorm:"column:definition;type:text" json:"definition"`
}

// TableName implements gorm's Tabler
func (Processor) TableName() string {
	return "processors"
}
