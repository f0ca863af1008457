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

// Bridge is a tenant owned event routing endpoint. A bridge owns processors
// by identifier only.
type Bridge struct {
	Model
	ID             string                `gorm:"column:id;type:varchar(128) not null;uniqueIndex:uidx_bridge_id" json:"id"`
	Name           string                `gorm:"column:name;type:varchar(255) not null;uniqueIndex:uidx_bridge_customer_name,priority:2" json:"name"`
	CustomerID     string                `gorm:"column:customer_id;type:varchar(128) not null;uniqueIndex:uidx_bridge_customer_name,priority:1" json:"customer_id"`
	OrganisationID string                `gorm:"column:organisation_id;type:varchar(128)" json:"organisation_id,omitempty"`
	Owner          string                `gorm:"column:owner;type:varchar(128)" json:"owner,omitempty"`
	Status         ManagedResourceStatus `gorm:"column:status;type:varchar(32) not null" json:"status"`
	SubmittedAt    time.Time             `gorm:"column:submitted_at;not null" json:"submitted_at"`
	PublishedAt    *time.Time            `gorm:"column:published_at" json:"published_at,omitempty"`
	ShardID        string                `gorm:"column:shard_id;type:varchar(128);index:idx_bridge_shard" json:"shard_id"`
}

// TableName implements gorm's Tabler
func (Bridge) TableName() string {
	return "bridges"
}
