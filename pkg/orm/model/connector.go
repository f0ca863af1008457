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

// Connector is a resource provisioned on behalf of a processor. Its status is
// independent from the status of the owning processor.
type Connector struct {
	Model
	ID                  string                `gorm:"column:id;type:varchar(128) not null;uniqueIndex:uidx_connector_id" json:"id"`
	Name                string                `gorm:"column:name;type:varchar(255) not null" json:"name"`
	ProcessorID         string                `gorm:"column:processor_id;type:varchar(128);index:idx_connector_processor" json:"processor_id"`
	ConnectorType       string                `gorm:"column:connector_type;type:varchar(128)" json:"connector_type"`
	ConnectorExternalID string                `gorm:"column:connector_external_id;type:varchar(255)" json:"connector_external_id,omitempty"`
	TopicName           string                `gorm:"column:topic_name;type:varchar(255)" json:"topic_name,omitempty"`
	Status              ManagedResourceStatus `gorm:"column:status;type:varchar(32) not null" json:"status"`
	DesiredStatus       ManagedResourceStatus `gorm:"column:desired_status;type:varchar(32)" json:"desired_status,omitempty"`
	Error               string                `gorm:"column:error;type:text" json:"error,omitempty"`
	SubmittedAt         time.Time             `gorm:"column:submitted_at;not null" json:"submitted_at"`
	PublishedAt         *time.Time            `gorm:"column:published_at" json:"published_at,omitempty"`
}

// TableName implements gorm's Tabler
func (Connector) TableName() string {
	return "connectors"
}
