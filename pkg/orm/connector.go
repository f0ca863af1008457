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

package orm

import (
	"context"

	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/orm/model"
)

// CreateConnector insert the model.Connector
func (c *metaOpsClient) CreateConnector(ctx context.Context, connector *model.Connector) error {
	if connector == nil {
		return errors.ErrMetaParamsInvalid.GenWithStackByArgs("input connector is nil")
	}

	if err := c.db.WithContext(ctx).
		Create(connector).Error; err != nil {
		return errors.ErrMetaOpFail.Wrap(err)
	}

	return nil
}

// UpdateConnectorStatus sets the status of a connector.
// Return 'ErrMetaEntryNotFound' if the connector does not exist.
func (c *metaOpsClient) UpdateConnectorStatus(ctx context.Context, connectorID string, status model.ManagedResourceStatus) error {
	if !status.Valid() {
		return errors.ErrMetaParamsInvalid.GenWithStackByArgs("unknown connector status " + status.String())
	}

	result := c.db.WithContext(ctx).
		Model(&model.Connector{}).
		Where("id = ?", connectorID).
		Updates(model.KeyValueMap{
			"status": status.String(),
		})
	if result.Error != nil {
		return errors.ErrMetaOpFail.Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrMetaEntryNotFound.GenWithStackByArgs()
	}

	return nil
}

// QueryConnectorsByProcessorID query all connectors of the processor
func (c *metaOpsClient) QueryConnectorsByProcessorID(ctx context.Context, processorID string) ([]*model.Connector, error) {
	var connectors []*model.Connector
	if err := c.db.WithContext(ctx).
		Where("processor_id = ?", processorID).
		Order("submitted_at, id").
		Find(&connectors).Error; err != nil {
		return nil, errors.ErrMetaOpFail.Wrap(err)
	}

	return connectors, nil
}
