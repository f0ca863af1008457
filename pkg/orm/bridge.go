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
	"gorm.io/gorm"
)

// CreateBridge insert the model.Bridge
// Return 'ErrBridgeAlreadyExists' if the customer already has a bridge of
// the same name.
func (c *metaOpsClient) CreateBridge(ctx context.Context, bridge *model.Bridge) error {
	if bridge == nil {
		return errors.ErrMetaParamsInvalid.GenWithStackByArgs("input bridge is nil")
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Bridge{}).
			Where("customer_id = ? AND name = ?", bridge.CustomerID, bridge.Name).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return errors.ErrBridgeAlreadyExists.GenWithStackByArgs(bridge.Name)
		}

		return tx.Create(bridge).Error
	})
	if err != nil {
		if errors.Is(err, errors.ErrBridgeAlreadyExists) {
			return err
		}
		return errors.ErrMetaOpFail.Wrap(err)
	}

	return nil
}

// GetBridgeByID query bridge by bridgeID
func (c *metaOpsClient) GetBridgeByID(ctx context.Context, bridgeID string) (*model.Bridge, error) {
	var bridge model.Bridge
	if err := c.db.WithContext(ctx).
		Where("id = ?", bridgeID).
		First(&bridge).Error; err != nil {
		return nil, wrapQueryError(err)
	}

	return &bridge, nil
}

// GetBridgeByIDAndCustomer query bridge by bridgeID, the bridge must be owned
// by customerID
func (c *metaOpsClient) GetBridgeByIDAndCustomer(ctx context.Context, bridgeID string, customerID string) (*model.Bridge, error) {
	var bridge model.Bridge
	if err := c.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", bridgeID, customerID).
		First(&bridge).Error; err != nil {
		return nil, wrapQueryError(err)
	}

	return &bridge, nil
}

// QueryBridgesByCustomer query all bridges of the customer, newest first
func (c *metaOpsClient) QueryBridgesByCustomer(ctx context.Context, customerID string) ([]*model.Bridge, error) {
	var bridges []*model.Bridge
	if err := c.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("submitted_at DESC, id DESC").
		Find(&bridges).Error; err != nil {
		return nil, errors.ErrMetaOpFail.Wrap(err)
	}

	return bridges, nil
}

// wrapQueryError maps gorm.ErrRecordNotFound to ErrMetaEntryNotFound and any
// other failure to ErrMetaOpFail
func wrapQueryError(err error) error {
	if err == gorm.ErrRecordNotFound {
		return errors.ErrMetaEntryNotFound.Wrap(err)
	}
	return errors.ErrMetaOpFail.Wrap(err)
}
