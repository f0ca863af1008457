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

	"gorm.io/gorm"

	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/orm/model"
)

var (
	// connector statuses which block any action on the owning processor
	connectorTransitionStatuses = []string{
		model.StatusProvisioning.String(),
		model.StatusDeleting.String(),
	}

	processorOrderNewestFirst = "processors.submitted_at DESC, processors.id DESC"
	processorOrderOldestFirst = "processors.submitted_at ASC, processors.id ASC"
)

// processorsOfCustomer scopes processors to a bridge owned by the customer.
// A bridge of another customer matches nothing.
func processorsOfCustomer(bridgeID string, customerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Model(&model.Processor{}).
			Joins("JOIN bridges ON bridges.id = processors.bridge_id").
			Where("processors.bridge_id = ? AND bridges.customer_id = ?", bridgeID, customerID)
	}
}

// CreateProcessor insert the model.Processor
// Return 'ErrProcessorAlreadyExists' if the bridge already has a processor of
// the same name.
func (c *metaOpsClient) CreateProcessor(ctx context.Context, processor *model.Processor) error {
	if processor == nil {
		return errors.ErrMetaParamsInvalid.GenWithStackByArgs("input processor is nil")
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Processor{}).
			Where("bridge_id = ? AND name = ?", processor.BridgeID, processor.Name).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return errors.ErrProcessorAlreadyExists.GenWithStackByArgs(processor.Name, processor.BridgeID)
		}

		if err := tx.Create(processor).Error; err != nil {
			// lost a race against a concurrent insert of the same name
			if isUniqueViolation(err) {
				return errors.ErrProcessorAlreadyExists.GenWithStackByArgs(processor.Name, processor.BridgeID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errors.ErrProcessorAlreadyExists) {
			return err
		}
		return errors.ErrMetaOpFail.Wrap(err)
	}

	return nil
}

// UpdateProcessorStatus sets the status and the dependency status of a
// processor.
// Return 'ErrMetaEntryNotFound' if the processor does not exist.
func (c *metaOpsClient) UpdateProcessorStatus(ctx context.Context, processorID string,
	status model.ManagedResourceStatus, dependencyStatus model.ManagedResourceStatus,
) error {
	if !status.Valid() || !dependencyStatus.Valid() {
		return errors.ErrMetaParamsInvalid.GenWithStackByArgs(
			"unknown processor status " + status.String() + "/" + dependencyStatus.String())
	}

	result := c.db.WithContext(ctx).
		Model(&model.Processor{}).
		Where("id = ?", processorID).
		Updates(model.KeyValueMap{
			"status":            status.String(),
			"dependency_status": dependencyStatus.String(),
		})
	if result.Error != nil {
		return errors.ErrMetaOpFail.Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrMetaEntryNotFound.GenWithStackByArgs()
	}

	return nil
}

// RefreshProcessorDependencyStatus recomputes the dependency status of a
// processor from its own status and its connectors and persists it. Reads and
// write happen in one transaction.
// Return 'ErrMetaEntryNotFound' if the processor does not exist.
func (c *metaOpsClient) RefreshProcessorDependencyStatus(ctx context.Context, processorID string) (model.ManagedResourceStatus, error) {
	var depStatus model.ManagedResourceStatus
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var processor model.Processor
		if err := tx.Select("status").
			Where("id = ?", processorID).
			First(&processor).Error; err != nil {
			return wrapQueryError(err)
		}

		var statuses []model.ManagedResourceStatus
		if err := tx.Model(&model.Connector{}).
			Where("processor_id = ?", processorID).
			Pluck("status", &statuses).Error; err != nil {
			return errors.ErrMetaOpFail.Wrap(err)
		}

		depStatus = model.ProcessorDependencyStatus(processor.Status, statuses)
		if err := tx.Model(&model.Processor{}).
			Where("id = ?", processorID).
			Update("dependency_status", depStatus.String()).Error; err != nil {
			return errors.ErrMetaOpFail.Wrap(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return depStatus, nil
}

// GetProcessorByID query processor by processorID
func (c *metaOpsClient) GetProcessorByID(ctx context.Context, processorID string) (*model.Processor, error) {
	var processor model.Processor
	if err := c.db.WithContext(ctx).
		Where("id = ?", processorID).
		First(&processor).Error; err != nil {
		return nil, wrapQueryError(err)
	}

	return &processor, nil
}

// GetProcessorByName query processor by its exact name in the bridge
func (c *metaOpsClient) GetProcessorByName(ctx context.Context, bridgeID string, name string) (_ *model.Processor, err error) {
	done := observeOp(opGetProcessorByName)
	defer func() { done(err) }()

	var processor model.Processor
	if err := c.db.WithContext(ctx).
		Where("bridge_id = ? AND name = ?", bridgeID, name).
		First(&processor).Error; err != nil {
		return nil, wrapQueryError(err)
	}

	return &processor, nil
}

// GetProcessorByIDAndCustomer query processor by processorID. The processor
// is only found if it belongs to the bridge and the bridge is owned by the
// customer.
func (c *metaOpsClient) GetProcessorByIDAndCustomer(ctx context.Context, bridgeID string, processorID string,
	customerID string,
) (_ *model.Processor, err error) {
	done := observeOp(opGetProcessorByCustomer)
	defer func() { done(err) }()

	var processor model.Processor
	if err := c.db.WithContext(ctx).
		Scopes(processorsOfCustomer(bridgeID, customerID)).
		Where("processors.id = ?", processorID).
		First(&processor).Error; err != nil {
		return nil, wrapQueryError(err)
	}

	return &processor, nil
}

// QueryProcessors query one page of the processors of the bridge which match
// the filter, newest submitted first. The total count and the page are read
// in one transaction.
// Return 'ErrInvalidPagination' before touching the store if the page is out
// of bounds.
func (c *metaOpsClient) QueryProcessors(ctx context.Context, bridgeID string, customerID string,
	info model.QueryProcessorResourceInfo,
) (_ *model.ListResult[*model.Processor], err error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	done := observeOp(opQueryProcessors)
	defer func() { done(err) }()

	var (
		total      int64
		processors []*model.Processor
	)
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(processorsOfCustomer(bridgeID, customerID), info.Filter.Scope()).
			Count(&total).Error; err != nil {
			return err
		}
		if info.PastLastPage(total) {
			return nil
		}

		return tx.Scopes(processorsOfCustomer(bridgeID, customerID), info.Filter.Scope()).
			Order(processorOrderNewestFirst).
			Offset(info.Offset()).
			Limit(info.Size).
			Find(&processors).Error
	}, c.readTxOptions()...)
	if err != nil {
		return nil, errors.ErrMetaOpFail.Wrap(err)
	}

	return model.NewListResult(processors, info.Page, total), nil
}

// CountProcessors counts all processors of the bridge owned by the customer,
// no filter applied
func (c *metaOpsClient) CountProcessors(ctx context.Context, bridgeID string, customerID string) (_ int64, err error) {
	done := observeOp(opCountProcessors)
	defer func() { done(err) }()

	var total int64
	if err := c.db.WithContext(ctx).
		Scopes(processorsOfCustomer(bridgeID, customerID)).
		Count(&total).Error; err != nil {
		return 0, errors.ErrMetaOpFail.Wrap(err)
	}

	return total, nil
}

// QueryProcessorsReadyForAction query the processors of the shard a worker
// can act on now, oldest submitted first:
//   - preparing processors whose dependencies are ready, to be deployed
//   - deprovision processors whose dependencies are deleted, to be removed
//
// A processor with a connector still provisioning or deleting is skipped
// whatever its dependency status says. Processor and connector statuses are
// read in one statement in one transaction.
func (c *metaOpsClient) QueryProcessorsReadyForAction(ctx context.Context, shardID string) (_ []*model.Processor, err error) {
	done := observeOp(opProcessorsReady)
	defer func() { done(err) }()

	var processors []*model.Processor
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inTransition := tx.Model(&model.Connector{}).
			Select("1").
			Where("connectors.processor_id = processors.id AND connectors.status IN ?", connectorTransitionStatuses)

		return tx.Model(&model.Processor{}).
			Where("processors.shard_id = ?", shardID).
			Where("(processors.status = ? AND processors.dependency_status = ?) OR "+
				"(processors.status = ? AND processors.dependency_status = ?)",
				model.StatusPreparing.String(), model.StatusReady.String(),
				model.StatusDeprovision.String(), model.StatusDeleted.String()).
			Where("NOT EXISTS (?)", inTransition).
			Order(processorOrderOldestFirst).
			Find(&processors).Error
	}, c.readTxOptions()...)
	if err != nil {
		return nil, errors.ErrMetaOpFail.Wrap(err)
	}

	return processors, nil
}
