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
	"database/sql"

	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/meta"
	"github.com/smartevents/fleet-manager/pkg/orm/model"
	"gorm.io/gorm"
)

var globalModels = []interface{}{
	&model.Bridge{},
	&model.Processor{},
	&model.Connector{},
}

// Client defines an interface that has the ability to manage every kind of
// resource of the fleet manager in metastore, including bridge, processor
// and connector
type Client interface {
	// Initialize creates or migrates the tables of all models
	Initialize(ctx context.Context) error
	// Close releases the resources owned by the client
	Close() error

	// BridgeClient is the interface to operate bridge.
	BridgeClient
	// ProcessorClient is the interface to operate and query processor.
	ProcessorClient
	// ConnectorClient is the interface to operate connector.
	ConnectorClient
}

// BridgeClient defines interface that manages bridge in metastore
type BridgeClient interface {
	CreateBridge(ctx context.Context, bridge *model.Bridge) error
	GetBridgeByID(ctx context.Context, bridgeID string) (*model.Bridge, error)
	GetBridgeByIDAndCustomer(ctx context.Context, bridgeID string, customerID string) (*model.Bridge, error)
	QueryBridgesByCustomer(ctx context.Context, customerID string) ([]*model.Bridge, error)
}

// ProcessorClient defines interface that manages processor in metastore.
// All query methods are read only, a processor is never physically deleted.
type ProcessorClient interface {
	CreateProcessor(ctx context.Context, processor *model.Processor) error
	UpdateProcessorStatus(ctx context.Context, processorID string,
		status model.ManagedResourceStatus, dependencyStatus model.ManagedResourceStatus) error
	RefreshProcessorDependencyStatus(ctx context.Context, processorID string) (model.ManagedResourceStatus, error)

	GetProcessorByID(ctx context.Context, processorID string) (*model.Processor, error)
	GetProcessorByName(ctx context.Context, bridgeID string, name string) (*model.Processor, error)
	GetProcessorByIDAndCustomer(ctx context.Context, bridgeID string, processorID string,
		customerID string) (*model.Processor, error)
	QueryProcessors(ctx context.Context, bridgeID string, customerID string,
		info model.QueryProcessorResourceInfo) (*model.ListResult[*model.Processor], error)
	CountProcessors(ctx context.Context, bridgeID string, customerID string) (int64, error)
	QueryProcessorsReadyForAction(ctx context.Context, shardID string) ([]*model.Processor, error)
}

// ConnectorClient defines interface that manages connector in metastore
type ConnectorClient interface {
	CreateConnector(ctx context.Context, connector *model.Connector) error
	UpdateConnectorStatus(ctx context.Context, connectorID string, status model.ManagedResourceStatus) error
	QueryConnectorsByProcessorID(ctx context.Context, processorID string) ([]*model.Connector, error)
}

// NewClient return the client to operate the fleet manager metastore.
// The client does not own cc, callers close cc after closing the client.
func NewClient(cc meta.ClientConn, opts ...optionFunc) (Client, error) {
	if cc == nil {
		return nil, errors.ErrMetaParamsInvalid.GenWithStackByArgs("input client conn is nil")
	}

	conn, err := cc.GetConn()
	if err != nil {
		return nil, err
	}

	return newClient(conn, cc.StoreType(), opts...)
}

func newClient(db *sql.DB, storeType meta.StoreType, opts ...optionFunc) (*metaOpsClient, error) {
	ormDB, err := NewGormDB(db, storeType, opts...)
	if err != nil {
		return nil, err
	}

	return &metaOpsClient{
		db:        ormDB,
		storeType: storeType,
	}, nil
}

// metaOpsClient is the meta operations client for fleet manager metastore
type metaOpsClient struct {
	// gorm claim to be thread safe
	db        *gorm.DB
	storeType meta.StoreType
	// ownedConn is closed by Close, it is only set when the client opened
	// the connection itself
	ownedConn *sql.DB
}

// Initialize auto migrates all models
func (c *metaOpsClient) Initialize(ctx context.Context) error {
	if err := c.db.WithContext(ctx).AutoMigrate(globalModels...); err != nil {
		return errors.ErrMetaOpFail.Wrap(err)
	}
	return nil
}

func (c *metaOpsClient) Close() error {
	// DO NOT CLOSE a connection owned by the caller
	if c.ownedConn != nil {
		return c.ownedConn.Close()
	}
	return nil
}

// readTxOptions returns the options of the read transactions used by queries
// that must see one consistent snapshot.
func (c *metaOpsClient) readTxOptions() []*sql.TxOptions {
	if c.storeType == meta.StoreTypeMySQL {
		return []*sql.TxOptions{{ReadOnly: true}}
	}
	return nil
}
