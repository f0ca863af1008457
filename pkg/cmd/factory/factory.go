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

package factory

import (
	"context"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/smartevents/fleet-manager/pkg/config"
	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/meta"
	"github.com/smartevents/fleet-manager/pkg/orm"
)

// Factory defines the client-side construction factory.
type Factory interface {
	ClientGetter
	// MetaClient returns the processor store client, it is created on first
	// use and shared by later calls.
	MetaClient(ctx context.Context) (orm.Client, error)
	// Close releases the store client and its connection
	Close() error
}

// ClientGetter defines the client getter.
type ClientGetter interface {
	GetConfig() (*config.Config, error)
	GetLogLevel() string
}

// ClientFlags specifies the parameters needed to construct the client.
type ClientFlags struct {
	configPath string
	storeType  string
	endpoints  string
	storePath  string
	logLevel   string
}

var _ ClientGetter = &ClientFlags{}

// NewClientFlags creates new client flags.
func NewClientFlags() *ClientFlags {
	return &ClientFlags{}
}

// AddFlags receives a *cobra.Command reference and binds
// flags related to the store connection to it.
func (c *ClientFlags) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "",
		"Path of the configuration file")
	cmd.PersistentFlags().StringVar(&c.storeType, "store-type", "",
		"Metastore type (mysql|sqlite), overrides the configuration file")
	cmd.PersistentFlags().StringVar(&c.endpoints, "store-endpoints", "",
		"Metastore endpoints, use ',' to separate multiple endpoints")
	cmd.PersistentFlags().StringVar(&c.storePath, "store-path", "",
		"Path of the sqlite database file")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn",
		"log level (etc: debug|info|warn|error)")
}

// GetConfig loads the configuration file if any and applies the flags over it.
func (c *ClientFlags) GetConfig() (*config.Config, error) {
	cfg := config.GetDefaultConfig()
	if c.configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(c.configPath); err != nil {
			return nil, err
		}
	}
	if c.storeType != "" {
		cfg.StoreConf.StoreType = c.storeType
	}
	cfg.StoreConf.SetEndpoints(c.endpoints)
	if c.storePath != "" {
		cfg.StoreConf.Path = c.storePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapError(errors.ErrInvalidCliParameter, err, "store")
	}
	return cfg, nil
}

// GetLogLevel returns log level.
func (c *ClientFlags) GetLogLevel() string {
	return c.logLevel
}

type factoryImpl struct {
	ClientGetter

	mu     sync.Mutex
	conn   meta.ClientConn
	client orm.Client
}

// NewFactory creates a client build factory.
func NewFactory(c ClientGetter) Factory {
	return &factoryImpl{
		ClientGetter: c,
	}
}

// MetaClient implements Factory.MetaClient
func (f *factoryImpl) MetaClient(ctx context.Context) (orm.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.client != nil {
		return f.client, nil
	}

	cfg, err := f.GetConfig()
	if err != nil {
		return nil, err
	}
	conn, err := meta.NewClientConn(ctx, cfg.StoreConf)
	if err != nil {
		return nil, err
	}
	client, err := orm.NewClient(conn, orm.WithSlowThreshold(cfg.StoreConf.SlowThresholdDuration()))
	if err != nil {
		return nil, multierr.Append(err, conn.Close())
	}
	// an embedded store may be fresh, tables are created if absent
	if cfg.StoreConf.StoreType == meta.StoreTypeSQLite {
		if err := client.Initialize(ctx); err != nil {
			return nil, multierr.Combine(err, client.Close(), conn.Close())
		}
	}

	f.conn, f.client = conn, client
	return client, nil
}

// Close implements Factory.Close
func (f *factoryImpl) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	if f.client != nil {
		err = multierr.Append(err, f.client.Close())
		f.client = nil
	}
	if f.conn != nil {
		err = multierr.Append(err, f.conn.Close())
		f.conn = nil
	}
	return err
}
