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

package meta

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/uuid"
)

// ClientConn is the connection to the metastore backend. It is shared by the
// orm clients built on it and must be closed by its creator.
type ClientConn interface {
	// StoreType returns the backend type
	StoreType() StoreType
	// GetConn returns the underlying sql.DB
	GetConn() (*sql.DB, error)
	// Close closes the underlying connection
	Close() error
}

type sqlClientConn struct {
	db        *sql.DB
	storeType StoreType
}

// NewClientConn opens and pings a connection to the configured metastore.
func NewClientConn(ctx context.Context, storeConf *StoreConfig) (ClientConn, error) {
	if storeConf == nil {
		return nil, errors.ErrMetaParamsInvalid.GenWithStackByArgs("input store config is nil")
	}

	var (
		driver string
		dsn    string
		err    error
	)
	switch storeConf.StoreType {
	case StoreTypeMySQL:
		driver = "mysql"
		dsn, err = GenerateDSNByParams(storeConf, nil)
		if err != nil {
			return nil, err
		}
	case StoreTypeSQLite:
		driver = sqlite.DriverName
		dsn = sqliteDSN(storeConf.Path)
	default:
		return nil, errors.ErrMetaClientTypeNotSupport.GenWithStackByArgs(storeConf.StoreType)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Error("open dsn fail", zap.String("store-type", storeConf.StoreType), zap.Error(err))
		return nil, errors.ErrMetaNewClientFail.Wrap(err)
	}
	if storeConf.StoreType == StoreTypeSQLite {
		// sqlite allows one writer, serialize all statements on one connection
		db.SetMaxOpenConns(1)
	} else if storeConf.MaxOpenConns > 0 {
		db.SetMaxOpenConns(storeConf.MaxOpenConns)
	}

	ctx, cancel := context.WithTimeout(ctx, storeConf.DialTimeoutDuration())
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.ErrMetaNewClientFail.Wrap(err)
	}

	return &sqlClientConn{
		db:        db,
		storeType: storeConf.StoreType,
	}, nil
}

func sqliteDSN(path string) string {
	if path == "" {
		// ref:https://www.sqlite.org/inmemorydb.html
		return fmt.Sprintf("file:%s.db?mode=memory&cache=shared", uuid.NewGenerator().NewString())
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
}

// StoreType implements ClientConn.StoreType
func (c *sqlClientConn) StoreType() StoreType {
	return c.storeType
}

// GetConn implements ClientConn.GetConn
func (c *sqlClientConn) GetConn() (*sql.DB, error) {
	return c.db, nil
}

// Close implements ClientConn.Close
func (c *sqlClientConn) Close() error {
	return c.db.Close()
}
