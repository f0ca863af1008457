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
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/meta"
	"github.com/smartevents/fleet-manager/pkg/uuid"
)

func randomDBFile() string {
	return uuid.NewGenerator().NewString() + ".db"
}

// NewMockClient creates a mock orm client backed by a private in memory
// sqlite database. Closing the client drops the database.
func NewMockClient() (Client, error) {
	// ref:https://www.sqlite.org/inmemorydb.html
	// using dsn(file:%s?mode=memory&cache=shared) format here to
	// 1. Create different DB for different TestXXX()
	// 2. Enable DB shared for different connection
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", randomDBFile())
	sqlDB, err := sql.Open(sqlite.DriverName, dsn)
	if err != nil {
		log.Error("create sqlite db fail", zap.Error(err))
		return nil, errors.ErrMetaNewClientFail.Wrap(err)
	}
	// one writer at a time, a shared cache db raises 'table is locked' otherwise
	sqlDB.SetMaxOpenConns(1)

	cli, err := newClient(sqlDB, meta.StoreTypeSQLite)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	cli.ownedConn = sqlDB

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cli.Initialize(ctx); err != nil {
		cli.Close()
		return nil, err
	}

	return cli, nil
}
