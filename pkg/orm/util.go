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
	"database/sql"
	"strings"

	"github.com/VividCortex/mysqlerr"
	"github.com/glebarez/sqlite"
	dmysql "github.com/go-sql-driver/mysql"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/logutil"
	"github.com/smartevents/fleet-manager/pkg/meta"
)

// NewGormDB news a gorm.DB on top of an opened sql.DB
func NewGormDB(sqlDB *sql.DB, storeType meta.StoreType, opts ...optionFunc) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch storeType {
	case meta.StoreTypeMySQL:
		dialector = mysql.New(mysql.Config{
			Conn:                      sqlDB,
			SkipInitializeWithVersion: false,
		})
	case meta.StoreTypeSQLite:
		dialector = sqlite.Dialector{Conn: sqlDB}
	default:
		return nil, errors.ErrMetaClientTypeNotSupport.GenWithStackByArgs(storeType)
	}

	opts = append([]optionFunc{WithIgnoreTraceRecordNotFoundErr()}, opts...)
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 NewOrmLogger(logutil.NewLogger4Metastore(storeType), opts...),
	})
	if err != nil {
		log.Error("create gorm client fail", zap.String("store-type", storeType), zap.Error(err))
		return nil, errors.ErrMetaNewClientFail.Wrap(err)
	}

	return db, nil
}

// IsNotFoundError checks whether the error is ErrMetaEntryNotFound
func IsNotFoundError(err error) bool {
	return errors.HasRFCCode(err, errors.ErrMetaEntryNotFound)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *dmysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlerr.ER_DUP_ENTRY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
