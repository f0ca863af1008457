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
	"strings"
	"time"

	dmysql "github.com/go-sql-driver/mysql"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/smartevents/fleet-manager/pkg/errors"
)

// StoreType is the backend type of the metastore
type StoreType = string

// store types
const (
	StoreTypeMySQL  StoreType = "mysql"
	StoreTypeSQLite StoreType = "sqlite"
)

const (
	defaultStoreType     = StoreTypeSQLite
	defaultReadTimeout   = "3s"
	defaultWriteTimeout  = "3s"
	defaultDialTimeout   = "3s"
	defaultSlowThreshold = "200ms"
	defaultMaxOpenConns  = 16
)

// StoreConfig is metastore connection configurations
type StoreConfig struct {
	StoreType StoreType `toml:"store-type" json:"store-type"`
	Endpoints []string  `toml:"endpoints" json:"endpoints"`
	User      string    `toml:"user" json:"user"`
	Password  string    `toml:"password" json:"-"`
	Schema    string    `toml:"schema" json:"schema"`
	// Path is the sqlite database file. An empty path opens a private in
	// memory database.
	Path string `toml:"path" json:"path"`

	ReadTimeout   string `toml:"read-timeout" json:"read-timeout"`
	WriteTimeout  string `toml:"write-timeout" json:"write-timeout"`
	DialTimeout   string `toml:"dial-timeout" json:"dial-timeout"`
	SlowThreshold string `toml:"slow-threshold" json:"slow-threshold"`
	MaxOpenConns  int    `toml:"max-open-conns" json:"max-open-conns"`
}

// DefaultStoreConfig return a default *StoreConfig
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		StoreType:     defaultStoreType,
		Endpoints:     []string{},
		ReadTimeout:   defaultReadTimeout,
		WriteTimeout:  defaultWriteTimeout,
		DialTimeout:   defaultDialTimeout,
		SlowThreshold: defaultSlowThreshold,
		MaxOpenConns:  defaultMaxOpenConns,
	}
}

// SetEndpoints sets endpoints from a comma separated list
func (s *StoreConfig) SetEndpoints(endpoints string) {
	if endpoints != "" {
		s.Endpoints = strings.Split(endpoints, ",")
	}
}

// Validate implements the validation.Validatable interface
func (s *StoreConfig) Validate() error {
	isMySQL := s.StoreType == StoreTypeMySQL
	return validation.ValidateStruct(s,
		validation.Field(&s.StoreType, validation.Required, validation.In(StoreTypeMySQL, StoreTypeSQLite)),
		validation.Field(&s.Endpoints, validation.When(isMySQL, validation.Required)),
		validation.Field(&s.Schema, validation.When(isMySQL, validation.Required)),
		validation.Field(&s.ReadTimeout, validation.By(isDuration)),
		validation.Field(&s.WriteTimeout, validation.By(isDuration)),
		validation.Field(&s.DialTimeout, validation.By(isDuration)),
		validation.Field(&s.SlowThreshold, validation.By(isDuration)),
		validation.Field(&s.MaxOpenConns, validation.Min(0)),
	)
}

// SlowThresholdDuration returns the slow query threshold, zero disables
// slow query logging.
func (s *StoreConfig) SlowThresholdDuration() time.Duration {
	d, err := time.ParseDuration(s.SlowThreshold)
	if err != nil {
		return 0
	}
	return d
}

// DialTimeoutDuration returns the timeout used when connecting to the store.
func (s *StoreConfig) DialTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.DialTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultDialTimeout)
	}
	return d
}

func isDuration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return errors.New("must be a valid duration")
	}
	return nil
}

// GenerateDSNByParams generates a dsn string.
// dsn format: [username[:password]@][protocol[(address)]]/
func GenerateDSNByParams(storeConf *StoreConfig, pairs map[string]string) (string, error) {
	if storeConf == nil {
		return "", errors.ErrMetaParamsInvalid.GenWithStackByArgs("input store config is nil")
	}
	if len(storeConf.Endpoints) == 0 {
		return "", errors.ErrMetaParamsInvalid.GenWithStackByArgs("input store endpoints is empty")
	}

	dsnCfg := dmysql.NewConfig()
	if dsnCfg.Params == nil {
		dsnCfg.Params = make(map[string]string, 1)
	}
	dsnCfg.User = storeConf.User
	dsnCfg.Passwd = storeConf.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = storeConf.Endpoints[0]
	dsnCfg.DBName = storeConf.Schema
	dsnCfg.InterpolateParams = true
	dsnCfg.Params["parseTime"] = "true"
	dsnCfg.Params["loc"] = "Local"
	dsnCfg.Params["readTimeout"] = storeConf.ReadTimeout
	dsnCfg.Params["writeTimeout"] = storeConf.WriteTimeout
	dsnCfg.Params["timeout"] = storeConf.DialTimeout
	for k, v := range pairs {
		dsnCfg.Params[k] = v
	}

	return dsnCfg.FormatDSN(), nil
}
