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

package logutil

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartevents/fleet-manager/pkg/tenant"
)

const (
	defaultLogLevel   = "info"
	defaultLogMaxDays = 7
	defaultLogMaxSize = 512 // MB
)

// Config serializes log related config in toml/json.
type Config struct {
	Level          string `toml:"level" json:"level"`
	File           string `toml:"file" json:"file"`
	FileMaxSize    int    `toml:"max-size" json:"max-size"`
	FileMaxDays    int    `toml:"max-days" json:"max-days"`
	FileMaxBackups int    `toml:"max-backups" json:"max-backups"`
}

// DefaultConfig returns the default log config
func DefaultConfig() *Config {
	return &Config{
		Level:       defaultLogLevel,
		FileMaxSize: defaultLogMaxSize,
		FileMaxDays: defaultLogMaxDays,
	}
}

// Adjust adjusts config
func (cfg *Config) Adjust() {
	if len(cfg.Level) == 0 {
		cfg.Level = defaultLogLevel
	}
	cfg.Level = strings.ToLower(cfg.Level)
	if cfg.Level == "warning" {
		cfg.Level = "warn"
	}
	if cfg.FileMaxSize == 0 {
		cfg.FileMaxSize = defaultLogMaxSize
	}
	if cfg.FileMaxDays == 0 {
		cfg.FileMaxDays = defaultLogMaxDays
	}
}

// Validate checks the log level is known
func (cfg *Config) Validate() error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Level, validation.In("debug", "info", "warn", "error", "dpanic", "panic", "fatal")),
		validation.Field(&cfg.FileMaxSize, validation.Min(0)),
		validation.Field(&cfg.FileMaxDays, validation.Min(0)),
		validation.Field(&cfg.FileMaxBackups, validation.Min(0)),
	)
}

// InitLogger initializes the global logger from cfg.
func InitLogger(cfg *Config) error {
	cfg.Adjust()
	pclogConfig := &log.Config{
		Level: cfg.Level,
		File: log.FileLogConfig{
			Filename:   cfg.File,
			MaxSize:    cfg.FileMaxSize,
			MaxDays:    cfg.FileMaxDays,
			MaxBackups: cfg.FileMaxBackups,
		},
	}

	logger, props, err := log.InitLogger(pclogConfig)
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(logger, props)
	return nil
}

// SetLogLevel changes the level of the global logger.
func SetLogLevel(level string) error {
	var lv zapcore.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return errors.Trace(err)
	}
	log.SetLevel(lv)
	return nil
}

// ZapErrorFilter wraps zap.Error, returns zap.Error(nil) when the cause of
// err is one of the filters.
func ZapErrorFilter(err error, filters ...error) zap.Field {
	cause := errors.Cause(err)
	for _, ferr := range filters {
		if cause == ferr {
			return zap.Error(nil)
		}
	}
	return zap.Error(err)
}

type loggerKey struct{}

// NewContextWithLogger returns a child context carrying logger.
func NewContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or the global logger.
func FromContext(ctx context.Context) *zap.Logger {
	if lg, ok := LoggerFromContext(ctx); ok {
		return lg
	}
	return log.L()
}

// LoggerFromContext returns the logger stored in ctx if any.
func LoggerFromContext(ctx context.Context) (*zap.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	lg, ok := ctx.Value(loggerKey{}).(*zap.Logger)
	return lg, ok
}

// NewLogger4Tenant returns a logger tagged with the customer scope and bridge.
func NewLogger4Tenant(customer tenant.CustomerInfo, bridgeID string) *zap.Logger {
	fields := []zap.Field{zap.String("customer_id", customer.CustomerID())}
	if customer.OrganisationID() != "" {
		fields = append(fields, zap.String("organisation_id", customer.OrganisationID()))
	}
	if bridgeID != "" {
		fields = append(fields, zap.String("bridge_id", bridgeID))
	}
	return log.L().With(fields...)
}

// NewLogger4Metastore returns a logger for statements run on the metastore.
func NewLogger4Metastore(storeType string) *zap.Logger {
	return log.L().With(zap.String("component", "metastore"), zap.String("store_type", storeType))
}
