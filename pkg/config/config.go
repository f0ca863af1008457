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

package config

import (
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/logutil"
	"github.com/smartevents/fleet-manager/pkg/meta"
)

// Config is the configuration of the processor store tools.
type Config struct {
	LogConf   logutil.Config    `toml:"log" json:"log"`
	StoreConf *meta.StoreConfig `toml:"store" json:"store"`

	// ShardID is the worker shard the scheduling selector scans by default
	ShardID string `toml:"shard-id" json:"shard-id"`
}

// GetDefaultConfig returns a default config
func GetDefaultConfig() *Config {
	return &Config{
		LogConf:   *logutil.DefaultConfig(),
		StoreConf: meta.DefaultStoreConfig(),
	}
}

func (c *Config) String() string {
	cfg, err := json.Marshal(c)
	if err != nil {
		log.L().Error("marshal to json", zap.Reflect("config", c), zap.Error(err))
	}
	return string(cfg)
}

// Toml returns TOML format representation of config.
func (c *Config) Toml() (string, error) {
	var b bytes.Buffer

	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", errors.Trace(err)
	}
	return b.String(), nil
}

// Adjust fills the items left empty
func (c *Config) Adjust() {
	c.LogConf.Adjust()
	if c.StoreConf == nil {
		c.StoreConf = meta.DefaultStoreConfig()
	}
}

// Validate checks the log and store sections
func (c *Config) Validate() error {
	if err := c.LogConf.Validate(); err != nil {
		return errors.ErrConfigInvalid.GenWithStackByArgs("log: " + err.Error())
	}
	if err := c.StoreConf.Validate(); err != nil {
		return errors.ErrConfigInvalid.GenWithStackByArgs("store: " + err.Error())
	}
	return nil
}

// LoadFromFile decodes the toml file at path over the default config, then
// adjusts and validates the result. Unknown items are rejected.
func LoadFromFile(path string) (*Config, error) {
	cfg := GetDefaultConfig()
	if err := cfg.configFromFile(path); err != nil {
		return nil, err
	}
	cfg.Adjust()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configFromFile loads config from file and merges items into Config.
func (c *Config) configFromFile(path string) error {
	metaData, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.WrapError(errors.ErrConfigDecodeFile, err)
	}
	return checkUndecodedItems(metaData)
}

func (c *Config) configFromString(data string) error {
	metaData, err := toml.Decode(data, c)
	if err != nil {
		return errors.WrapError(errors.ErrConfigDecodeFile, err)
	}
	return checkUndecodedItems(metaData)
}

func checkUndecodedItems(metaData toml.MetaData) error {
	undecoded := metaData.Undecoded()
	if len(undecoded) > 0 {
		var undecodedItems []string
		for _, item := range undecoded {
			undecodedItems = append(undecodedItems, item.String())
		}
		return errors.ErrConfigUnknownItem.GenWithStackByArgs(strings.Join(undecodedItems, ","))
	}
	return nil
}
