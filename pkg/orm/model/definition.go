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

package model

import (
	"database/sql/driver"

	"github.com/goccy/go-json"
	"github.com/smartevents/fleet-manager/pkg/errors"
)

// Action is the terminal step of a processor definition.
type Action struct {
	Type       string            `json:"type"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// Filter is one condition evaluated against incoming events.
type Filter struct {
	Type   string      `json:"type"`
	Key    string      `json:"key"`
	Value  interface{} `json:"value,omitempty"`
	Values []string    `json:"values,omitempty"`
}

// Definition is what a processor does with an event: filters, an optional
// transformation and exactly one action. It is persisted as a json column.
type Definition struct {
	Filters                []Filter `json:"filters,omitempty"`
	TransformationTemplate string   `json:"transformation_template,omitempty"`
	RequestedAction        Action   `json:"requested_action"`
	ResolvedAction         *Action  `json:"resolved_action,omitempty"`
}

// Value implements the driver.Valuer interface
func (d Definition) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (d *Definition) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*d = Definition{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, d)
}
