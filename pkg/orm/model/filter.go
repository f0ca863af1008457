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
	"strings"

	"gorm.io/gorm"
)

// FilterKind is the criterion kind of a processor filter.
type FilterKind string

// filter kinds
const (
	FilterKindName   FilterKind = "name"
	FilterKindStatus FilterKind = "status"
	FilterKindType   FilterKind = "type"
)

// Criterion is one value tagged with the kind it filters on.
type Criterion struct {
	Kind  FilterKind
	Value string
}

// ByName matches processors whose name contains name.
func ByName(name string) Criterion {
	return Criterion{Kind: FilterKindName, Value: name}
}

// ByStatus matches processors in status st.
func ByStatus(st ManagedResourceStatus) Criterion {
	return Criterion{Kind: FilterKindStatus, Value: string(st)}
}

// ByType matches processors of type tp.
func ByType(tp ProcessorType) Criterion {
	return Criterion{Kind: FilterKindType, Value: string(tp)}
}

// ProcessorFilter maps a filter kind to the set of accepted values.
// Values of the same kind are OR'ed, different kinds are AND'ed and an absent
// kind imposes no constraint. A ProcessorFilter is immutable once built.
type ProcessorFilter struct {
	values map[FilterKind][]string
}

// NewProcessorFilter builds a filter from criteria. Duplicated values are
// kept once, in the order they were first given.
func NewProcessorFilter(criteria ...Criterion) ProcessorFilter {
	f := ProcessorFilter{values: make(map[FilterKind][]string)}
	for _, c := range criteria {
		if containsString(f.values[c.Kind], c.Value) {
			continue
		}
		f.values[c.Kind] = append(f.values[c.Kind], c.Value)
	}
	return f
}

// Values returns a copy of the accepted values of kind.
func (f ProcessorFilter) Values(kind FilterKind) []string {
	vals := f.values[kind]
	if len(vals) == 0 {
		return nil
	}
	return append([]string(nil), vals...)
}

// IsEmpty returns true if the filter matches everything.
func (f ProcessorFilter) IsEmpty() bool {
	return len(f.values) == 0
}

// Scope renders the filter as a gorm scope over the processors table.
// Name matching is substring containment on the stored name, it does not fold
// case itself and follows the column collation on mysql.
func (f ProcessorFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if names := f.values[FilterKindName]; len(names) > 0 {
			conds := make([]string, 0, len(names))
			args := make([]interface{}, 0, len(names))
			for _, name := range names {
				conds = append(conds, "INSTR(processors.name, ?) > 0")
				args = append(args, name)
			}
			db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
		if statuses := f.values[FilterKindStatus]; len(statuses) > 0 {
			db = db.Where("processors.status IN ?", statuses)
		}
		if types := f.values[FilterKindType]; len(types) > 0 {
			db = db.Where("processors.type IN ?", types)
		}
		return db
	}
}

func containsString(vals []string, v string) bool {
	for _, val := range vals {
		if val == v {
			return true
		}
	}
	return false
}
