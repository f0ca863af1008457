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
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})
	return db
}

func TestNewProcessorFilter(t *testing.T) {
	t.Parallel()

	f := NewProcessorFilter()
	require.True(t, f.IsEmpty())
	require.Nil(t, f.Values(FilterKindName))

	f = NewProcessorFilter(
		ByStatus(StatusAccepted),
		ByName("foo"),
		ByStatus(StatusReady),
		ByStatus(StatusAccepted),
		ByType(ProcessorTypeSink),
	)
	require.False(t, f.IsEmpty())
	require.Equal(t, []string{"accepted", "ready"}, f.Values(FilterKindStatus))
	require.Equal(t, []string{"foo"}, f.Values(FilterKindName))
	require.Equal(t, []string{"sink"}, f.Values(FilterKindType))

	// the returned values are a copy
	vals := f.Values(FilterKindStatus)
	vals[0] = "failed"
	require.Equal(t, []string{"accepted", "ready"}, f.Values(FilterKindStatus))
}

func TestProcessorFilterScope(t *testing.T) {
	t.Parallel()

	db := dryRunDB(t)
	cases := []struct {
		filter   ProcessorFilter
		contains []string
		excludes []string
		vars     []interface{}
	}{
		{
			filter:   NewProcessorFilter(),
			excludes: []string{"WHERE"},
		},
		{
			filter:   NewProcessorFilter(ByName("foo"), ByName("bar")),
			contains: []string{"INSTR(processors.name, ?) > 0 OR INSTR(processors.name, ?) > 0"},
			excludes: []string{"processors.status", "processors.type"},
			vars:     []interface{}{"foo", "bar"},
		},
		{
			filter:   NewProcessorFilter(ByStatus(StatusAccepted), ByStatus(StatusReady)),
			contains: []string{"processors.status IN (?,?)"},
			vars:     []interface{}{"accepted", "ready"},
		},
		{
			filter: NewProcessorFilter(ByName("foo"), ByStatus(StatusReady), ByType(ProcessorTypeSource)),
			contains: []string{
				"INSTR(processors.name, ?) > 0",
				"AND processors.status IN (?)",
				"AND processors.type IN (?)",
			},
			vars: []interface{}{"foo", "ready", "source"},
		},
	}

	for _, cs := range cases {
		var processors []*Processor
		stmt := db.Session(&gorm.Session{}).
			Scopes(cs.filter.Scope()).
			Find(&processors).Statement
		sql := stmt.SQL.String()
		for _, s := range cs.contains {
			require.Contains(t, sql, s)
		}
		for _, s := range cs.excludes {
			require.NotContains(t, sql, s)
		}
		if cs.vars != nil {
			require.Equal(t, cs.vars, stmt.Vars)
		} else {
			require.Empty(t, stmt.Vars)
		}
	}
}
