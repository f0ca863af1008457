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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/smartevents/fleet-manager/pkg/errors"
)

func histogramSampleCount(t *testing.T, reg *prometheus.Registry, op string) uint64 {
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "smartevents_metastore_query_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "op" && l.GetValue() == op {
					return m.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}

func TestObserveOp(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	InitMetrics(reg)

	const op = "observe_op_test"
	observeOp(op)(nil)
	observeOp(op)(errors.ErrMetaEntryNotFound.GenWithStackByArgs())
	observeOp(op)(errors.ErrMetaOpFail.GenWithStackByArgs())

	require.Equal(t, uint64(3), histogramSampleCount(t, reg, op))
	// absence is not a failure
	require.Equal(t, float64(1), testutil.ToFloat64(queryErrors.WithLabelValues(op)))
}

func TestQueryMetricsObserved(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	InitMetrics(reg)

	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	before := histogramSampleCount(t, reg, opCountProcessors)
	_, err := cli.CountProcessors(context.Background(), b1.ID, "c1")
	require.NoError(t, err)
	require.Greater(t, histogramSampleCount(t, reg, opCountProcessors), before)
}
