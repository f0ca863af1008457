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
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/orm/model"
)

var baseTime = time.Date(2022, time.June, 1, 10, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T) Client {
	cli, err := NewMockClient()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, cli.Close())
	})
	return cli
}

func mustCreateBridge(t *testing.T, cli Client, id string, customerID string) *model.Bridge {
	bridge := &model.Bridge{
		ID:             id,
		Name:           "bridge-" + id,
		CustomerID:     customerID,
		OrganisationID: "org-" + customerID,
		Owner:          "owner",
		Status:         model.StatusReady,
		SubmittedAt:    baseTime,
		ShardID:        "shard-1",
	}
	require.NoError(t, cli.CreateBridge(context.Background(), bridge))
	return bridge
}

type processorOpt func(p *model.Processor)

func withStatus(status, depStatus model.ManagedResourceStatus) processorOpt {
	return func(p *model.Processor) {
		p.Status = status
		p.DependencyStatus = depStatus
	}
}

func withType(tp model.ProcessorType) processorOpt {
	return func(p *model.Processor) {
		p.Type = tp
	}
}

func withShard(shardID string) processorOpt {
	return func(p *model.Processor) {
		p.ShardID = shardID
	}
}

// mustCreateProcessor creates a processor submitted `minute` minutes after
// baseTime, accepted and of type sink unless opts say otherwise.
func mustCreateProcessor(t *testing.T, cli Client, bridgeID string, id string, name string,
	minute int, opts ...processorOpt,
) *model.Processor {
	p := &model.Processor{
		ID:               id,
		Name:             name,
		Type:             model.ProcessorTypeSink,
		BridgeID:         bridgeID,
		Status:           model.StatusAccepted,
		DependencyStatus: model.StatusReady,
		SubmittedAt:      baseTime.Add(time.Duration(minute) * time.Minute),
		ShardID:          "shard-1",
		Owner:            "owner",
		Definition: model.Definition{
			Filters: []model.Filter{{Type: "StringEquals", Key: "source", Value: "aws"}},
			RequestedAction: model.Action{
				Type:       "kafka_topic_sink_0.1",
				Parameters: map[string]string{"topic": name},
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, cli.CreateProcessor(context.Background(), p))
	return p
}

func processorIDs(processors []*model.Processor) []string {
	ids := make([]string, 0, len(processors))
	for _, p := range processors {
		ids = append(ids, p.ID)
	}
	return ids
}

func listProcessors(t *testing.T, cli Client, bridgeID string, customerID string, page int, size int,
	criteria ...model.Criterion,
) *model.ListResult[*model.Processor] {
	res, err := cli.QueryProcessors(context.Background(), bridgeID, customerID,
		model.NewQueryProcessorResourceInfo(page, size, model.NewProcessorFilter(criteria...)))
	require.NoError(t, err)
	return res
}

func TestGetProcessorByName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	b2 := mustCreateBridge(t, cli, "b2", "c1")
	created := mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0)

	found, err := cli.GetProcessorByName(ctx, b1.ID, "foo")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, created.Name, found.Name)
	require.Equal(t, created.BridgeID, found.BridgeID)
	require.Equal(t, created.Type, found.Type)
	require.Equal(t, created.Status, found.Status)
	require.Equal(t, created.DependencyStatus, found.DependencyStatus)
	require.Equal(t, created.Definition, found.Definition)
	require.True(t, created.SubmittedAt.Equal(found.SubmittedAt))
	require.Nil(t, found.PublishedAt)

	// wrong bridge
	_, err = cli.GetProcessorByName(ctx, b2.ID, "foo")
	require.True(t, IsNotFoundError(err))
	// wrong name, names are matched exactly
	_, err = cli.GetProcessorByName(ctx, b1.ID, "bar")
	require.True(t, IsNotFoundError(err))
	_, err = cli.GetProcessorByName(ctx, b1.ID, "fo")
	require.True(t, IsNotFoundError(err))

	found, err = cli.GetProcessorByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "foo", found.Name)
	_, err = cli.GetProcessorByID(ctx, "p2")
	require.True(t, IsNotFoundError(err))
}

func TestGetProcessorByIDAndCustomer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	b2 := mustCreateBridge(t, cli, "b2", "c2")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0)
	mustCreateProcessor(t, cli, b2.ID, "p2", "foo", 0)

	found, err := cli.GetProcessorByIDAndCustomer(ctx, b1.ID, "p1", "c1")
	require.NoError(t, err)
	require.Equal(t, "p1", found.ID)
	require.Equal(t, b1.ID, found.BridgeID)

	// correct bridge and processor, wrong customer
	_, err = cli.GetProcessorByIDAndCustomer(ctx, b1.ID, "p1", "c2")
	require.True(t, IsNotFoundError(err))
	// processor of another bridge
	_, err = cli.GetProcessorByIDAndCustomer(ctx, b1.ID, "p2", "c1")
	require.True(t, IsNotFoundError(err))
	_, err = cli.GetProcessorByIDAndCustomer(ctx, b2.ID, "p2", "c1")
	require.True(t, IsNotFoundError(err))
	// unknown processor
	_, err = cli.GetProcessorByIDAndCustomer(ctx, b1.ID, "p3", "c1")
	require.True(t, IsNotFoundError(err))
}

func TestQueryProcessorsTenantIsolation(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	b2 := mustCreateBridge(t, cli, "b2", "c2")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0)
	mustCreateProcessor(t, cli, b1.ID, "p2", "bar", 1)
	mustCreateProcessor(t, cli, b2.ID, "p3", "foo", 2)

	res := listProcessors(t, cli, b1.ID, "c1", 0, 100)
	require.Equal(t, []string{"p2", "p1"}, processorIDs(res.Items))
	require.Equal(t, int64(2), res.Total)

	// a valid bridge of another customer yields nothing
	res = listProcessors(t, cli, b1.ID, "c2", 0, 100)
	require.Empty(t, res.Items)
	require.Equal(t, int64(0), res.Total)
	require.Equal(t, 0, res.Size)

	res = listProcessors(t, cli, b2.ID, "c2", 0, 100)
	require.Equal(t, []string{"p3"}, processorIDs(res.Items))
}

func TestQueryProcessorsFilterByStatus(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0, withStatus(model.StatusAccepted, model.StatusReady))
	mustCreateProcessor(t, cli, b1.ID, "p2", "bar", 1, withStatus(model.StatusReady, model.StatusReady))
	mustCreateProcessor(t, cli, b1.ID, "p3", "baz", 2, withStatus(model.StatusFailed, model.StatusFailed))

	res := listProcessors(t, cli, b1.ID, "c1", 0, 100,
		model.ByStatus(model.StatusAccepted), model.ByStatus(model.StatusReady))
	require.Equal(t, []string{"p2", "p1"}, processorIDs(res.Items))
	require.Equal(t, int64(2), res.Total)
	require.Equal(t, 2, res.Size)

	res = listProcessors(t, cli, b1.ID, "c1", 0, 100, model.ByStatus(model.StatusDeleted))
	require.Empty(t, res.Items)
	require.Equal(t, int64(0), res.Total)
}

func TestQueryProcessorsFilterByType(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0, withType(model.ProcessorTypeSource))
	mustCreateProcessor(t, cli, b1.ID, "p2", "bar", 1, withType(model.ProcessorTypeSink))

	res := listProcessors(t, cli, b1.ID, "c1", 0, 100, model.ByType(model.ProcessorTypeSource))
	require.Equal(t, []string{"p1"}, processorIDs(res.Items))

	res = listProcessors(t, cli, b1.ID, "c1", 0, 100,
		model.ByType(model.ProcessorTypeSource), model.ByType(model.ProcessorTypeSink))
	require.Equal(t, []string{"p2", "p1"}, processorIDs(res.Items))
}

func TestQueryProcessorsFilterAcrossKinds(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo1", 0,
		withStatus(model.StatusReady, model.StatusReady), withType(model.ProcessorTypeSource))
	mustCreateProcessor(t, cli, b1.ID, "p2", "foo2", 1,
		withStatus(model.StatusReady, model.StatusReady), withType(model.ProcessorTypeSink))
	mustCreateProcessor(t, cli, b1.ID, "p3", "foo3", 2,
		withStatus(model.StatusAccepted, model.StatusReady), withType(model.ProcessorTypeSource))
	mustCreateProcessor(t, cli, b1.ID, "p4", "bar", 3,
		withStatus(model.StatusReady, model.StatusReady), withType(model.ProcessorTypeSource))

	res := listProcessors(t, cli, b1.ID, "c1", 0, 100,
		model.ByName("foo"), model.ByStatus(model.StatusReady), model.ByType(model.ProcessorTypeSource))
	require.Equal(t, []string{"p1"}, processorIDs(res.Items))
	require.Equal(t, int64(1), res.Total)

	res = listProcessors(t, cli, b1.ID, "c1", 0, 100,
		model.ByName("foo"), model.ByStatus(model.StatusReady))
	require.Equal(t, []string{"p2", "p1"}, processorIDs(res.Items))
}

func TestQueryProcessorsFilterByName(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo1", 0)
	mustCreateProcessor(t, cli, b1.ID, "p2", "foo2", 1)
	mustCreateProcessor(t, cli, b1.ID, "p3", "bar", 2)
	mustCreateProcessor(t, cli, b1.ID, "p4", "50%_off", 3)

	res := listProcessors(t, cli, b1.ID, "c1", 0, 100, model.ByName("foo"))
	require.Equal(t, []string{"p2", "p1"}, processorIDs(res.Items))
	require.Equal(t, int64(2), res.Total)

	// several names are OR'ed
	res = listProcessors(t, cli, b1.ID, "c1", 0, 100, model.ByName("foo1"), model.ByName("ba"))
	require.Equal(t, []string{"p3", "p1"}, processorIDs(res.Items))

	// the name is matched as is, no wildcard and no case folding
	res = listProcessors(t, cli, b1.ID, "c1", 0, 100, model.ByName("%"))
	require.Equal(t, []string{"p4"}, processorIDs(res.Items))
	res = listProcessors(t, cli, b1.ID, "c1", 0, 100, model.ByName("_"))
	require.Equal(t, []string{"p4"}, processorIDs(res.Items))
	res = listProcessors(t, cli, b1.ID, "c1", 0, 100, model.ByName("FOO"))
	require.Empty(t, res.Items)
}

func TestQueryProcessorsPagination(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0)
	mustCreateProcessor(t, cli, b1.ID, "p2", "bar", 1)

	res := listProcessors(t, cli, b1.ID, "c1", 0, 1)
	require.Equal(t, []string{"p2"}, processorIDs(res.Items))
	require.Equal(t, 0, res.Page)
	require.Equal(t, 1, res.Size)
	require.Equal(t, int64(2), res.Total)

	res = listProcessors(t, cli, b1.ID, "c1", 1, 1)
	require.Equal(t, []string{"p1"}, processorIDs(res.Items))
	require.Equal(t, 1, res.Page)
	require.Equal(t, 1, res.Size)
	require.Equal(t, int64(2), res.Total)

	// past the last page
	res = listProcessors(t, cli, b1.ID, "c1", 2, 1)
	require.Empty(t, res.Items)
	require.NotNil(t, res.Items)
	require.Equal(t, 2, res.Page)
	require.Equal(t, 0, res.Size)
	require.Equal(t, int64(2), res.Total)

	// a page far past the end whose offset does not fit in an int
	for _, page := range []int{math.MaxInt / 2, math.MaxInt} {
		res = listProcessors(t, cli, b1.ID, "c1", page, model.MaxPageSize)
		require.Empty(t, res.Items)
		require.Equal(t, page, res.Page)
		require.Equal(t, 0, res.Size)
		require.Equal(t, int64(2), res.Total)
	}

	_, err := cli.QueryProcessors(context.Background(), b1.ID, "c1",
		model.NewQueryProcessorResourceInfo(0, model.MaxPageSize+1, model.NewProcessorFilter()))
	require.True(t, errors.Is(err, errors.ErrInvalidPagination))
	_, err = cli.QueryProcessors(context.Background(), b1.ID, "c1",
		model.NewQueryProcessorResourceInfo(-1, 1, model.NewProcessorFilter()))
	require.True(t, errors.Is(err, errors.ErrInvalidPagination))
}

func TestQueryProcessorsStableOrder(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	// same submission time, ties are broken by id
	mustCreateProcessor(t, cli, b1.ID, "p-a", "foo", 0)
	mustCreateProcessor(t, cli, b1.ID, "p-c", "bar", 0)
	mustCreateProcessor(t, cli, b1.ID, "p-b", "baz", 0)

	var pages []string
	for page := 0; page < 3; page++ {
		res := listProcessors(t, cli, b1.ID, "c1", page, 1)
		pages = append(pages, processorIDs(res.Items)...)
	}
	require.Equal(t, []string{"p-c", "p-b", "p-a"}, pages)

	// repeated calls over unchanged state return the same result
	first := listProcessors(t, cli, b1.ID, "c1", 0, 100)
	second := listProcessors(t, cli, b1.ID, "c1", 0, 100)
	require.Equal(t, processorIDs(first.Items), processorIDs(second.Items))
	require.Equal(t, first.Total, second.Total)
}

func TestCountProcessors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	b2 := mustCreateBridge(t, cli, "b2", "c1")
	for i, name := range []string{"foo", "bar", "baz"} {
		mustCreateProcessor(t, cli, b1.ID, "p"+name, name, i, withStatus(model.StatusReady, model.StatusReady))
	}
	mustCreateProcessor(t, cli, b2.ID, "p4", "foo", 0)

	count, err := cli.CountProcessors(ctx, b1.ID, "c1")
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
	res := listProcessors(t, cli, b1.ID, "c1", 0, 1)
	require.Equal(t, count, res.Total)

	count, err = cli.CountProcessors(ctx, b1.ID, "c2")
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func TestQueryProcessorsReadyForAction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")

	// A: dependencies ready, to be deployed
	mustCreateProcessor(t, cli, b1.ID, "A", "a", 0, withStatus(model.StatusPreparing, model.StatusReady))
	// B: already stable
	mustCreateProcessor(t, cli, b1.ID, "B", "b", 1, withStatus(model.StatusReady, model.StatusReady))
	// C: dependencies deleted, to be removed
	mustCreateProcessor(t, cli, b1.ID, "C", "c", 2, withStatus(model.StatusDeprovision, model.StatusDeleted))
	// D: waiting for its connector
	mustCreateProcessor(t, cli, b1.ID, "D", "d", 3, withStatus(model.StatusPreparing, model.StatusProvisioning))
	require.NoError(t, cli.CreateConnector(ctx, &model.Connector{
		ID: "k-D", Name: "k-D", ProcessorID: "D", Status: model.StatusProvisioning, SubmittedAt: baseTime,
	}))
	// E: another shard
	mustCreateProcessor(t, cli, b1.ID, "E", "e", 4,
		withStatus(model.StatusPreparing, model.StatusReady), withShard("shard-2"))
	// F: dependency status not refreshed yet, a connector is still deleting
	mustCreateProcessor(t, cli, b1.ID, "F", "f", 5, withStatus(model.StatusPreparing, model.StatusReady))
	require.NoError(t, cli.CreateConnector(ctx, &model.Connector{
		ID: "k-F1", Name: "k-F1", ProcessorID: "F", Status: model.StatusReady, SubmittedAt: baseTime,
	}))
	require.NoError(t, cli.CreateConnector(ctx, &model.Connector{
		ID: "k-F2", Name: "k-F2", ProcessorID: "F", Status: model.StatusDeleting, SubmittedAt: baseTime,
	}))
	// G: torn down connectors do not block
	mustCreateProcessor(t, cli, b1.ID, "G", "g", 6, withStatus(model.StatusDeprovision, model.StatusDeleted))
	require.NoError(t, cli.CreateConnector(ctx, &model.Connector{
		ID: "k-G", Name: "k-G", ProcessorID: "G", Status: model.StatusDeleted, SubmittedAt: baseTime,
	}))

	processors, err := cli.QueryProcessorsReadyForAction(ctx, "shard-1")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "G"}, processorIDs(processors))

	// idempotent over unchanged state
	again, err := cli.QueryProcessorsReadyForAction(ctx, "shard-1")
	require.NoError(t, err)
	require.Equal(t, processorIDs(processors), processorIDs(again))

	processors, err = cli.QueryProcessorsReadyForAction(ctx, "shard-2")
	require.NoError(t, err)
	require.Equal(t, []string{"E"}, processorIDs(processors))

	processors, err = cli.QueryProcessorsReadyForAction(ctx, "shard-3")
	require.NoError(t, err)
	require.Empty(t, processors)

	// D becomes actionable once its connector is ready and the dependency
	// status is refreshed
	require.NoError(t, cli.UpdateConnectorStatus(ctx, "k-D", model.StatusReady))
	processors, err = cli.QueryProcessorsReadyForAction(ctx, "shard-1")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "G"}, processorIDs(processors))
	depStatus, err := cli.RefreshProcessorDependencyStatus(ctx, "D")
	require.NoError(t, err)
	require.Equal(t, model.StatusReady, depStatus)
	processors, err = cli.QueryProcessorsReadyForAction(ctx, "shard-1")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "D", "G"}, processorIDs(processors))

	// A is deployed
	require.NoError(t, cli.UpdateProcessorStatus(ctx, "A", model.StatusReady, model.StatusReady))
	processors, err = cli.QueryProcessorsReadyForAction(ctx, "shard-1")
	require.NoError(t, err)
	require.Equal(t, []string{"C", "D", "G"}, processorIDs(processors))
}

func TestCreateProcessorDuplicated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	b2 := mustCreateBridge(t, cli, "b2", "c1")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0)

	err := cli.CreateProcessor(ctx, &model.Processor{
		ID: "p2", Name: "foo", BridgeID: b1.ID, Type: model.ProcessorTypeSink,
		Status: model.StatusAccepted, DependencyStatus: model.StatusReady, SubmittedAt: baseTime,
	})
	require.True(t, errors.Is(err, errors.ErrProcessorAlreadyExists))
	require.False(t, IsNotFoundError(err))

	// the same name in another bridge is fine
	mustCreateProcessor(t, cli, b2.ID, "p3", "foo", 0)

	require.ErrorContains(t, cli.CreateProcessor(ctx, nil), "[SE:ErrMetaParamsInvalid]")
}

func TestUpdateProcessorStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0)

	require.NoError(t, cli.UpdateProcessorStatus(ctx, "p1", model.StatusPreparing, model.StatusProvisioning))
	p, err := cli.GetProcessorByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, model.StatusPreparing, p.Status)
	require.Equal(t, model.StatusProvisioning, p.DependencyStatus)

	err = cli.UpdateProcessorStatus(ctx, "p2", model.StatusReady, model.StatusReady)
	require.True(t, IsNotFoundError(err))

	err = cli.UpdateProcessorStatus(ctx, "p1", model.ManagedResourceStatus("running"), model.StatusReady)
	require.ErrorContains(t, err, "[SE:ErrMetaParamsInvalid]")
}

func TestRefreshProcessorDependencyStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0, withStatus(model.StatusPreparing, model.StatusProvisioning))

	// no connectors
	st, err := cli.RefreshProcessorDependencyStatus(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, model.StatusReady, st)

	for _, id := range []string{"k1", "k2"} {
		require.NoError(t, cli.CreateConnector(ctx, &model.Connector{
			ID: id, Name: id, ProcessorID: "p1", Status: model.StatusProvisioning, SubmittedAt: baseTime,
		}))
	}
	require.NoError(t, cli.UpdateConnectorStatus(ctx, "k1", model.StatusReady))
	st, err = cli.RefreshProcessorDependencyStatus(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, model.StatusProvisioning, st)
	p, err := cli.GetProcessorByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, model.StatusProvisioning, p.DependencyStatus)

	require.NoError(t, cli.UpdateConnectorStatus(ctx, "k2", model.StatusReady))
	st, err = cli.RefreshProcessorDependencyStatus(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, model.StatusReady, st)

	require.NoError(t, cli.UpdateConnectorStatus(ctx, "k1", model.StatusDeleted))
	require.NoError(t, cli.UpdateConnectorStatus(ctx, "k2", model.StatusDeleted))
	st, err = cli.RefreshProcessorDependencyStatus(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, model.StatusDeleted, st)

	_, err = cli.RefreshProcessorDependencyStatus(ctx, "p2")
	require.True(t, IsNotFoundError(err))
}

func TestRefreshDependencyStatusWithoutConnectors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	mustCreateProcessor(t, cli, b1.ID, "p1", "foo", 0, withStatus(model.StatusDeprovision, model.StatusReady))
	mustCreateProcessor(t, cli, b1.ID, "p2", "bar", 1, withStatus(model.StatusPreparing, model.StatusProvisioning))

	processors, err := cli.QueryProcessorsReadyForAction(ctx, "shard-1")
	require.NoError(t, err)
	require.Empty(t, processors)

	// nothing left to tear down
	st, err := cli.RefreshProcessorDependencyStatus(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, model.StatusDeleted, st)
	// nothing to wait for
	st, err = cli.RefreshProcessorDependencyStatus(ctx, "p2")
	require.NoError(t, err)
	require.Equal(t, model.StatusReady, st)

	processors, err = cli.QueryProcessorsReadyForAction(ctx, "shard-1")
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p2"}, processorIDs(processors))
}

func TestConcurrentQueries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cli := newTestClient(t)
	b1 := mustCreateBridge(t, cli, "b1", "c1")
	for i, name := range []string{"foo", "bar", "baz", "qux"} {
		mustCreateProcessor(t, cli, b1.ID, "p-"+name, name, i, withStatus(model.StatusPreparing, model.StatusReady))
	}
	expected := listProcessors(t, cli, b1.ID, "c1", 0, 2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := cli.QueryProcessors(ctx, b1.ID, "c1",
				model.NewQueryProcessorResourceInfo(0, 2, model.NewProcessorFilter()))
			require.NoError(t, err)
			require.Equal(t, processorIDs(expected.Items), processorIDs(res.Items))

			ready, err := cli.QueryProcessorsReadyForAction(ctx, "shard-1")
			require.NoError(t, err)
			require.Len(t, ready, 4)
		}()
	}
	wg.Wait()
}
