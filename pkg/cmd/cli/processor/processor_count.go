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

package processor

import (
	"github.com/spf13/cobra"

	cmdcontext "github.com/smartevents/fleet-manager/pkg/cmd/context"
	"github.com/smartevents/fleet-manager/pkg/cmd/factory"
	"github.com/smartevents/fleet-manager/pkg/cmd/util"
	"github.com/smartevents/fleet-manager/pkg/orm"
)

type processorCount struct {
	BridgeID string `json:"bridge_id"`
	Total    int64  `json:"total"`
}

// countProcessorOptions defines flags for the `processor count` command.
type countProcessorOptions struct {
	tenantOptions
	metaClient orm.Client
}

func newCountProcessorOptions() *countProcessorOptions {
	return &countProcessorOptions{}
}

func (o *countProcessorOptions) complete(f factory.Factory) error {
	if err := o.tenantOptions.validate(); err != nil {
		return err
	}
	metaClient, err := f.MetaClient(cmdcontext.GetDefaultContext())
	if err != nil {
		return err
	}
	o.metaClient = metaClient
	return nil
}

func (o *countProcessorOptions) run(cmd *cobra.Command) error {
	ctx := o.withTenantLogger(cmdcontext.GetDefaultContext())
	total, err := o.metaClient.CountProcessors(ctx, o.bridgeID, o.customerID)
	if err != nil {
		return err
	}
	return util.JSONPrint(cmd, &processorCount{BridgeID: o.bridgeID, Total: total})
}

// newCmdCountProcessor creates the `processor count` command.
func newCmdCountProcessor(f factory.Factory) *cobra.Command {
	o := newCountProcessorOptions()

	command := &cobra.Command{
		Use:   "count",
		Short: "Count all processors of a bridge",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.complete(f))
			util.CheckErr(o.run(cmd))
		},
	}

	o.tenantOptions.addFlags(command)

	return command
}
