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
	"github.com/smartevents/fleet-manager/pkg/orm/model"
)

// listProcessorOptions defines flags for the `processor list` command.
type listProcessorOptions struct {
	tenantOptions
	metaClient orm.Client

	page     int
	size     int
	names    []string
	statuses []string
	types    []string

	info model.QueryProcessorResourceInfo
}

// newListProcessorOptions creates new options for the `processor list` command.
func newListProcessorOptions() *listProcessorOptions {
	return &listProcessorOptions{}
}

// addFlags receives a *cobra.Command reference and binds
// flags related to template printing to it.
func (o *listProcessorOptions) addFlags(cmd *cobra.Command) {
	o.tenantOptions.addFlags(cmd)
	cmd.Flags().IntVar(&o.page, "page", 0, "Zero based page number")
	cmd.Flags().IntVar(&o.size, "size", model.DefaultPageSize, "Page size")
	cmd.Flags().StringArrayVar(&o.names, "name", nil, "Substring of the processor name, repeatable")
	cmd.Flags().StringArrayVar(&o.statuses, "status", nil, "Processor status, repeatable")
	cmd.Flags().StringArrayVar(&o.types, "type", nil, "Processor type (source|sink), repeatable")
}

// complete adapts from the command line args to the data and client required.
func (o *listProcessorOptions) complete(f factory.Factory) error {
	if err := o.tenantOptions.validate(); err != nil {
		return err
	}

	filter, err := buildFilter(o.names, o.statuses, o.types)
	if err != nil {
		return err
	}
	o.info = model.NewQueryProcessorResourceInfo(o.page, o.size, filter)
	if err := o.info.Validate(); err != nil {
		return err
	}

	metaClient, err := f.MetaClient(cmdcontext.GetDefaultContext())
	if err != nil {
		return err
	}
	o.metaClient = metaClient
	return nil
}

// run runs the `processor list` command.
func (o *listProcessorOptions) run(cmd *cobra.Command) error {
	ctx := o.withTenantLogger(cmdcontext.GetDefaultContext())
	res, err := o.metaClient.QueryProcessors(ctx, o.bridgeID, o.customerID, o.info)
	if err != nil {
		return err
	}
	return util.JSONPrint(cmd, res)
}

// buildFilter parses the filter flags, every value is one criterion.
func buildFilter(names, statuses, types []string) (model.ProcessorFilter, error) {
	criteria := make([]model.Criterion, 0, len(names)+len(statuses)+len(types))
	for _, name := range names {
		criteria = append(criteria, model.ByName(name))
	}
	for _, s := range statuses {
		st, err := model.ParseManagedResourceStatus(s)
		if err != nil {
			return model.ProcessorFilter{}, err
		}
		criteria = append(criteria, model.ByStatus(st))
	}
	for _, s := range types {
		tp, err := model.ParseProcessorType(s)
		if err != nil {
			return model.ProcessorFilter{}, err
		}
		criteria = append(criteria, model.ByType(tp))
	}
	return model.NewProcessorFilter(criteria...), nil
}

// newCmdListProcessor creates the `processor list` command.
func newCmdListProcessor(f factory.Factory) *cobra.Command {
	o := newListProcessorOptions()

	command := &cobra.Command{
		Use:   "list",
		Short: "List one page of the processors of a bridge, newest first",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.complete(f))
			util.CheckErr(o.run(cmd))
		},
	}

	o.addFlags(command)

	return command
}
