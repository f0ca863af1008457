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
	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/orm"
	"github.com/smartevents/fleet-manager/pkg/orm/model"
)

// getProcessorOptions defines flags for the `processor get` command.
type getProcessorOptions struct {
	tenantOptions
	metaClient orm.Client

	processorID string
	name        string
}

func newGetProcessorOptions() *getProcessorOptions {
	return &getProcessorOptions{}
}

func (o *getProcessorOptions) addFlags(cmd *cobra.Command) {
	o.tenantOptions.addFlags(cmd)
	cmd.Flags().StringVarP(&o.processorID, "processor-id", "p", "", "Processor ID")
	cmd.Flags().StringVar(&o.name, "name", "", "Exact processor name")
}

func (o *getProcessorOptions) complete(f factory.Factory) error {
	if err := o.tenantOptions.validate(); err != nil {
		return err
	}
	if (o.processorID == "") == (o.name == "") {
		return errors.ErrInvalidCliParameter.GenWithStackByArgs("exactly one of processor-id and name is required")
	}
	metaClient, err := f.MetaClient(cmdcontext.GetDefaultContext())
	if err != nil {
		return err
	}
	o.metaClient = metaClient
	return nil
}

func (o *getProcessorOptions) run(cmd *cobra.Command) error {
	ctx := o.withTenantLogger(cmdcontext.GetDefaultContext())

	var (
		processor *model.Processor
		err       error
	)
	if o.processorID != "" {
		processor, err = o.metaClient.GetProcessorByIDAndCustomer(ctx, o.bridgeID, o.processorID, o.customerID)
	} else {
		// a lookup by name is scoped to the bridge only, check the owner first
		if _, err = o.metaClient.GetBridgeByIDAndCustomer(ctx, o.bridgeID, o.customerID); err == nil {
			processor, err = o.metaClient.GetProcessorByName(ctx, o.bridgeID, o.name)
		}
	}
	if err != nil {
		return err
	}
	return util.JSONPrint(cmd, processor)
}

// newCmdGetProcessor creates the `processor get` command.
func newCmdGetProcessor(f factory.Factory) *cobra.Command {
	o := newGetProcessorOptions()

	command := &cobra.Command{
		Use:   "get",
		Short: "Get a processor of a bridge by ID or by name",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.complete(f))
			util.CheckErr(o.run(cmd))
		},
	}

	o.addFlags(command)

	return command
}
