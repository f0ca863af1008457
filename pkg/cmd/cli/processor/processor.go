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
	"context"

	"github.com/spf13/cobra"

	"github.com/smartevents/fleet-manager/pkg/cmd/factory"
	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/logutil"
	"github.com/smartevents/fleet-manager/pkg/tenant"
)

// NewCmdProcessor creates the `processor` command.
func NewCmdProcessor(f factory.Factory) *cobra.Command {
	command := &cobra.Command{
		Use:   "processor",
		Short: "Query processors of a bridge and the processors ready for action on a shard",
	}
	command.AddCommand(newCmdListProcessor(f))
	command.AddCommand(newCmdCountProcessor(f))
	command.AddCommand(newCmdGetProcessor(f))
	command.AddCommand(newCmdScheduleProcessor(f))

	return command
}

// tenantOptions are the flags scoping a command to a bridge of a customer.
type tenantOptions struct {
	customerID     string
	organisationID string
	bridgeID       string
}

func (o *tenantOptions) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.customerID, "customer-id", "", "Customer owning the bridge")
	cmd.PersistentFlags().StringVar(&o.organisationID, "organisation-id", "", "Organisation of the customer")
	cmd.PersistentFlags().StringVarP(&o.bridgeID, "bridge-id", "b", "", "Bridge ID")
	_ = cmd.MarkPersistentFlagRequired("customer-id")
	_ = cmd.MarkPersistentFlagRequired("bridge-id")
}

func (o *tenantOptions) validate() error {
	customer := tenant.NewCustomerInfo(o.customerID, o.organisationID)
	if customer.IsEmpty() {
		return errors.ErrInvalidCliParameter.GenWithStackByArgs("customer-id is empty")
	}
	if o.bridgeID == "" {
		return errors.ErrInvalidCliParameter.GenWithStackByArgs("bridge-id is empty")
	}
	return nil
}

// withTenantLogger tags the statements run under ctx with the tenant scope.
func (o *tenantOptions) withTenantLogger(ctx context.Context) context.Context {
	customer := tenant.NewCustomerInfo(o.customerID, o.organisationID)
	return logutil.NewContextWithLogger(ctx, logutil.NewLogger4Tenant(customer, o.bridgeID))
}
