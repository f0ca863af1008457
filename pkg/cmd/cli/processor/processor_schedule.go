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
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cmdcontext "github.com/smartevents/fleet-manager/pkg/cmd/context"
	"github.com/smartevents/fleet-manager/pkg/cmd/factory"
	"github.com/smartevents/fleet-manager/pkg/cmd/util"
	"github.com/smartevents/fleet-manager/pkg/errors"
	"github.com/smartevents/fleet-manager/pkg/orm"
)

// scheduleProcessorOptions defines flags for the `processor schedule` command.
type scheduleProcessorOptions struct {
	metaClient orm.Client

	shardID string
}

func newScheduleProcessorOptions() *scheduleProcessorOptions {
	return &scheduleProcessorOptions{}
}

func (o *scheduleProcessorOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.shardID, "shard-id", "", "Shard to scan, defaults to the shard of the configuration file")
}

func (o *scheduleProcessorOptions) complete(f factory.Factory) error {
	if o.shardID == "" {
		cfg, err := f.GetConfig()
		if err != nil {
			return err
		}
		o.shardID = cfg.ShardID
	}
	if o.shardID == "" {
		return errors.ErrInvalidCliParameter.GenWithStackByArgs("shard-id is empty")
	}

	metaClient, err := f.MetaClient(cmdcontext.GetDefaultContext())
	if err != nil {
		return err
	}
	o.metaClient = metaClient
	return nil
}

func (o *scheduleProcessorOptions) run(cmd *cobra.Command) error {
	ctx := cmdcontext.GetDefaultContext()
	processors, err := o.metaClient.QueryProcessorsReadyForAction(ctx, o.shardID)
	if err != nil {
		return err
	}
	log.Debug("processors ready for action",
		zap.String("shard_id", o.shardID), zap.Int("count", len(processors)))
	return util.JSONPrint(cmd, processors)
}

// newCmdScheduleProcessor creates the `processor schedule` command.
func newCmdScheduleProcessor(f factory.Factory) *cobra.Command {
	o := newScheduleProcessorOptions()

	command := &cobra.Command{
		Use:   "schedule",
		Short: "List the processors of a shard which can be deployed or removed now",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.complete(f))
			util.CheckErr(o.run(cmd))
		},
	}

	o.addFlags(command)

	return command
}
