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

package cmd

import (
	"os"

	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartevents/fleet-manager/pkg/cmd/cli/processor"
	"github.com/smartevents/fleet-manager/pkg/cmd/factory"
	"github.com/smartevents/fleet-manager/pkg/cmd/util"
	"github.com/smartevents/fleet-manager/pkg/logutil"
	"github.com/smartevents/fleet-manager/pkg/orm"
	"github.com/smartevents/fleet-manager/pkg/promutil"
	"github.com/smartevents/fleet-manager/pkg/version"
)

// options defines flags of the root command which are not about the store.
type options struct {
	metricsFile string

	registry *promutil.Registry
}

func (o *options) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.metricsFile, "metrics-file", "",
		"Write the store query metrics to this file on exit, in prometheus text format")
}

// initMetrics registers the store metrics if they are to be written.
func (o *options) initMetrics() {
	if o.metricsFile == "" {
		return
	}
	o.registry = promutil.NewRegistry()
	orm.InitMetrics(o.registry.Registry)
}

func (o *options) flushMetrics() {
	if o.registry == nil {
		return
	}
	if err := o.registry.WriteToTextfile(o.metricsFile); err != nil {
		log.Warn("write metrics file failed", zap.String("file", o.metricsFile), zap.Error(err))
	}
}

// NewCmd creates the root command.
func NewCmd() *cobra.Command {
	o := &options{}
	cf := factory.NewClientFlags()
	f := factory.NewFactory(cf)

	cmds := &cobra.Command{
		Use:   "processor-ctl",
		Short: "Query the processors of the smart events fleet manager",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Here we will initialize the logging configuration and set the current default context.
			cancel := util.InitCmd(cmd, &logutil.Config{Level: cf.GetLogLevel()})
			util.InitSignalHandling(cancel)
			version.LogVersionInfo()
			o.initMetrics()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			o.flushMetrics()
			util.CheckErr(f.Close())
		},
	}

	o.addFlags(cmds)
	cf.AddFlags(cmds)
	cmds.AddCommand(processor.NewCmdProcessor(f))
	cmds.AddCommand(newCmdVersion())

	return cmds
}

// newCmdVersion creates the `version` command.
func newCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Output version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(version.GetRawInfo())
		},
	}
}

// Run runs the root command.
func Run() {
	cmd := NewCmd()
	cmd.SetOut(os.Stdout)
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln(err)
		os.Exit(1)
	}
}
