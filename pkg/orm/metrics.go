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
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opQueryProcessors        = "query_processors"
	opCountProcessors        = "count_processors"
	opGetProcessorByName     = "get_processor_by_name"
	opGetProcessorByCustomer = "get_processor_by_customer"
	opProcessorsReady        = "query_processors_ready_for_action"
)

var (
	queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smartevents",
			Subsystem: "metastore",
			Name:      "query_duration_seconds",
			Help:      "Bucketed histogram of processor store query duration",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.0, 16), // 1ms~32s
		}, []string{"op"})

	queryErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartevents",
			Subsystem: "metastore",
			Name:      "query_errors_total",
			Help:      "Total count of failed processor store queries",
		}, []string{"op"})
)

// InitMetrics registers all metrics in this file
func InitMetrics(registry *prometheus.Registry) {
	registry.MustRegister(queryDuration)
	registry.MustRegister(queryErrors)
}

// observeOp starts timing op, the returned function records the duration and
// counts err unless it reports an absent record.
func observeOp(op string) func(err error) {
	start := time.Now()
	return func(err error) {
		queryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if err != nil && !IsNotFoundError(err) {
			queryErrors.WithLabelValues(op).Inc()
		}
	}
}
