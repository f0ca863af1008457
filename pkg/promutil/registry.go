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

package promutil

import (
	"net/http"

	"github.com/pingcap/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is a prometheus registry preloaded with the go runtime and
// process collectors.
type Registry struct {
	*prometheus.Registry
}

// NewRegistry return a new Registry
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Registry{Registry: reg}
}

// HTTPHandlerForMetric return http.Handler for prometheus metric
func (r *Registry) HTTPHandlerForMetric() http.Handler {
	return promhttp.HandlerFor(r, promhttp.HandlerOpts{})
}

// WriteToTextfile writes all metrics in the text format to path, for the
// textfile collector of a node exporter. The file is replaced atomically.
func (r *Registry) WriteToTextfile(path string) error {
	return errors.Trace(prometheus.WriteToTextfile(path, r))
}
