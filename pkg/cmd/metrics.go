// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"github.com/consensys/go-qmap/pkg/mapper"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the statistics of mapping runs for export in the
// Prometheus text format, labelled by circuit.
type Metrics struct {
	registry *prometheus.Registry
	mappings *prometheus.CounterVec
	swaps    *prometheus.HistogramVec
	depth    *prometheus.HistogramVec
	qubits   *prometheus.GaugeVec
}

// NewMetrics constructs a fresh set of metrics, registered with their own
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mappings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qmap_mappings_total",
			Help: "Number of mapping cycles which required swaps",
		}, []string{"circuit"}),
		swaps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qmap_swaps_per_mapping",
			Help:    "Number of swaps inserted by each mapping cycle",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"circuit"}),
		depth: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qmap_swap_depth",
			Help:    "Depth of the swap network inserted by each mapping cycle",
			Buckets: prometheus.LinearBuckets(1, 1, 16),
		}, []string{"circuit"}),
		qubits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "qmap_logical_qubits",
			Help: "Number of logical qubits in a circuit",
		}, []string{"circuit"}),
	}
	//
	m.registry.MustRegister(m.mappings, m.swaps, m.depth, m.qubits)
	//
	return m
}

// Observer returns an observer which records the mapping cycles of a given
// circuit.
func (p *Metrics) Observer(circuit string, nqubits int) mapper.Observer {
	p.qubits.WithLabelValues(circuit).Set(float64(nqubits))
	//
	return &circuitObserver{
		p.mappings.WithLabelValues(circuit),
		p.swaps.WithLabelValues(circuit),
		p.depth.WithLabelValues(circuit),
	}
}

// Write all metrics to a given file, such that it can be picked up by the
// textfile collector of a node exporter.
func (p *Metrics) Write(filename string) error {
	return prometheus.WriteToTextfile(filename, p.registry)
}

type circuitObserver struct {
	mappings prometheus.Counter
	swaps    prometheus.Observer
	depth    prometheus.Observer
}

func (p *circuitObserver) ObserveMapping(swaps uint, depth uint) {
	p.mappings.Inc()
	p.swaps.Observe(float64(swaps))
	p.depth.Observe(float64(depth))
}
