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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/consensys/go-qmap/pkg/circuit"
	"github.com/consensys/go-qmap/pkg/circuit/qasm"
	"github.com/consensys/go-qmap/pkg/device"
	"github.com/consensys/go-qmap/pkg/mapper"
	"github.com/consensys/go-qmap/pkg/mapper/grid"
	"github.com/consensys/go-qmap/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var mapCmd = &cobra.Command{
	Use:   "map [flags] circuit_file(s)",
	Short: "map circuits onto a nearest-neighbour device.",
	Long: `Map one or more OpenQASM circuits onto a given device, inserting swaps such
	that every two qubit gate acts on neighbouring physical qubits.  The mapped
	circuit is written alongside each input, unless an output file is given.
	Inputs compressed with gzip (".gz") or zstd (".zst") are supported.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := readMapConfig(cmd)
		cfg.write = true
		cfg.output = GetString(cmd, "output")
		//
		if cfg.output != "" && len(args) != 1 {
			fmt.Println("output file requires exactly one circuit")
			os.Exit(1)
		}
		//
		runMapping(cfg, args)
	},
}

// mapConfig encapsulates the parameters of a mapping run.
type mapConfig struct {
	// Device onto which circuits are mapped.
	device device.Config
	// Write the mapped circuits.
	write bool
	// Output file to use (when mapping a single circuit).
	output string
	// File to which metrics are written (if any).
	metrics string
	// Print the initial placement of each circuit.
	layout bool
	// Number of circuits mapped concurrently.
	jobs int
}

// mapResult summarises the mapping of a single circuit.
type mapResult struct {
	filename string
	// Number of logical qubits.
	qubits int
	// Number of gates in the input circuit.
	gates int
	// Number of gates in the mapped circuit, including swaps.
	mapped int
	// Initial placement of logical qubits onto backend ids.
	placement mapper.Mapping
	stats     *mapper.Statistics
	elapsed   time.Duration
	// Device used.
	device device.Config
}

// Construct the configuration of a mapping run, where flags override anything
// given in the device file.
func readMapConfig(cmd *cobra.Command) mapConfig {
	var cfg = mapConfig{device: device.Default()}
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	if filename := GetString(cmd, "device"); filename != "" {
		dev, err := device.Load(filename)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		cfg.device = dev
	}
	//
	flags := cmd.Flags()
	//
	if flags.Changed("topology") {
		cfg.device.Topology = GetString(cmd, "topology")
	}
	//
	if flags.Changed("qubits") {
		cfg.device.Qubits = GetInt(cmd, "qubits")
	}
	//
	if flags.Changed("cyclic") {
		cfg.device.Cyclic = GetFlag(cmd, "cyclic")
	}
	//
	if flags.Changed("rows") {
		cfg.device.Rows = GetInt(cmd, "rows")
	}
	//
	if flags.Changed("columns") {
		cfg.device.Columns = GetInt(cmd, "columns")
	}
	//
	if flags.Changed("storage") {
		cfg.device.Storage = GetInt(cmd, "storage")
	}
	//
	if flags.Changed("steps") {
		cfg.device.OptimisationSteps = GetInt(cmd, "steps")
	}
	//
	if flags.Changed("seed") {
		cfg.device.Seed = GetUint64(cmd, "seed")
	}
	//
	cfg.metrics = GetString(cmd, "metrics-file")
	cfg.layout = GetFlag(cmd, "show-layout")
	cfg.jobs = GetInt(cmd, "jobs")
	//
	return cfg
}

// Map every circuit, then report the statistics gathered.
func runMapping(cfg mapConfig, filenames []string) {
	var metrics *Metrics
	//
	if cfg.metrics != "" {
		metrics = NewMetrics()
	}
	//
	results, err := mapFiles(cfg, filenames, metrics)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	if err := printStatistics(os.Stdout, results); err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
	//
	if cfg.layout {
		for _, result := range results {
			fmt.Printf("%s:\n%s\n", result.filename, RenderLayout(result.device, result.placement))
		}
	}
	//
	if metrics != nil {
		if err := metrics.Write(cfg.metrics); err != nil {
			fmt.Println(err)
			os.Exit(4)
		}
	}
}

// Map a set of circuits concurrently, returning their results in the order
// given.
func mapFiles(cfg mapConfig, filenames []string, metrics *Metrics) ([]mapResult, error) {
	var (
		results = make([]mapResult, len(filenames))
		group   errgroup.Group
	)
	//
	if cfg.jobs > 0 {
		group.SetLimit(cfg.jobs)
	}
	//
	for i, filename := range filenames {
		group.Go(func() error {
			result, err := mapFile(cfg, filename, metrics)
			if err != nil {
				return err
			}
			//
			results[i] = *result
			//
			return nil
		})
	}
	//
	return results, group.Wait()
}

// Map a single circuit, writing the mapped circuit if requested.
func mapFile(cfg mapConfig, filename string, metrics *Metrics) (*mapResult, error) {
	var (
		stats   = util.NewPerfStats()
		out     io.Writer
		outfile string
	)
	//
	c, err := ReadCircuitFile(filename)
	if err != nil {
		return nil, err
	}
	//
	dev := cfg.device
	// Size chains to fit the circuit, unless told otherwise.
	if dev.Topology != device.GRID && dev.Qubits == 0 {
		dev.Qubits = max(c.NumQubits, 1)
	}
	//
	if dev.Size() < c.NumQubits {
		return nil, fmt.Errorf("%s: circuit has %d qubits, but device only %d", filename, c.NumQubits, dev.Size())
	}
	//
	if cfg.write {
		if outfile = cfg.output; outfile == "" {
			outfile = OutputFilename(filename)
		}
		//
		file, err := os.Create(outfile)
		if err != nil {
			return nil, err
		}
		//
		defer file.Close()
		//
		out = file
	}
	//
	result, err := mapCircuit(dev, filename, c, out, metrics)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	result.elapsed = stats.Elapsed()
	stats.Log(fmt.Sprintf("Mapping %s", filename))
	//
	if outfile != "" {
		log.Debugf("wrote %s", outfile)
	}
	//
	return result, nil
}

// Map a parsed circuit onto a given device, writing the mapped circuit to a
// given writer (if not nil).
func mapCircuit(dev device.Config, name string, c *qasm.Circuit, out io.Writer,
	metrics *Metrics) (*mapResult, error) {
	var (
		placement = &placementRecorder{placement: make(mapper.Mapping)}
		counter   = &gateCounter{}
		engines   = []circuit.Engine{placement, counter}
	)
	//
	if out != nil {
		engines = append(engines, qasm.NewWriter(out, physicalQubits(dev), max(c.NumBits, c.NumQubits)))
	}
	//
	m, err := dev.NewMapper(tee(engines))
	if err != nil {
		return nil, err
	}
	//
	if metrics != nil {
		m.Statistics().AddObserver(metrics.Observer(name, c.NumQubits))
	}
	//
	if err := m.Receive(c.Commands); err != nil {
		return nil, err
	}
	//
	return &mapResult{
		filename:  name,
		qubits:    c.NumQubits,
		gates:     countGates(c.Commands),
		mapped:    counter.gates,
		placement: placement.placement,
		stats:     m.Statistics(),
		device:    dev,
	}, nil
}

// Determine the number of physical qubits which need declaring in the mapped
// circuit, since backend ids need not be contiguous.
func physicalQubits(dev device.Config) int {
	n := dev.Size()
	//
	for _, id := range dev.BackendIDs {
		n = max(n, id+1)
	}
	//
	return n
}

func countGates(cmds []circuit.Command) int {
	count := 0
	//
	for _, cmd := range cmds {
		switch cmd.Gate.Kind {
		case circuit.GENERIC, circuit.SWAP, circuit.MEASURE:
			count++
		}
	}
	//
	return count
}

// Construct an engine which forwards every command to each of a set of engines.
func tee(engines []circuit.Engine) circuit.Engine {
	return circuit.EngineFunc(func(cmds []circuit.Command) error {
		for _, engine := range engines {
			if err := engine.Receive(cmds); err != nil {
				return err
			}
		}
		//
		return nil
	})
}

// Records where each logical qubit is first allocated.
type placementRecorder struct {
	placement mapper.Mapping
}

func (p *placementRecorder) Receive(cmds []circuit.Command) error {
	for _, cmd := range cmds {
		if cmd.Gate.Kind != circuit.ALLOCATE {
			continue
		} else if id, ok := circuit.LogicalQubitID(cmd); ok && !p.placement.Contains(id) {
			p.placement[id] = cmd.Qubit()
		}
	}
	//
	return nil
}

// Counts the gates leaving a mapper.
type gateCounter struct {
	gates int
}

func (p *gateCounter) Receive(cmds []circuit.Command) error {
	p.gates += countGates(cmds)
	return nil
}

func init() {
	rootCmd.AddCommand(mapCmd)
	addDeviceFlags(mapCmd)
	mapCmd.Flags().StringP("output", "o", "", "specify output file (when mapping a single circuit)")
}

// Flags shared by all commands which map circuits.
func addDeviceFlags(cmd *cobra.Command) {
	cmd.Flags().String("device", "", "read device configuration from a YAML file")
	cmd.Flags().String("topology", device.CHAIN, "device topology (chain, grid or manual)")
	cmd.Flags().Int("qubits", 0, "number of qubits in a chain (defaults to the circuit size)")
	cmd.Flags().Bool("cyclic", false, "close the chain into a ring")
	cmd.Flags().Int("rows", 0, "number of rows in a grid")
	cmd.Flags().Int("columns", 0, "number of columns in a grid")
	cmd.Flags().Int("storage", mapper.DefaultStorage, "number of commands buffered before mapping")
	cmd.Flags().Int("steps", grid.DefaultOptimisationSteps, "number of matching permutations tried on a grid")
	cmd.Flags().Uint64("seed", grid.DefaultSeed, "seed for sampling matching permutations")
	cmd.Flags().String("metrics-file", "", "write statistics in the Prometheus text format")
	cmd.Flags().Bool("show-layout", false, "print the initial placement of each circuit")
	cmd.Flags().Int("jobs", 0, "number of circuits mapped concurrently (0 for no limit)")
}
