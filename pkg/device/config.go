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
package device

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/consensys/go-qmap/pkg/circuit"
	"github.com/consensys/go-qmap/pkg/mapper"
	"github.com/consensys/go-qmap/pkg/mapper/grid"
	"github.com/consensys/go-qmap/pkg/mapper/linear"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// CHAIN identifies a linear chain of qubits (optionally closed into a ring).
	CHAIN = "chain"
	// GRID identifies a rectangular grid of qubits.
	GRID = "grid"
	// MANUAL identifies a device with all-to-all connectivity, where qubits
	// are placed without swaps.
	MANUAL = "manual"
)

// Config describes the device onto which circuits are mapped, along with the
// parameters of the mapper used.  A typical configuration file looks like
// this:
//
//	topology: grid
//	rows: 3
//	columns: 4
//	storage: 500
//	optimisation_steps: 20
//	seed: 7
type Config struct {
	Topology string `yaml:"topology"`
	// Number of qubits (chain and manual only).
	Qubits int  `yaml:"qubits"`
	Cyclic bool `yaml:"cyclic"`
	// Dimensions (grid only).
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
	// Number of commands buffered before each mapping cycle.
	Storage int `yaml:"storage"`
	// Number of matching permutations tried (grid only).
	OptimisationSteps int `yaml:"optimisation_steps"`
	// Seed for sampling matching permutations (grid only).
	Seed uint64 `yaml:"seed"`
	// Translation from slots to backend ids (grid and manual only).
	BackendIDs map[int]int `yaml:"backend_ids"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Topology:          CHAIN,
		Storage:           mapper.DefaultStorage,
		OptimisationSteps: grid.DefaultOptimisationSteps,
		Seed:              grid.DefaultSeed,
	}
}

// Load reads a configuration file, where any field not given retains its
// default value.
func Load(filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	//
	defer file.Close()
	//
	cfg, err := Read(file)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return cfg, nil
}

// Read a configuration from a given reader.  Unknown fields are rejected.
func Read(reader io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	//
	return cfg, cfg.Validate()
}

// Size returns the number of physical qubits on the device.
func (p *Config) Size() int {
	if p.Topology == GRID {
		return p.Rows * p.Columns
	}
	//
	return p.Qubits
}

// Validate checks this configuration describes a device which can be
// constructed.
func (p *Config) Validate() error {
	switch p.Topology {
	case CHAIN, MANUAL:
		if p.Qubits <= 0 {
			return mapper.NewConfigError("%s requires a positive number of qubits (was %d)", p.Topology, p.Qubits)
		} else if p.Rows != 0 || p.Columns != 0 {
			return mapper.NewConfigError("%s has no rows or columns", p.Topology)
		}
	case GRID:
		if p.Rows <= 0 || p.Columns <= 0 {
			return mapper.NewConfigError("grid requires positive dimensions (was %dx%d)", p.Rows, p.Columns)
		} else if p.Qubits != 0 && p.Qubits != p.Rows*p.Columns {
			return mapper.NewConfigError("grid %dx%d cannot hold %d qubits", p.Rows, p.Columns, p.Qubits)
		} else if p.Cyclic {
			return mapper.NewConfigError("grid cannot be cyclic")
		}
	default:
		return mapper.NewConfigError("unknown topology \"%s\"", p.Topology)
	}
	//
	switch {
	case p.Storage < 0:
		return mapper.NewConfigError("negative storage %d", p.Storage)
	case p.OptimisationSteps < 0:
		return mapper.NewConfigError("negative optimisation steps %d", p.OptimisationSteps)
	case p.Topology == CHAIN && p.BackendIDs != nil:
		return mapper.NewConfigError("chain does not support backend ids")
	case p.Topology == MANUAL && p.BackendIDs != nil:
		return checkBackendIDs(p.Qubits, p.BackendIDs)
	}
	// Backend ids for grids are checked on construction
	return nil
}

func checkBackendIDs(n int, ids map[int]int) error {
	used := make(map[int]bool, len(ids))
	//
	for qubit, id := range ids {
		if qubit < 0 || qubit >= n {
			return mapper.NewConfigError("backend id given for unknown qubit %d", qubit)
		} else if id < 0 || used[id] {
			return mapper.NewConfigError("invalid backend id %d for qubit %d", id, qubit)
		}
		//
		used[id] = true
	}
	//
	if len(ids) != n {
		return mapper.NewConfigError("backend ids given for %d qubits, expected %d", len(ids), n)
	}
	//
	return nil
}

// NewMapper constructs a mapper for this device which forwards mapped commands
// to a given engine.
func (p *Config) NewMapper(next circuit.Engine) (mapper.Mapper, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	//
	log.Debugf("constructing %s mapper for %d qubits", p.Topology, p.Size())
	//
	switch p.Topology {
	case CHAIN:
		return linear.NewMapper(p.Qubits, p.Cyclic, p.Storage, next)
	case GRID:
		return grid.NewMapper(grid.Config{
			Rows:       p.Rows,
			Columns:    p.Columns,
			BackendIDs: p.BackendIDs,
			Storage:    p.Storage,
			Steps:      p.OptimisationSteps,
			Rand:       rand.New(rand.NewPCG(p.Seed, 0)),
		}, next)
	default:
		var place func(int) int
		//
		if p.BackendIDs != nil {
			ids := p.BackendIDs
			place = func(qubit int) int { return ids[qubit] }
		}
		//
		return mapper.NewManualMapper(place, next), nil
	}
}
