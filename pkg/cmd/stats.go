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
	"path/filepath"

	"github.com/consensys/go-qmap/pkg/util/termio"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] circuit_file(s)",
	Short: "report the cost of mapping circuits onto a device.",
	Long: `Map one or more OpenQASM circuits onto a given device, and report how many
	swaps were needed without writing the mapped circuits.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		runMapping(readMapConfig(cmd), args)
	},
}

type statSummariser struct {
	name    string
	summary func(mapResult) string
}

var statSummarisers = []statSummariser{
	intSummariser("Qubits", func(r mapResult) int { return r.qubits }),
	intSummariser("Device qubits", func(r mapResult) int { return r.device.Size() }),
	intSummariser("Gates (input)", func(r mapResult) int { return r.gates }),
	intSummariser("Gates (mapped)", func(r mapResult) int { return r.mapped }),
	intSummariser("Mappings", func(r mapResult) int { return int(r.stats.NumMappings) }),
	intSummariser("Swaps", func(r mapResult) int { return int(r.stats.TotalSwaps()) }),
	intSummariser("Max swap depth", func(r mapResult) int { return int(r.stats.MaxDepth()) }),
	{"Time", func(r mapResult) string { return fmt.Sprintf("%0.3fs", r.elapsed.Seconds()) }},
}

func intSummariser(name string, fn func(mapResult) int) statSummariser {
	return statSummariser{name, func(r mapResult) string { return fmt.Sprintf("%d", fn(r)) }}
}

// Print a table summarising the mapping of each circuit, with one column per
// circuit.
func printStatistics(out io.Writer, results []mapResult) error {
	var (
		n   = 1 + uint(len(results))
		m   = 1 + uint(len(statSummarisers))
		tbl = termio.NewTablePrinter(n, m)
	)
	//
	tbl.Set(0, 0, "")
	//
	for j, result := range results {
		tbl.Set(uint(j+1), 0, filepath.Base(result.filename))
		tbl.SetEscape(uint(j+1), 0, termio.AnsiEscape{}.Bold())
	}
	//
	for i, summariser := range statSummarisers {
		row := uint(i + 1)
		tbl.Set(0, row, summariser.name)
		//
		for j, result := range results {
			tbl.Set(uint(j+1), row, summariser.summary(result))
		}
	}
	// Highlight circuits which required swaps
	for j, result := range results {
		if result.stats.NumMappings > 0 {
			tbl.SetEscape(uint(j+1), m-3, termio.AnsiEscape{}.FgColour(termio.TERM_YELLOW))
		}
	}
	//
	if file, ok := out.(*os.File); ok {
		tbl.AnsiEscapes(termio.IsTerminal(file))
		tbl.SetMaxWidths(max(termio.Width(file)/n, 8) - 3)
	} else {
		tbl.AnsiEscapes(false)
	}
	//
	return tbl.Print(out)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addDeviceFlags(statsCmd)
}
