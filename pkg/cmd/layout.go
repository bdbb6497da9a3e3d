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
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/consensys/go-qmap/pkg/device"
	"github.com/consensys/go-qmap/pkg/mapper"
)

// Maximum number of cells rendered per line for chains.
const layoutWidth = 12

var (
	occupiedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Foreground(lipgloss.Color("#73daca")).
			Width(5).
			Align(lipgloss.Center)

	emptyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#565f89")).
			Foreground(lipgloss.Color("#565f89")).
			Width(5).
			Align(lipgloss.Center)
)

// RenderLayout draws the physical qubits of a device, showing which logical
// qubit (if any) is placed on each.  Grids are drawn row by row, whilst chains
// are drawn left to right.  Each cell shows the logical qubit above the
// backend id of its physical qubit.
func RenderLayout(dev device.Config, placement mapper.Mapping) string {
	var (
		inverse = placement.Inverse()
		columns = layoutWidth
		lines   []string
		cells   []string
	)
	//
	if dev.Topology == device.GRID {
		columns = dev.Columns
	}
	//
	for slot := 0; slot < dev.Size(); slot++ {
		backend := slot
		//
		if id, ok := dev.BackendIDs[slot]; ok {
			backend = id
		}
		//
		if qubit, ok := inverse[backend]; ok {
			cells = append(cells, occupiedStyle.Render(fmt.Sprintf("q%d\n%d", qubit, backend)))
		} else {
			cells = append(cells, emptyStyle.Render(fmt.Sprintf("-\n%d", backend)))
		}
		//
		if len(cells) == columns || slot == dev.Size()-1 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	//
	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, lines...), "\n")
}
