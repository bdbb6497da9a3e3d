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
package termio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Table_01(t *testing.T) {
	tbl := NewTablePrinter(2, 2)
	tbl.SetRow(0, "Swaps", "12")
	tbl.SetRow(1, "Depth", "3")
	//
	assert.Equal(t, " Swaps | 12 |\n Depth |  3 |\n", check_Print(t, tbl))
	assert.Equal(t, "3", tbl.Get(1, 1))
	assert.Equal(t, uint(2), tbl.Width())
}

func Test_Table_02(t *testing.T) {
	tbl := NewTablePrinter(1, 2)
	tbl.Set(0, 0, "circuit.qasm")
	tbl.Set(0, 1, "x")
	tbl.SetMaxWidths(6)
	//
	assert.Equal(t, " circ.. |\n      x |\n", check_Print(t, tbl))
}

func Test_Table_03(t *testing.T) {
	tbl := NewTablePrinter(1, 1)
	tbl.Set(0, 0, "ok")
	tbl.SetEscape(0, 0, AnsiEscape{}.Bold().FgColour(TERM_GREEN))
	//
	assert.Equal(t, "\033[1;32m ok\033[0m |\n", check_Print(t, tbl))
	//
	tbl.AnsiEscapes(false)
	assert.Equal(t, " ok |\n", check_Print(t, tbl))
}

func Test_Escape_01(t *testing.T) {
	assert.Equal(t, "", AnsiEscape{}.Build())
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
	assert.Equal(t, "\033[31m", AnsiEscape{}.FgColour(TERM_RED).Build())
}

func Test_Table_04(t *testing.T) {
	assert.Panics(t, func() { NewTablePrinter(2, 1).SetRow(0, "a") })
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Print(t *testing.T, tbl *TablePrinter) string {
	t.Helper()
	//
	var out strings.Builder
	//
	require.NoError(t, tbl.Print(&out))
	//
	return out.String()
}
