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
	"fmt"
	"strings"
)

// TERM_RED represents red
const TERM_RED = uint(1)

// TERM_GREEN represents green
const TERM_GREEN = uint(2)

// TERM_YELLOW represents yellow
const TERM_YELLOW = uint(3)

// TERM_BLUE represents blue
const TERM_BLUE = uint(4)

// TERM_CYAN represents cyan
const TERM_CYAN = uint(6)

// AnsiEscape is a sequence of SGR parameters, such as bold or a foreground
// colour, which together form a single ANSI escape.
type AnsiEscape []uint

// ResetAnsiEscape cancels all formatting.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{0}
}

// Bold adds bold text to this escape.
func (p AnsiEscape) Bold() AnsiEscape {
	return append(p, 1)
}

// FgColour adds a foreground colour to this escape.
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	return append(p, 30+col)
}

// Build constructs the final escape, which is empty if no parameters were
// given.
func (p AnsiEscape) Build() string {
	if len(p) == 0 {
		return ""
	}
	//
	params := make([]string, len(p))
	//
	for i, param := range p {
		params[i] = fmt.Sprintf("%d", param)
	}
	//
	return fmt.Sprintf("\033[%sm", strings.Join(params, ";"))
}
