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
package qasm

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Matches expressions such as pi, 2pi, 2*pi, pi/2, 3*pi/4 or -pi/2.
var piRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// Fractions of pi which are written symbolically.
var piFractions = []struct {
	value float64
	text  string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

// ParseParam parses a single gate parameter, which is either a plain number
// or a multiple of pi.
func ParseParam(text string) (float64, error) {
	text = strings.TrimSpace(text)
	//
	if val, err := strconv.ParseFloat(text, 64); err == nil {
		return val, nil
	}
	//
	matches := piRegex.FindStringSubmatch(strings.ToLower(text))
	if matches == nil {
		return 0, fmt.Errorf("invalid parameter \"%s\"", text)
	}
	//
	var (
		coeff = 1.0
		err   error
	)
	//
	if matches[2] != "" {
		if coeff, err = strconv.ParseFloat(matches[2], 64); err != nil {
			return 0, fmt.Errorf("invalid coefficient \"%s\"", matches[2])
		}
	}
	//
	result := coeff * math.Pi
	//
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, fmt.Errorf("invalid denominator \"%s\"", matches[3])
		}
		//
		result /= denom
	}
	//
	if matches[1] == "-" {
		result = -result
	}
	//
	return result, nil
}

// FormatParam renders a gate parameter, using pi notation for common fractions.
func FormatParam(val float64) string {
	for _, frac := range piFractions {
		if math.Abs(val-frac.value) < 1e-10 {
			return frac.text
		} else if math.Abs(val+frac.value) < 1e-10 {
			return "-" + frac.text
		}
	}
	//
	return strconv.FormatFloat(val, 'g', -1, 64)
}

func parseParams(text string) ([]float64, error) {
	var params []float64
	//
	for _, part := range strings.Split(text, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		//
		val, err := ParseParam(part)
		if err != nil {
			return nil, err
		}
		//
		params = append(params, val)
	}
	//
	return params, nil
}
