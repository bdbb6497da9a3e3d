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
	"strings"

	"github.com/consensys/go-qmap/pkg/circuit/qasm"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ReadCircuitFile parses an OpenQASM file, decompressing it first when the
// filename ends in ".gz" or ".zst".
func ReadCircuitFile(filename string) (*qasm.Circuit, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	//
	defer file.Close()
	//
	reader, err := decompress(filename, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	defer reader.Close()
	//
	c, err := qasm.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return c, nil
}

func decompress(filename string, file io.Reader) (io.ReadCloser, error) {
	switch filepath.Ext(filename) {
	case ".gz":
		return gzip.NewReader(file)
	case ".zst":
		decoder, err := zstd.NewReader(file)
		if err != nil {
			return nil, err
		}
		//
		return decoder.IOReadCloser(), nil
	default:
		return io.NopCloser(file), nil
	}
}

// OutputFilename determines where the mapped version of a given circuit file
// is written, which is alongside the input with any compression suffix
// dropped, e.g. "bell.qasm.gz" becomes "bell.mapped.qasm".
func OutputFilename(filename string) string {
	for _, ext := range []string{".gz", ".zst", ".qasm"} {
		filename = strings.TrimSuffix(filename, ext)
	}
	//
	return filename + ".mapped.qasm"
}
