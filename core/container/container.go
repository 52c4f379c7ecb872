// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Flat name -> array mapping handed to whatever writes the output container file. Nothing in here
// knows about acquisitions, it only describes named numeric or string arrays and their dimensions.
package container

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pixlise/specimiq/core/utils"
)

// Entry - one named array. Data is a flat row-major slice of []float64, []float32, []uint8 or
// []string and the product of Dims must equal its length.
type Entry struct {
	Dims []uint64
	Data interface{}
}

// Len - number of elements in Data, -1 if Data is an unsupported type
func (e Entry) Len() int {
	switch d := e.Data.(type) {
	case []float64:
		return len(d)
	case []float32:
		return len(d)
	case []uint8:
		return len(d)
	case []string:
		return len(d)
	}
	return -1
}

// Validate - checks the data type is supported and matches Dims
func (e Entry) Validate() error {
	n := e.Len()
	if n < 0 {
		return fmt.Errorf("unsupported data type %T", e.Data)
	}
	if want := utils.Product(e.Dims); uint64(n) != want {
		return fmt.Errorf("dims %v need %v elements, got %v", e.Dims, want, n)
	}
	return nil
}

// Writer - writes all entries to a single file at path, replacing anything already there
type Writer interface {
	WriteContainer(path string, entries map[string]Entry) error
}

// SortedNames - entry names in a stable order so output files are reproducible
func SortedNames(entries map[string]Entry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MemWriter - keeps what it was asked to write, keyed by path. For tests.
type MemWriter struct {
	mutex   sync.Mutex
	Written map[string]map[string]Entry
}

func (w *MemWriter) WriteContainer(path string, entries map[string]Entry) error {
	for _, name := range SortedNames(entries) {
		if err := entries[name].Validate(); err != nil {
			return fmt.Errorf("%v: %v", name, err)
		}
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.Written == nil {
		w.Written = map[string]map[string]Entry{}
	}

	// Replace, never merge, same as a real file being truncated
	w.Written[path] = entries
	return nil
}
