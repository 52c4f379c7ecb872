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

package specimiq

import (
	"fmt"
	"strings"

	"github.com/pixlise/specimiq/core/utils"
)

// MetadataKeys - the only keys pulled out of the acquisition's metadata XML, in output order
var MetadataKeys = []string{"datetime", "datacube_angle", "integration_time"}

// Metadata - key to value, nil where the metadata file has no line for the key
type Metadata map[string]*string

// Get - value for key, false if it wasn't found
func (m Metadata) Get(key string) (string, bool) {
	value, ok := m[key]
	if !ok || value == nil {
		return "", false
	}
	return *value, true
}

// ReadTagFile - all lines of a tag-based text file with surrounding whitespace removed
func ReadTagFile(path string) ([]string, error) {
	lines, err := utils.ReadTrimmedFileLines(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %v", path, err)
	}
	return lines, nil
}

// Query - value of the first line that mentions key. The metadata files put one element per
// line, eg:
//
//	<key field="datetime">2019-07-15 12:31:18</key>
//
// so the value is whatever follows the last '>' once the closing tag is cut off. Returns nil
// if no line mentions key.
func Query(lines []string, key string) *string {
	for _, line := range lines {
		if !strings.Contains(line, key) {
			continue
		}

		value := stripClosingTag(line)
		if idx := strings.LastIndex(value, ">"); idx >= 0 {
			value = value[idx+1:]
		}
		return &value
	}
	return nil
}

func stripClosingTag(line string) string {
	if !strings.HasSuffix(line, ">") {
		return line
	}
	idx := strings.LastIndex(line, "</")
	if idx < 0 || strings.Contains(line[idx+2:len(line)-1], "<") {
		return line
	}
	return line[:idx]
}

// ReadMetadata - reads the metadata XML of an acquisition (or the .xml file itself) and pulls
// out MetadataKeys
func (r *Reader) ReadMetadata(rootOrFile string) (Metadata, error) {
	path, err := Resolve(rootOrFile, MetadataFile)
	if err != nil {
		return nil, err
	}

	r.log.Infof("Reading metadata: %v", path)
	lines, err := ReadTagFile(path)
	if err != nil {
		return nil, err
	}

	result := Metadata{}
	for _, key := range MetadataKeys {
		result[key] = Query(lines, key)
		if result[key] == nil {
			r.log.Debugf("No %v found in %v", key, path)
		}
	}
	return result, nil
}
