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

// Exposes various utility functions for reading text files line by line, checking paths,
// reading/writing images and small generic slice helpers
package utils

import (
	"bufio"
	"os"
	"strings"
)

// ReadFileLines - Reads all lines in a file into a string array
func ReadFileLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// Tag files can carry long base64 blobs on one line
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// ReadTrimmedFileLines - as ReadFileLines, with surrounding whitespace stripped from each line
func ReadTrimmedFileLines(filePath string) ([]string, error) {
	lines, err := ReadFileLines(filePath)
	if err != nil {
		return nil, err
	}

	for c, line := range lines {
		lines[c] = strings.TrimSpace(line)
	}
	return lines, nil
}

// PathExists - true if something (file or directory) exists at the path
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory - true if the path exists and is a directory
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
