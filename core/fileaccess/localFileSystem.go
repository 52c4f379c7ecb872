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

package fileaccess

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Implementation of file access using local file system
type FSAccess struct {
}

func (fa *FSAccess) ObjectExists(rootPath string, path string) (bool, error) {
	_, err := os.Stat(fa.filePath(rootPath, path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (fa *FSAccess) WriteObject(rootPath string, path string, data []byte) error {
	fullPath, err := fa.makeParentDir(rootPath, path)
	if err != nil {
		return err
	}

	// Write the file out, this will create if needed else truncate and write
	return os.WriteFile(fullPath, data, 0644)
}

func (fa *FSAccess) WriteObjectFrom(rootPath string, path string, body io.Reader) error {
	fullPath, err := fa.makeParentDir(rootPath, path)
	if err != nil {
		return err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return err
	}

	_, err = io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (fa *FSAccess) WriteJSON(rootPath string, path string, itemsPtr interface{}) error {
	fileData, err := json.MarshalIndent(itemsPtr, "", prettyPrintIndentForJSON)
	if err != nil {
		return err
	}

	return fa.WriteObject(rootPath, path, fileData)
}

// Ensure any subdirs in between are created
func (fa *FSAccess) makeParentDir(rootPath string, path string) (string, error) {
	fullPath := fa.filePath(rootPath, path)
	return fullPath, os.MkdirAll(filepath.Dir(fullPath), 0755)
}

func (fa *FSAccess) filePath(rootPath string, filePath string) string {
	return filepath.Join(rootPath, filePath)
}
