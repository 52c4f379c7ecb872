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
	"io"
	"path"
	"strings"
)

// Generic interface for reading/writing the converter's outputs.
// Local file system and AWS S3 both implement it, so a converted acquisition can be written
// locally and then published to a bucket with the same calls.

// Besides just needing a path, we may need a bucket at the start of a path. For the local
// file system the "bucket" is a root directory.
type FileAccess interface {
	ObjectExists(bucket string, path string) (bool, error)

	WriteObject(bucket string, path string, data []byte) error

	// WriteObjectFrom - writes everything read from body without holding it all in memory
	WriteObjectFrom(bucket string, path string, body io.Reader) error

	WriteJSON(bucket string, path string, itemsPtr interface{}) error
}

const prettyPrintIndentForJSON = "    "

// MakeObjectKey - joins a prefix and file name into an object key, dropping any leading slash
// because S3 keys beginning with / end up in an unnamed "directory"
func MakeObjectKey(prefix string, name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimPrefix(path.Join(prefix, path.Base(name)), "/")
}
