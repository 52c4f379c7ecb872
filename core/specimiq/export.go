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
	"path/filepath"
	"strings"

	"github.com/pixlise/specimiq/core/imgFormat"
	"github.com/pkg/errors"
)

// ReflectanceExportPath - where a recalibrated reflectance cube goes: same directory as the
// container, "<name>-reflectance.dat" with its ENVI header as "<name>-reflectance.hdr"
func ReflectanceExportPath(containerPath string) string {
	ext := filepath.Ext(containerPath)
	return strings.TrimSuffix(containerPath, ext) + "-reflectance.dat"
}

// WriteReflectance - writes the reflectance cube of ds as float32 bsq ENVI so it can be opened like
// the camera's own REFLECTANCE_<name>.dat. Returns the data and header paths.
func (r *Reader) WriteReflectance(ds *Dataset, dataPath string) ([]string, error) {
	refl := ds.Reflectance
	if refl.IsEmpty() {
		return nil, errors.Errorf("no reflectance to write for %v", ds.Name)
	}

	hdr := imgFormat.ENVIHeader{
		Samples:  refl.Cols,
		Lines:    refl.Rows,
		Bands:    refl.Bands,
		DataType: 4,
	}

	// Only label bands when the table describes them
	if len(ds.Wavelengths) == refl.Bands {
		hdr.Wavelengths = ds.Wavelengths
	}

	if err := imgFormat.WriteENVIFile(dataPath, hdr, refl.Data); err != nil {
		return nil, errors.Wrapf(err, "failed to write reflectance to %v", dataPath)
	}

	r.log.Infof("Wrote %v reflectance to: %v", refl.Shape(), dataPath)
	return []string{dataPath, imgFormat.ENVIHeaderPath(dataPath)}, nil
}
