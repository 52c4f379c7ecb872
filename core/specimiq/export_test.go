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
	"path/filepath"
	"testing"

	"github.com/pixlise/specimiq/core/imgFormat"
	"github.com/pixlise/specimiq/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Example_reflectanceExportPath() {
	fmt.Println(ReflectanceExportPath("out/366.h5"))
	fmt.Println(ReflectanceExportPath("366"))

	// Output:
	// out/366-reflectance.dat
	// 366-reflectance.dat
}

func Test_WriteReflectance(t *testing.T) {
	dir := t.TempDir()

	refl := makeTestCube(2, 2, 3, func(b, r, c int) float32 { return float32(b) + 0.25*float32(r) + 0.125*float32(c) })
	ds := &Dataset{Name: "366", Wavelengths: []float64{397.32, 400.2}, Reflectance: refl}

	log := &logger.MemLogger{}
	dataPath := filepath.Join(dir, "366-reflectance.dat")
	paths, err := NewReader(nil, nil, nil, log).WriteReflectance(ds, dataPath)
	require.NoError(t, err)
	assert.Equal(t, []string{dataPath, filepath.Join(dir, "366-reflectance.hdr")}, paths)
	assert.True(t, log.Contains("Wrote [2 2 3] reflectance to: "+dataPath))

	// Reads back through the same path as the camera's own reflectance
	read, err := NewReader(nil, nil, nil, nil).ReadReflectance(dataPath, WhiteRefCaptured)
	require.NoError(t, err)
	assert.Equal(t, refl, read)

	raster, err := imgFormat.ReadENVIFile(dataPath, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{397.32, 400.2}, raster.Header.Wavelengths)
	assert.Equal(t, 4, raster.Header.DataType)
}

func Test_WriteReflectanceWavelengthsOnlyWhenTheyMatch(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "366-reflectance.dat")
	ds := &Dataset{Name: "366", Wavelengths: Wavelengths(), Reflectance: makeTestCube(2, 1, 1, constant(0.5))}

	_, err := NewReader(nil, nil, nil, nil).WriteReflectance(ds, dataPath)
	require.NoError(t, err)

	raster, err := imgFormat.ReadENVIFile(dataPath, nil)
	require.NoError(t, err)
	assert.Empty(t, raster.Header.Wavelengths)

	_, err = NewReader(nil, nil, nil, nil).WriteReflectance(&Dataset{Name: "366"}, dataPath)
	assert.Error(t, err)
}
