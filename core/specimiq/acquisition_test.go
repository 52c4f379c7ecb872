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
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/pixlise/specimiq/core/imgFormat"
	"github.com/pixlise/specimiq/core/utils"
)

// Values written into test acquisitions, chosen so reflectance is easy to check by hand
const (
	testDark        = 20
	testWhite       = 1000
	testReflectance = 0.25
)

const testMetadataXML = `<?xml version="1.0" encoding="UTF-8"?>
<properties>
    <key field="datetime">2019-07-15 12:31:18</key>
    <key field="datacube_angle">-1</key>
    <key field="integration_time">20</key>
</properties>
`

func testRadiance(band int, row int, col int) float32 {
	return float32(200 + 10*band + 3*row + col)
}

func makeTestCube(bands int, rows int, cols int, value func(b, r, c int) float32) Cube {
	cube := MakeCube(bands, rows, cols)
	for b := 0; b < bands; b++ {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				cube.Data[cube.index(b, r, c)] = value(b, r, c)
			}
		}
	}
	return cube
}

func constant(v float32) func(b, r, c int) float32 {
	return func(b, r, c int) float32 { return v }
}

func writeTestCube(path string, dataType int, interleave string, cube Cube) error {
	hdr := imgFormat.ENVIHeader{
		Samples:    cube.Cols,
		Lines:      cube.Rows,
		Bands:      cube.Bands,
		DataType:   dataType,
		Interleave: interleave,
	}
	return imgFormat.WriteENVIFile(path, hdr, cube.Data)
}

// Pixel x,y of the RGB sensor image is (10x, 10y, base), simulated RGB uses a different base
func writeTestPNG(path string, rows int, cols int, base uint8) error {
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(10 * x), G: uint8(10 * y), B: base, A: 255})
		}
	}
	_, err := utils.WritePNGImageFile(path, img)
	return err
}

// writeTestAcquisition - lays out a complete acquisition called name under parent, returning its root
func writeTestAcquisition(parent string, name string, bands int, rows int, cols int) (string, error) {
	root := filepath.Join(parent, name)
	for _, dir := range []string{captureDir, resultsDir, metadataDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return "", err
		}
	}

	writes := []struct {
		path       string
		dataType   int
		interleave string
		cube       Cube
	}{
		{radiancePath(root, name), 12, "bil", makeTestCube(bands, rows, cols, testRadiance)},
		{whiteRefPath(root, name), 12, "bil", makeTestCube(bands, rows, cols, constant(testWhite))},
		{darkRefPath(root, name), 12, "bil", makeTestCube(bands, rows, cols, constant(testDark))},
		{reflectancePath(root, name), 4, "bsq", makeTestCube(bands, rows, cols, constant(testReflectance))},
	}
	for _, w := range writes {
		if err := writeTestCube(w.path, w.dataType, w.interleave, w.cube); err != nil {
			return "", err
		}
	}

	if err := writeTestPNG(rgbSensorPath(root, name), rows, cols, 7); err != nil {
		return "", err
	}
	if err := writeTestPNG(simulatedRGBPath(root, name), rows, cols, 99); err != nil {
		return "", err
	}

	if err := os.WriteFile(metadataPath(root, name), []byte(testMetadataXML), 0644); err != nil {
		return "", err
	}
	return root, nil
}
