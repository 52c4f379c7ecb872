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
	"math"
	"os"
	"testing"

	"github.com/pixlise/specimiq/core/errorwithstatus"
	"github.com/pixlise/specimiq/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Example_parseWhiteRefMode() {
	for _, name := range []string{"", "captured", "PICK", "auto"} {
		mode, err := ParseWhiteRefMode(name)
		fmt.Printf("%v|%v|%v\n", mode, err, errorwithstatus.HasStatus(err, errorwithstatus.InvalidArgument))
	}

	// Output:
	// captured|<nil>|false
	// captured|<nil>|false
	// pick|<nil>|false
	// captured|"whiteref" should be "captured" or "pick", got: auto|true
}

func Test_WhiteReferenceSpectrum(t *testing.T) {
	// 2 bands, 3x3
	radiance := makeTestCube(2, 3, 3, func(b, r, c int) float32 { return float32(100*b + 3*r + c) })

	white, err := WhiteReferenceSpectrum(radiance, Region{X: 1, Y: 1, Width: 2, Height: 2})
	require.NoError(t, err)
	// Band 0 patch: 4,5,7,8
	assert.InDeltaSlice(t, []float64{6, 106}, white, 1e-9)

	// Clipped to the image: only col 2, rows 0..2 remain
	white, err = WhiteReferenceSpectrum(radiance, Region{X: 2, Y: -1, Width: 5, Height: 10})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5, 105}, white, 1e-9)

	_, err = WhiteReferenceSpectrum(radiance, Region{X: 3, Y: 0, Width: 1, Height: 1})
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.InvalidArgument))

	_, err = WhiteReferenceSpectrum(radiance, Region{X: 0, Y: 0, Width: 0, Height: 2})
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.InvalidArgument))
}

func Test_CalibrateFormula(t *testing.T) {
	bands, rows, cols := 3, 4, 5
	radiance := makeTestCube(bands, rows, cols, testRadiance)
	darkref := makeTestCube(bands, rows, cols, func(b, r, c int) float32 { return float32(b + r) })
	region := Region{X: 1, Y: 0, Width: 3, Height: 2}

	white, err := WhiteReferenceSpectrum(radiance, region)
	require.NoError(t, err)

	refl, err := Calibrate(radiance, darkref, region)
	require.NoError(t, err)
	require.Equal(t, radiance.Shape(), refl.Shape())

	for b := 0; b < bands; b++ {
		sum := 0.0
		for r := 0; r < 2; r++ {
			for c := 1; c < 4; c++ {
				sum += float64(testRadiance(b, r, c))
			}
		}
		assert.InDelta(t, sum/6, white[b], 1e-9)

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				R := float64(radiance.At(b, r, c))
				D := float64(darkref.At(b, r, c))
				assert.InDelta(t, (R-D)/(white[b]-D), float64(refl.At(b, r, c)), 1e-6)
			}
		}
	}
}

func Test_CalibrateZeroDenominator(t *testing.T) {
	radiance := makeTestCube(1, 1, 2, constant(5))
	darkref := makeTestCube(1, 1, 2, constant(5))

	refl, err := Calibrate(radiance, darkref, Region{X: 0, Y: 0, Width: 2, Height: 1})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(refl.Data[0])))
}

func Test_CalibrateShapeMismatch(t *testing.T) {
	radiance := makeTestCube(2, 3, 3, testRadiance)
	darkref := makeTestCube(2, 3, 4, constant(0))

	_, err := Calibrate(radiance, darkref, Region{X: 0, Y: 0, Width: 1, Height: 1})
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.InvalidArgument))

	_, err = CalibrateWithSpectrum(radiance, makeTestCube(2, 3, 3, constant(0)), []float64{1})
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.InvalidArgument))
}

func Test_MakePreview(t *testing.T) {
	// Fewer bands than the preview band, so the last band is used
	cube := makeTestCube(2, 1, 4, func(b, r, c int) float32 { return float32((b + 1) * c) })
	assert.Equal(t, []float32{0, 1.0 / 3, 2.0 / 3, 1}, MakePreview(cube))

	assert.Equal(t, []float32{0, 0}, MakePreview(makeTestCube(60, 1, 2, constant(0))))

	// Band 50 is used when it exists
	cube = makeTestCube(60, 1, 2, func(b, r, c int) float32 {
		if b == PreviewBand {
			return float32(c + 1)
		}
		return 1000
	})
	assert.Equal(t, []float32{0.5, 1}, MakePreview(cube))
}

func Test_ReadReflectanceCaptured(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 3, 2, 4)
	require.NoError(t, err)
	r := NewReader(nil, nil, nil, nil)

	refl, err := r.ReadReflectance(root, WhiteRefCaptured)
	require.NoError(t, err)
	assert.Equal(t, [3]int{3, 2, 4}, refl.Shape())
	assert.Equal(t, float32(testReflectance), refl.At(2, 1, 3))

	// Direct .dat path, mode doesn't matter
	refl, err = r.ReadReflectance(reflectancePath(root, "366"), WhiteRefPick)
	require.NoError(t, err)
	assert.Equal(t, float32(testReflectance), refl.At(0, 0, 0))

	_, err = r.ReadReflectance(root+"/results/nope.dat", WhiteRefCaptured)
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.ResourceNotFound))
}

func Test_ReadReflectanceCapturedMissingHasNoFallback(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 3, 2, 4)
	require.NoError(t, err)
	require.NoError(t, os.Remove(reflectancePath(root, "366")))

	picked := false
	r := NewReader(nil, pickerFunc(func() { picked = true }), nil, nil)
	_, err = r.ReadReflectance(root, WhiteRefCaptured)
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.ResourceNotFound))
	assert.False(t, picked)
}

func Test_ReadReflectancePick(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 3, 2, 4)
	require.NoError(t, err)

	log := &logger.MemLogger{}
	region := Region{X: 0, Y: 0, Width: 2, Height: 2}
	r := NewReader(nil, FixedRegionPicker{Region: region}, nil, log)

	refl, err := r.ReadReflectance(root, WhiteRefPick)
	require.NoError(t, err)
	assert.Equal(t, [3]int{3, 2, 4}, refl.Shape())

	for b := 0; b < 3; b++ {
		// Mean of cols 0,1 rows 0,1
		white := float64(200+10*b) + (0+1+3+4)/4.0
		for row := 0; row < 2; row++ {
			for col := 0; col < 4; col++ {
				expected := (float64(testRadiance(b, row, col)) - testDark) / (white - testDark)
				assert.InDelta(t, expected, float64(refl.At(b, row, col)), 1e-6)
			}
		}
	}
	assert.True(t, log.Contains("white region 0,0,2,2"))
}

func Test_ReadReflectancePickUnavailable(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 3, 2, 4)
	require.NoError(t, err)

	_, err = NewReader(nil, nil, nil, nil).ReadReflectance(root, WhiteRefPick)
	require.Error(t, err)
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.InteractionUnavailable))
	assert.Contains(t, err.Error(), "captured")
}

func Test_ReadReflectancePickShapeMismatch(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 3, 2, 4)
	require.NoError(t, err)
	require.NoError(t, writeTestCube(darkRefPath(root, "366"), 12, "bil", makeTestCube(3, 1, 4, constant(testDark))))

	r := NewReader(nil, FixedRegionPicker{Region: Region{Width: 1, Height: 1}}, nil, nil)
	_, err = r.ReadReflectance(root, WhiteRefPick)
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.InvalidArgument))
}

func Test_ReadReflectanceUnknownMode(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 3, 2, 4)
	require.NoError(t, err)

	_, err = NewReader(nil, nil, nil, nil).ReadReflectance(root, WhiteRefMode(7))
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.InvalidArgument))
}
