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
	"image"
	"strings"

	"github.com/pixlise/specimiq/core/errorwithstatus"
	"github.com/pixlise/specimiq/core/imageedit"
	"github.com/pixlise/specimiq/core/utils"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WhiteRefMode - where the white reference for reflectance comes from
type WhiteRefMode int

const (
	// WhiteRefCaptured - use the reflectance the camera already computed
	WhiteRefCaptured WhiteRefMode = iota

	// WhiteRefPick - compute reflectance from a region of the scene picked as white
	WhiteRefPick
)

func (m WhiteRefMode) String() string {
	switch m {
	case WhiteRefCaptured:
		return "captured"
	case WhiteRefPick:
		return "pick"
	}
	return fmt.Sprintf("WhiteRefMode(%d)", int(m))
}

// ParseWhiteRefMode - "captured" (or empty) and "pick", case-insensitive. Anything else is an InvalidArgument.
func ParseWhiteRefMode(name string) (WhiteRefMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "captured":
		return WhiteRefCaptured, nil
	case "pick":
		return WhiteRefPick, nil
	}
	return WhiteRefCaptured, errorwithstatus.MakeBadRequestError(fmt.Errorf("\"whiteref\" should be \"captured\" or \"pick\", got: %v", name))
}

// PreviewBand - band shown when picking a white region
const PreviewBand = 50

// ReadReflectance - reflectance cube for an acquisition. A .dat path is read directly, otherwise
// mode decides between the camera's own result and calibrating radiance against a picked region.
func (r *Reader) ReadReflectance(rootOrFile string, mode WhiteRefMode) (Cube, error) {
	if hasExtension(rootOrFile, ".dat") {
		if !utils.PathExists(rootOrFile) {
			return Cube{}, errorwithstatus.MakeNotFoundError(rootOrFile, productHint(Reflectance))
		}
		return r.ReadCube(rootOrFile)
	}

	switch mode {
	case WhiteRefCaptured:
		return r.readProductCube(rootOrFile, Reflectance)
	case WhiteRefPick:
		radiance, err := r.ReadRadiance(rootOrFile)
		if err != nil {
			return Cube{}, err
		}
		darkref, err := r.ReadDarkRef(rootOrFile)
		if err != nil {
			return Cube{}, err
		}
		return r.pickReflectance(radiance, darkref)
	}

	return Cube{}, errorwithstatus.MakeBadRequestError(fmt.Errorf("unknown white reference mode: %v", mode))
}

func (r *Reader) pickReflectance(radiance Cube, darkref Cube) (Cube, error) {
	if !radiance.SameShape(darkref) {
		return Cube{}, errorwithstatus.MakeBadRequestError(fmt.Errorf("radiance shape %v does not match dark reference shape %v", radiance.Shape(), darkref.Shape()))
	}
	if radiance.IsEmpty() {
		return Cube{}, errorwithstatus.MakeBadRequestError(errors.New("radiance cube is empty"))
	}

	preview := MakePreview(radiance)
	region, err := r.picker.PickRegion(imageedit.MakeGrayImage(radiance.Cols, radiance.Rows, preview))
	if err != nil {
		return Cube{}, errorwithstatus.MakeInteractionError(errors.Wrap(err, "couldn't perform white reference region picking, consider using whiteref \"captured\""))
	}

	r.log.Infof("Calibrating reflectance against white region %v", region)
	return Calibrate(radiance, darkref, region)
}

// MakePreview - PreviewBand of the cube divided by its own maximum, so values are 0..1 for
// display. Cubes with fewer bands use their last band. An all-zero band stays all zero.
func MakePreview(radiance Cube) []float32 {
	band := PreviewBand
	if band >= radiance.Bands {
		band = radiance.Bands - 1
	}

	values := utils.ConvertSlice[float64](radiance.Band(band))
	result := make([]float32, len(values))
	if len(values) == 0 {
		return result
	}

	maxValue := floats.Max(values)
	if maxValue <= 0 {
		return result
	}
	for c, v := range values {
		result[c] = float32(v / maxValue)
	}
	return result
}

// WhiteReferenceSpectrum - mean of each band over region. The region is clipped to the cube first,
// if nothing is left that's an InvalidArgument.
func WhiteReferenceSpectrum(radiance Cube, region Region) ([]float64, error) {
	rect := region.Rect().Intersect(image.Rect(0, 0, radiance.Cols, radiance.Rows))
	if rect.Empty() {
		return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("white reference region %v does not overlap the %vx%v image", region, radiance.Cols, radiance.Rows))
	}

	result := make([]float64, radiance.Bands)
	patch := make([]float64, 0, rect.Dx()*rect.Dy())
	for b := 0; b < radiance.Bands; b++ {
		patch = patch[:0]
		for row := rect.Min.Y; row < rect.Max.Y; row++ {
			for col := rect.Min.X; col < rect.Max.X; col++ {
				patch = append(patch, float64(radiance.At(b, row, col)))
			}
		}
		result[b] = stat.Mean(patch, nil)
	}
	return result, nil
}

// Calibrate - reflectance = (radiance - dark) / (white - dark) per sample, where white is the
// mean radiance of region in that band. Worked in float64, stored as float32. Zero denominators
// give Inf/NaN, they're not treated specially.
func Calibrate(radiance Cube, darkref Cube, region Region) (Cube, error) {
	if !radiance.SameShape(darkref) {
		return Cube{}, errorwithstatus.MakeBadRequestError(fmt.Errorf("radiance shape %v does not match dark reference shape %v", radiance.Shape(), darkref.Shape()))
	}

	white, err := WhiteReferenceSpectrum(radiance, region)
	if err != nil {
		return Cube{}, err
	}
	return CalibrateWithSpectrum(radiance, darkref, white)
}

// CalibrateWithSpectrum - as Calibrate but with the white spectrum supplied, one value per band
func CalibrateWithSpectrum(radiance Cube, darkref Cube, white []float64) (Cube, error) {
	if !radiance.SameShape(darkref) {
		return Cube{}, errorwithstatus.MakeBadRequestError(fmt.Errorf("radiance shape %v does not match dark reference shape %v", radiance.Shape(), darkref.Shape()))
	}
	if len(white) != radiance.Bands {
		return Cube{}, errorwithstatus.MakeBadRequestError(fmt.Errorf("white spectrum has %v values, cube has %v bands", len(white), radiance.Bands))
	}

	result := MakeCube(radiance.Bands, radiance.Rows, radiance.Cols)
	size := radiance.Rows * radiance.Cols
	for b := 0; b < radiance.Bands; b++ {
		start := b * size
		for i := start; i < start+size; i++ {
			dark := float64(darkref.Data[i])
			result.Data[i] = float32((float64(radiance.Data[i]) - dark) / (white[b] - dark))
		}
	}
	return result, nil
}
