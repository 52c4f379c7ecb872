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

	"github.com/pixlise/specimiq/core/imgFormat"
	"github.com/pixlise/specimiq/core/utils"
)

// Cube - 3D array of samples indexed (band, row, col), stored band-major in Data
type Cube struct {
	Bands int
	Rows  int
	Cols  int
	Data  []float32
}

// MakeCube - allocates a zeroed cube of the given shape
func MakeCube(bands int, rows int, cols int) Cube {
	return Cube{Bands: bands, Rows: rows, Cols: cols, Data: make([]float32, bands*rows*cols)}
}

// Shape - (bands, rows, cols)
func (c Cube) Shape() [3]int {
	return [3]int{c.Bands, c.Rows, c.Cols}
}

// SameShape - true if o has the same band, row and column counts
func (c Cube) SameShape(o Cube) bool {
	return c.Shape() == o.Shape()
}

func (c Cube) IsEmpty() bool {
	return len(c.Data) == 0
}

func (c Cube) index(band int, row int, col int) int {
	return (band*c.Rows+row)*c.Cols + col
}

func (c Cube) At(band int, row int, col int) float32 {
	return c.Data[c.index(band, row, col)]
}

// Band - the rows*cols samples of one band. Shares storage with the cube.
func (c Cube) Band(band int) []float32 {
	size := c.Rows * c.Cols
	return c.Data[band*size : (band+1)*size]
}

// Dims - shape as container dimensions
func (c Cube) Dims() []uint64 {
	return []uint64{uint64(c.Bands), uint64(c.Rows), uint64(c.Cols)}
}

func (c Cube) validate() error {
	count, ok := utils.ProductFits(c.Bands, c.Rows, c.Cols)
	if !ok {
		return fmt.Errorf("invalid cube shape %v", c.Shape())
	}
	if count != len(c.Data) {
		return fmt.Errorf("cube shape %v needs %v samples, got %v", c.Shape(), count, len(c.Data))
	}
	return nil
}

// RasterDecoder - reads a raster data file (with its sidecar header) into memory
type RasterDecoder interface {
	DecodeRaster(path string, onWarning imgFormat.WarningHandler) (imgFormat.ENVIRaster, error)
}

// ReadCube - decodes the raster at path into a Cube. Path is used as-is, no product resolution.
// Missing georeferencing is expected for this camera so that warning only goes to debug.
func (r *Reader) ReadCube(path string) (Cube, error) {
	onWarning := func(w imgFormat.Warning) {
		if w.Kind == imgFormat.NotGeoreferenced {
			r.log.Debugf("Ignoring: %v", w)
			return
		}
		r.log.Infof("Warning reading %v: %v", path, w.Message)
	}

	raster, err := r.decoder.DecodeRaster(path, onWarning)
	if err != nil {
		return Cube{}, fmt.Errorf("failed to read %v: %v", path, err)
	}

	cube := Cube{
		Bands: raster.Header.Bands,
		Rows:  raster.Header.Lines,
		Cols:  raster.Header.Samples,
		Data:  raster.Data,
	}
	if err := cube.validate(); err != nil {
		return Cube{}, fmt.Errorf("failed to read %v: %v", path, err)
	}
	return cube, nil
}

func (r *Reader) readProductCube(rootOrFile string, kind ProductKind) (Cube, error) {
	path, err := Resolve(rootOrFile, kind)
	if err != nil {
		return Cube{}, err
	}
	r.log.Infof("Reading %v: %v", kind, path)
	return r.ReadCube(path)
}

// ReadWhiteRef - white reference cube from an acquisition root or a .raw file
func (r *Reader) ReadWhiteRef(rootOrFile string) (Cube, error) {
	return r.readProductCube(rootOrFile, WhiteRef)
}

// ReadDarkRef - dark reference cube from an acquisition root or a .raw file
func (r *Reader) ReadDarkRef(rootOrFile string) (Cube, error) {
	return r.readProductCube(rootOrFile, DarkRef)
}

// ReadRadiance - raw scene cube from an acquisition root or a .raw file
func (r *Reader) ReadRadiance(rootOrFile string) (Cube, error) {
	return r.readProductCube(rootOrFile, Radiance)
}
