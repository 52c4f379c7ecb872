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

	"github.com/pixlise/specimiq/core/errorwithstatus"
	"github.com/pixlise/specimiq/core/imageedit"
	"github.com/pixlise/specimiq/core/utils"
)

// RGBSensorKind - which of the two preview images to read
type RGBSensorKind string

const (
	// SensorRGB - image from the camera's separate RGB sensor
	SensorRGB RGBSensorKind = "rgb"

	// SensorSpectral - RGB image the camera simulates from the reflectance cube
	SensorSpectral RGBSensorKind = "spectral"
)

// ParseRGBSensorKind - case-insensitive, anything other than "rgb" or "spectral" is an InvalidArgument
func ParseRGBSensorKind(name string) (RGBSensorKind, error) {
	switch RGBSensorKind(strings.ToLower(strings.TrimSpace(name))) {
	case SensorRGB:
		return SensorRGB, nil
	case SensorSpectral:
		return SensorSpectral, nil
	}
	return "", errorwithstatus.MakeBadRequestError(fmt.Errorf("\"sensor\" should be \"rgb\" or \"spectral\", got: %v", name))
}

func (s RGBSensorKind) productKind() ProductKind {
	if s == SensorSpectral {
		return SimulatedRGB
	}
	return RGBSensor
}

// RGBImage - 8 bit RGB stored channel-first: (channel*Rows + row)*Cols + col, channels R, G, B
type RGBImage struct {
	Rows int
	Cols int
	Data []uint8
}

// RGBChannels - channel count of every RGBImage
const RGBChannels = 3

func (i RGBImage) At(channel int, row int, col int) uint8 {
	return i.Data[(channel*i.Rows+row)*i.Cols+col]
}

func (i RGBImage) Shape() [3]int {
	return [3]int{RGBChannels, i.Rows, i.Cols}
}

func (i RGBImage) Dims() []uint64 {
	return []uint64{RGBChannels, uint64(i.Rows), uint64(i.Cols)}
}

// ReadRGB - reads one of the preview images. With a sensor name, path is the acquisition root
// (or already the .png), without one path must be the .png file itself.
func (r *Reader) ReadRGB(path string, sensor string) (RGBImage, error) {
	pngPath := path
	if len(sensor) > 0 {
		kind, err := ParseRGBSensorKind(sensor)
		if err != nil {
			return RGBImage{}, err
		}
		pngPath = ProductPath(path, kind.productKind())
	}

	if !hasExtension(pngPath, ".png") || !utils.PathExists(pngPath) {
		return RGBImage{}, errorwithstatus.MakeNotFoundError(pngPath, "\"path\" should direct to a png file or to the root folder of the Specim IQ acquisition")
	}

	r.log.Infof("Reading RGB image: %v", pngPath)
	return ReadRGBFile(pngPath)
}

// ReadRGBFile - decodes any image file the image package can read into an RGBImage, dropping alpha.
// Wider than 8 bit channels are reduced to 8 bit.
func ReadRGBFile(path string) (RGBImage, error) {
	img, err := utils.ReadImageFile(path)
	if err != nil {
		return RGBImage{}, err
	}

	nrgba := imageedit.ToNRGBA(img)
	bounds := nrgba.Bounds()
	result := RGBImage{
		Rows: bounds.Dy(),
		Cols: bounds.Dx(),
	}
	result.Data = make([]uint8, RGBChannels*result.Rows*result.Cols)

	plane := result.Rows * result.Cols
	for row := 0; row < result.Rows; row++ {
		for col := 0; col < result.Cols; col++ {
			pix := nrgba.PixOffset(bounds.Min.X+col, bounds.Min.Y+row)
			idx := row*result.Cols + col
			for ch := 0; ch < RGBChannels; ch++ {
				result.Data[ch*plane+idx] = nrgba.Pix[pix+ch]
			}
		}
	}
	return result, nil
}
