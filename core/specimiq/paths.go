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
	"strings"

	"github.com/pixlise/specimiq/core/errorwithstatus"
	"github.com/pixlise/specimiq/core/utils"
)

// ProductKind - one of the files a Specim IQ writes per acquisition
type ProductKind int

const (
	WhiteRef ProductKind = iota
	DarkRef
	Radiance
	Reflectance
	RGBSensor
	SimulatedRGB
	MetadataFile
)

var productKindNames = map[ProductKind]string{
	WhiteRef:     "whiteref",
	DarkRef:      "darkref",
	Radiance:     "radiance",
	Reflectance:  "reflectance",
	RGBSensor:    "rgb_sensor",
	SimulatedRGB: "simulated_rgb",
	MetadataFile: "metadata",
}

func (k ProductKind) String() string {
	if name, ok := productKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ProductKind(%d)", int(k))
}

// Directories the camera writes into, relative to the acquisition root
const (
	captureDir  = "capture"
	resultsDir  = "results"
	metadataDir = "metadata"
)

type productLayout struct {
	ext  string
	path func(root string, name string) string
}

var productLayouts = map[ProductKind]productLayout{
	WhiteRef:     {".raw", whiteRefPath},
	DarkRef:      {".raw", darkRefPath},
	Radiance:     {".raw", radiancePath},
	Reflectance:  {".dat", reflectancePath},
	RGBSensor:    {".png", rgbSensorPath},
	SimulatedRGB: {".png", simulatedRGBPath},
	MetadataFile: {".xml", metadataPath},
}

func whiteRefPath(root string, name string) string {
	return filepath.Join(root, captureDir, "WHITEREF_"+name+".raw")
}

func darkRefPath(root string, name string) string {
	return filepath.Join(root, captureDir, "DARKREF_"+name+".raw")
}

func radiancePath(root string, name string) string {
	return filepath.Join(root, captureDir, name+".raw")
}

func reflectancePath(root string, name string) string {
	return filepath.Join(root, resultsDir, "REFLECTANCE_"+name+".dat")
}

func rgbSensorPath(root string, name string) string {
	return filepath.Join(root, resultsDir, "RGBBACKGROUND_"+name+".png")
}

func simulatedRGBPath(root string, name string) string {
	return filepath.Join(root, resultsDir, "REFLECTANCE_"+name+".png")
}

func metadataPath(root string, name string) string {
	return filepath.Join(root, metadataDir, name+".xml")
}

// AcquisitionName - the acquisition's name, which is the last element of its root path.
// Trailing separators are ignored so "/data/366/" and "/data/366" both give "366".
func AcquisitionName(root string) string {
	return filepath.Base(filepath.Clean(root))
}

func hasExtension(path string, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// ProductPath - where the given product lives for an acquisition. If rootOrFile already has the
// product's extension it's taken to be the file itself and returned unchanged. Doesn't touch disk.
func ProductPath(rootOrFile string, kind ProductKind) string {
	layout, ok := productLayouts[kind]
	if !ok {
		return rootOrFile
	}
	if hasExtension(rootOrFile, layout.ext) {
		return rootOrFile
	}
	return layout.path(rootOrFile, AcquisitionName(rootOrFile))
}

func productHint(kind ProductKind) string {
	ext := strings.TrimPrefix(productLayouts[kind].ext, ".")
	return fmt.Sprintf("\"path\" should direct to a %v file or to the root folder of the Specim IQ acquisition", ext)
}

// Resolve - ProductPath, then checks the file is there. If not, returns a ResourceNotFound
// error naming the path tried.
func Resolve(rootOrFile string, kind ProductKind) (string, error) {
	if _, ok := productLayouts[kind]; !ok {
		return "", errorwithstatus.MakeBadRequestError(fmt.Errorf("unknown product kind: %v", kind))
	}

	path := ProductPath(rootOrFile, kind)
	if !utils.PathExists(path) {
		return "", errorwithstatus.MakeNotFoundError(path, productHint(kind))
	}
	return path, nil
}
