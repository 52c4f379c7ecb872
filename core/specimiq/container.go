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
	"github.com/pixlise/specimiq/core/container"
)

// Container entry names, metadata keys are added alongside these
const (
	EntryWavelengths  = "wavelengths"
	EntryReflectance  = "reflectance"
	EntryRadiance     = "radiance"
	EntryWhiteRef     = "whiteref"
	EntryDarkRef      = "darkref"
	EntryRGBSensor    = "rgb_sensor"
	EntrySimulatedRGB = "simulated_rgb"
)

func cubeEntry(c Cube) container.Entry {
	return container.Entry{Dims: c.Dims(), Data: c.Data}
}

func rgbEntry(i RGBImage) container.Entry {
	return container.Entry{Dims: i.Dims(), Data: i.Data}
}

// Flatten - one container entry per array plus one per metadata key. Each metadata value is a
// single string, a missing value is stored as an empty string so the key is always present.
func Flatten(ds *Dataset) map[string]container.Entry {
	result := map[string]container.Entry{
		EntryWavelengths:  {Dims: []uint64{uint64(len(ds.Wavelengths))}, Data: ds.Wavelengths},
		EntryReflectance:  cubeEntry(ds.Reflectance),
		EntryRadiance:     cubeEntry(ds.Radiance),
		EntryWhiteRef:     cubeEntry(ds.WhiteRef),
		EntryDarkRef:      cubeEntry(ds.DarkRef),
		EntryRGBSensor:    rgbEntry(ds.RGBSensor),
		EntrySimulatedRGB: rgbEntry(ds.SimulatedRGB),
	}

	for _, key := range MetadataKeys {
		value, _ := ds.Metadata.Get(key)
		result[key] = container.Entry{Dims: []uint64{1}, Data: []string{value}}
	}
	return result
}

// ToContainer - writes the flattened dataset to outPath, replacing any existing file
func (r *Reader) ToContainer(ds *Dataset, outPath string) error {
	r.log.Infof("Writing %v to: %v", ds.Name, outPath)
	return r.writer.WriteContainer(outPath, Flatten(ds))
}

// Convert - Read then ToContainer
func (r *Reader) Convert(root string, outPath string) error {
	_, err := r.ConvertWithOptions(root, outPath, ReadOptions{})
	return err
}

// ConvertWithOptions - ReadWithOptions then ToContainer, returning what was read. Nothing is
// written if reading fails.
func (r *Reader) ConvertWithOptions(root string, outPath string, opts ReadOptions) (*Dataset, error) {
	ds, err := r.ReadWithOptions(root, opts)
	if err != nil {
		return nil, err
	}
	if err := r.ToContainer(ds, outPath); err != nil {
		return nil, err
	}
	return ds, nil
}
