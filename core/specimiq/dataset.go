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

	"github.com/pixlise/specimiq/core/errorwithstatus"
	"github.com/pixlise/specimiq/core/utils"
)

// Dataset - everything read from one acquisition. Not modified after Read returns it.
type Dataset struct {
	Name         string
	Wavelengths  []float64
	Reflectance  Cube
	Radiance     Cube
	WhiteRef     Cube
	DarkRef      Cube
	RGBSensor    RGBImage
	SimulatedRGB RGBImage
	Metadata     Metadata
}

// ReadOptions - choices that change what Read produces
type ReadOptions struct {
	WhiteRef WhiteRefMode
}

// Read - reads every product of the acquisition at root, with the camera's own reflectance
func (r *Reader) Read(root string) (*Dataset, error) {
	return r.ReadWithOptions(root, ReadOptions{WhiteRef: WhiteRefCaptured})
}

// ReadWithOptions - reads every product of the acquisition at root. Stops at the first product
// that fails, no partial dataset is returned.
func (r *Reader) ReadWithOptions(root string, opts ReadOptions) (*Dataset, error) {
	if !utils.IsDirectory(root) {
		return nil, errorwithstatus.MakeRootNotFoundError(root)
	}

	ds := &Dataset{
		Name:        AcquisitionName(root),
		Wavelengths: Wavelengths(),
	}
	r.log.Infof("Reading acquisition %v from: %v", ds.Name, root)

	var err error
	if ds.Radiance, err = r.ReadRadiance(root); err != nil {
		return nil, err
	}
	if ds.WhiteRef, err = r.ReadWhiteRef(root); err != nil {
		return nil, err
	}
	if ds.DarkRef, err = r.ReadDarkRef(root); err != nil {
		return nil, err
	}

	switch opts.WhiteRef {
	case WhiteRefCaptured:
		ds.Reflectance, err = r.readProductCube(root, Reflectance)
	case WhiteRefPick:
		ds.Reflectance, err = r.pickReflectance(ds.Radiance, ds.DarkRef)
	default:
		err = errorwithstatus.MakeBadRequestError(fmt.Errorf("unknown white reference mode: %v", opts.WhiteRef))
	}
	if err != nil {
		return nil, err
	}

	if ds.RGBSensor, err = r.ReadRGB(root, string(SensorRGB)); err != nil {
		return nil, err
	}
	if ds.SimulatedRGB, err = r.ReadRGB(root, string(SensorSpectral)); err != nil {
		return nil, err
	}
	if ds.Metadata, err = r.ReadMetadata(root); err != nil {
		return nil, err
	}

	if ds.Radiance.Bands != len(ds.Wavelengths) {
		r.log.Infof("Radiance has %v bands, expected %v", ds.Radiance.Bands, len(ds.Wavelengths))
	}

	return ds, nil
}
