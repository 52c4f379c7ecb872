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

// Reads Specim IQ acquisitions off disk and converts them into a single container file.
//
// An acquisition is a folder named after the capture, laid out by the camera as:
//
//	<root>/capture/<name>.raw             radiance
//	<root>/capture/WHITEREF_<name>.raw    white reference
//	<root>/capture/DARKREF_<name>.raw     dark reference
//	<root>/results/REFLECTANCE_<name>.dat reflectance computed on the camera
//	<root>/results/REFLECTANCE_<name>.png simulated RGB
//	<root>/results/RGBBACKGROUND_<name>.png RGB sensor image
//	<root>/metadata/<name>.xml            acquisition metadata
//
// Each .raw/.dat file has an ENVI header next to it.
package specimiq

import (
	"github.com/pixlise/specimiq/core/container"
	"github.com/pixlise/specimiq/core/container/h5"
	"github.com/pixlise/specimiq/core/imgFormat"
	"github.com/pixlise/specimiq/core/logger"
)

// Reader - everything needed to read and convert acquisitions. Holds no per-read state so one
// Reader can be shared by any number of calls.
type Reader struct {
	decoder RasterDecoder
	picker  RegionPicker
	writer  container.Writer
	log     logger.ILogger
}

// NewReader - any nil argument gets a default: ENVI decoding, no region picking (so only
// captured reflectance works), HDF5 output and no logging.
func NewReader(decoder RasterDecoder, picker RegionPicker, writer container.Writer, log logger.ILogger) *Reader {
	if log == nil {
		log = &logger.NullLogger{}
	}
	if decoder == nil {
		decoder = imgFormat.ENVIDecoder{}
	}
	if picker == nil {
		picker = NoRegionPicker{}
	}
	if writer == nil {
		writer = h5.NewWriter(log)
	}

	return &Reader{
		decoder: decoder,
		picker:  picker,
		writer:  writer,
		log:     log,
	}
}
