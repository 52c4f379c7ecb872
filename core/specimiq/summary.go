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
	"path/filepath"
	"strings"

	"github.com/pixlise/specimiq/core/fileaccess"
	"github.com/pixlise/specimiq/core/timestamper"
)

// Summary - small JSON description of a converted acquisition, written next to the container so
// it can be listed without opening the container
type Summary struct {
	Acquisition         string            `json:"acquisition"`
	Container           string            `json:"container"`
	WhiteRef            string            `json:"whiteref"`
	Bands               int               `json:"bands"`
	Rows                int               `json:"rows"`
	Cols                int               `json:"cols"`
	WavelengthMinNm     float64           `json:"wavelengthMinNm"`
	WavelengthMaxNm     float64           `json:"wavelengthMaxNm"`
	ReflectanceShape    [3]int            `json:"reflectanceShape"`
	RadianceShape       [3]int            `json:"radianceShape"`
	WhiteRefShape       [3]int            `json:"whiteRefShape"`
	DarkRefShape        [3]int            `json:"darkRefShape"`
	RGBSensorShape      [3]int            `json:"rgbSensorShape"`
	SimulatedRGBShape   [3]int            `json:"simulatedRGBShape"`
	Metadata            map[string]string `json:"metadata,omitempty"`
	CreationUnixTimeSec int64             `json:"creationUnixTimeSec"`
}

// MakeSummary - summary of ds, written out as containerPath
func MakeSummary(ds *Dataset, containerPath string, mode WhiteRefMode, creationUnixTimeSec int64) Summary {
	result := Summary{
		Acquisition:         ds.Name,
		Container:           filepath.Base(containerPath),
		WhiteRef:            mode.String(),
		Bands:               ds.Radiance.Bands,
		Rows:                ds.Radiance.Rows,
		Cols:                ds.Radiance.Cols,
		ReflectanceShape:    ds.Reflectance.Shape(),
		RadianceShape:       ds.Radiance.Shape(),
		WhiteRefShape:       ds.WhiteRef.Shape(),
		DarkRefShape:        ds.DarkRef.Shape(),
		RGBSensorShape:      ds.RGBSensor.Shape(),
		SimulatedRGBShape:   ds.SimulatedRGB.Shape(),
		CreationUnixTimeSec: creationUnixTimeSec,
	}

	if len(ds.Wavelengths) > 0 {
		result.WavelengthMinNm = ds.Wavelengths[0]
		result.WavelengthMaxNm = ds.Wavelengths[len(ds.Wavelengths)-1]
	}

	for _, key := range MetadataKeys {
		if value, ok := ds.Metadata.Get(key); ok {
			if result.Metadata == nil {
				result.Metadata = map[string]string{}
			}
			result.Metadata[key] = value
		}
	}
	return result
}

// SummaryPath - where the summary for a container goes: same directory, "<name>-summary.json"
func SummaryPath(containerPath string) string {
	ext := filepath.Ext(containerPath)
	return strings.TrimSuffix(containerPath, ext) + "-summary.json"
}

// Summarise - writes the summary of ds for the container at containerPath, returning the summary path
func Summarise(fs fileaccess.FileAccess, ds *Dataset, containerPath string, mode WhiteRefMode, ts timestamper.ITimeStamper) (string, error) {
	summaryPath := SummaryPath(containerPath)
	summary := MakeSummary(ds, containerPath, mode, ts.GetTimeNowSec())
	return summaryPath, fs.WriteJSON("", summaryPath, summary)
}
