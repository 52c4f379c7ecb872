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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/go-cmp/cmp"
	"github.com/pixlise/specimiq/core/awsutil"
	"github.com/pixlise/specimiq/core/container"
	"github.com/pixlise/specimiq/core/errorwithstatus"
	"github.com/pixlise/specimiq/core/fileaccess"
	"github.com/pixlise/specimiq/core/logger"
	"github.com/pixlise/specimiq/core/timestamper"
	"github.com/scigolib/hdf5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ReadAcquisition(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 4, 3, 5)
	require.NoError(t, err)

	log := &logger.MemLogger{}
	ds, err := NewReader(nil, nil, nil, log).Read(root + "/")
	require.NoError(t, err)

	assert.Equal(t, "366", ds.Name)
	require.Len(t, ds.Wavelengths, BandCount)
	assert.Equal(t, 397.32, ds.Wavelengths[0])
	assert.Equal(t, 1003.58, ds.Wavelengths[BandCount-1])

	shape := [3]int{4, 3, 5}
	assert.Equal(t, shape, ds.Radiance.Shape())
	assert.Equal(t, shape, ds.WhiteRef.Shape())
	assert.Equal(t, shape, ds.DarkRef.Shape())
	assert.Equal(t, shape, ds.Reflectance.Shape())
	assert.Equal(t, [3]int{3, 3, 5}, ds.RGBSensor.Shape())
	assert.Equal(t, [3]int{3, 3, 5}, ds.SimulatedRGB.Shape())

	assert.Equal(t, testRadiance(3, 2, 4), ds.Radiance.At(3, 2, 4))
	assert.Equal(t, float32(testWhite), ds.WhiteRef.At(1, 1, 1))
	assert.Equal(t, float32(testDark), ds.DarkRef.At(2, 0, 3))
	assert.Equal(t, float32(testReflectance), ds.Reflectance.At(0, 2, 0))
	assert.Equal(t, uint8(7), ds.RGBSensor.At(2, 1, 1))
	assert.Equal(t, uint8(99), ds.SimulatedRGB.At(2, 1, 1))

	v, ok := ds.Metadata.Get("datetime")
	assert.True(t, ok)
	assert.Equal(t, "2019-07-15 12:31:18", v)

	// Band count differs from the wavelength table in this small fixture
	assert.True(t, log.Contains("Radiance has 4 bands, expected 204"))
	// Headers written by the fixture have no map info
	assert.True(t, log.Contains("DEBUG: Ignoring:"))
}

func Test_ReadWavelengthsAreACopy(t *testing.T) {
	w := Wavelengths()
	w[0] = -1
	assert.Equal(t, 397.32, Wavelengths()[0])
}

func Test_ReadRootMissing(t *testing.T) {
	ds, err := NewReader(nil, nil, nil, nil).Read(filepath.Join(t.TempDir(), "not-here"))
	assert.Nil(t, ds)
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.AcquisitionRootNotFound))
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.ResourceNotFound))
	assert.Contains(t, err.Error(), "path to acquisition does not exist")
}

func Test_ReadFailsFastOnMissingProduct(t *testing.T) {
	for _, kind := range []ProductKind{WhiteRef, DarkRef, Radiance, Reflectance, RGBSensor, SimulatedRGB, MetadataFile} {
		root, err := writeTestAcquisition(t.TempDir(), "366", 2, 2, 2)
		require.NoError(t, err)
		require.NoError(t, os.Remove(ProductPath(root, kind)))

		ds, err := NewReader(nil, nil, nil, nil).Read(root)
		assert.Nil(t, ds, kind.String())
		assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.ResourceNotFound), kind.String())
		assert.Contains(t, err.Error(), ProductPath(root, kind))
	}
}

func Test_ReadWithPick(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 2, 2, 3)
	require.NoError(t, err)
	// Pick mode never needs the camera's reflectance
	require.NoError(t, os.Remove(reflectancePath(root, "366")))

	r := NewReader(nil, FixedRegionPicker{Region: Region{X: 0, Y: 0, Width: 1, Height: 1}}, nil, nil)
	ds, err := r.ReadWithOptions(root, ReadOptions{WhiteRef: WhiteRefPick})
	require.NoError(t, err)

	// The picked pixel itself is at full reflectance
	assert.InDelta(t, 1.0, ds.Reflectance.At(0, 0, 0), 1e-6)
	assert.InDelta(t, 1.0, ds.Reflectance.At(1, 0, 0), 1e-6)
	assert.Equal(t, ds.Radiance.Shape(), ds.Reflectance.Shape())
}

func Test_FlattenNamesAndShapes(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 2, 3, 4)
	require.NoError(t, err)

	ds, err := NewReader(nil, nil, nil, nil).Read(root)
	require.NoError(t, err)

	// Drop one metadata value to check its key is still written, as an empty string
	ds.Metadata["integration_time"] = nil

	entries := Flatten(ds)
	names := container.SortedNames(entries)
	expNames := []string{"darkref", "datacube_angle", "datetime", "integration_time", "radiance", "reflectance", "rgb_sensor", "simulated_rgb", "wavelengths", "whiteref"}
	if diff := cmp.Diff(expNames, names); diff != "" {
		t.Errorf("entry names mismatch (-want +got):\n%v", diff)
	}

	for name, entry := range entries {
		assert.NoError(t, entry.Validate(), name)
	}

	assert.Equal(t, []uint64{204}, entries["wavelengths"].Dims)
	assert.Equal(t, []uint64{2, 3, 4}, entries["radiance"].Dims)
	assert.Equal(t, []uint64{3, 3, 4}, entries["rgb_sensor"].Dims)
	assert.Equal(t, []string{"2019-07-15 12:31:18"}, entries["datetime"].Data)
	assert.Equal(t, []uint64{1}, entries["integration_time"].Dims)
	assert.Equal(t, []string{""}, entries["integration_time"].Data)
}

func Test_ConvertIsRepeatable(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 2, 2, 2)
	require.NoError(t, err)

	w := &container.MemWriter{}
	r := NewReader(nil, nil, w, nil)

	require.NoError(t, r.Convert(root, "out/366.h5"))
	first := w.Written["out/366.h5"]
	require.NoError(t, r.Convert(root, "out/366.h5"))

	require.Len(t, w.Written, 1)
	if diff := cmp.Diff(first, w.Written["out/366.h5"]); diff != "" {
		t.Errorf("second conversion differs (-first +second):\n%v", diff)
	}
}

func Test_ConvertWritesNothingOnFailure(t *testing.T) {
	root, err := writeTestAcquisition(t.TempDir(), "366", 2, 2, 2)
	require.NoError(t, err)
	require.NoError(t, os.Remove(whiteRefPath(root, "366")))

	w := &container.MemWriter{}
	err = NewReader(nil, nil, w, nil).Convert(root, "out/366.h5")
	assert.True(t, errorwithstatus.HasStatus(err, errorwithstatus.ResourceNotFound))
	assert.Empty(t, w.Written)
}

func Test_ConvertToHDF5(t *testing.T) {
	dir := t.TempDir()
	root, err := writeTestAcquisition(dir, "366", 2, 2, 3)
	require.NoError(t, err)

	outPath := filepath.Join(dir, "366.h5")
	require.NoError(t, os.WriteFile(outPath, []byte("stale contents"), 0644))

	ds, err := NewReader(nil, nil, nil, nil).ConvertWithOptions(root, outPath, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "366", ds.Name)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(written, []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}))

	f, err := hdf5.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	metadata := map[string][]string{}
	f.Walk(func(path string, obj hdf5.Object) {
		if ds, ok := obj.(*hdf5.Dataset); ok {
			if values, err := ds.ReadStrings(); err == nil {
				metadata[path] = values
			}
		}
	})
	exp := map[string][]string{
		"/datetime":         {"2019-07-15 12:31:18"},
		"/datacube_angle":   {"-1"},
		"/integration_time": {"20"},
	}
	if diff := cmp.Diff(exp, metadata); diff != "" {
		t.Errorf("metadata read back from container mismatch (-want +got):\n%v", diff)
	}
}

func Test_Summarise(t *testing.T) {
	dir := t.TempDir()
	root, err := writeTestAcquisition(dir, "366", 2, 3, 4)
	require.NoError(t, err)

	ds, err := NewReader(nil, nil, nil, nil).Read(root)
	require.NoError(t, err)

	fs := &fileaccess.FSAccess{}
	outPath := filepath.Join(dir, "out", "366.h5")
	summaryPath, err := Summarise(fs, ds, outPath, WhiteRefCaptured, &timestamper.MockTimeNowStamper{QueuedTimeStamps: []int64{1668142579}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "366-summary.json"), summaryPath)

	var read Summary
	written, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(written, &read))

	exp := Summary{
		Acquisition:         "366",
		Container:           "366.h5",
		WhiteRef:            "captured",
		Bands:               2,
		Rows:                3,
		Cols:                4,
		WavelengthMinNm:     397.32,
		WavelengthMaxNm:     1003.58,
		ReflectanceShape:    [3]int{2, 3, 4},
		RadianceShape:       [3]int{2, 3, 4},
		WhiteRefShape:       [3]int{2, 3, 4},
		DarkRefShape:        [3]int{2, 3, 4},
		RGBSensorShape:      [3]int{3, 3, 4},
		SimulatedRGBShape:   [3]int{3, 3, 4},
		Metadata:            map[string]string{"datetime": "2019-07-15 12:31:18", "datacube_angle": "-1", "integration_time": "20"},
		CreationUnixTimeSec: 1668142579,
	}
	if diff := cmp.Diff(exp, read); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%v", diff)
	}
}

func Test_Publish(t *testing.T) {
	dir := t.TempDir()
	containerPath := filepath.Join(dir, "366.h5")
	summaryPath := filepath.Join(dir, "366-summary.json")
	require.NoError(t, os.WriteFile(containerPath, []byte{1, 2, 3}, 0644))
	require.NoError(t, os.WriteFile(summaryPath, []byte(`{"acquisition": "366"}`), 0644))

	var mockS3 awsutil.MockS3Client
	defer mockS3.FinishTest()

	// Container already there from an earlier run, summary isn't
	mockS3.ExpHeadObjectInput = []s3.HeadObjectInput{
		{Bucket: aws.String("hsi-datasets"), Key: aws.String("field/366.h5")},
		{Bucket: aws.String("hsi-datasets"), Key: aws.String("field/366-summary.json")},
	}
	mockS3.QueuedHeadObjectOutput = []*s3.HeadObjectOutput{{}, nil}

	mockS3.ExpPutObjectInput = []s3.PutObjectInput{
		{Bucket: aws.String("hsi-datasets"), Key: aws.String("field/366.h5"), Body: bytes.NewReader([]byte{1, 2, 3})},
		{Bucket: aws.String("hsi-datasets"), Key: aws.String("field/366-summary.json"), Body: bytes.NewReader([]byte(`{"acquisition": "366"}`))},
	}
	mockS3.QueuedPutObjectOutput = []*s3.PutObjectOutput{{}, {}}

	log := &logger.MemLogger{}
	keys, err := Publish(fileaccess.MakeS3Access(&mockS3), []string{containerPath, summaryPath}, "hsi-datasets", "field", log)
	require.NoError(t, err)
	assert.Equal(t, []string{"field/366.h5", "field/366-summary.json"}, keys)
	assert.True(t, log.Contains("Replacing existing s3://hsi-datasets/field/366.h5"))
	assert.False(t, log.Contains("Replacing existing s3://hsi-datasets/field/366-summary.json"))
	assert.True(t, log.Contains("Uploading"))
	assert.NoError(t, mockS3.FinishTest())
}

func Test_PublishToLocalDir(t *testing.T) {
	dir := t.TempDir()
	containerPath := filepath.Join(dir, "366.h5")
	require.NoError(t, os.WriteFile(containerPath, []byte{1, 2, 3}, 0644))

	dest := filepath.Join(dir, "published")
	log := &logger.MemLogger{}
	keys, err := Publish(&fileaccess.FSAccess{}, []string{containerPath}, dest, "field", log)
	require.NoError(t, err)
	assert.Equal(t, []string{"field/366.h5"}, keys)

	copied, err := os.ReadFile(filepath.Join(dest, "field", "366.h5"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, copied)

	// Second time round the copy is already there
	_, err = Publish(&fileaccess.FSAccess{}, []string{containerPath}, dest, "field", log)
	require.NoError(t, err)
	assert.True(t, log.Contains("Replacing existing"))
}

func Test_PublishFailures(t *testing.T) {
	var mockS3 awsutil.MockS3Client
	remote := fileaccess.MakeS3Access(&mockS3)

	_, err := Publish(remote, []string{"a.h5"}, "", "field", &logger.NullLogger{})
	assert.Error(t, err)

	keys, err := Publish(remote, []string{filepath.Join(t.TempDir(), "missing.h5")}, "bucket", "", &logger.NullLogger{})
	assert.Error(t, err)
	assert.Empty(t, keys)

	// Upload rejected
	containerPath := filepath.Join(t.TempDir(), "366.h5")
	require.NoError(t, os.WriteFile(containerPath, []byte{1, 2, 3}, 0644))

	mockS3.ExpHeadObjectInput = []s3.HeadObjectInput{{Bucket: aws.String("bucket"), Key: aws.String("366.h5")}}
	mockS3.QueuedHeadObjectOutput = []*s3.HeadObjectOutput{nil}
	mockS3.ExpPutObjectInput = []s3.PutObjectInput{{Bucket: aws.String("bucket"), Key: aws.String("366.h5"), Body: bytes.NewReader([]byte{1, 2, 3})}}
	mockS3.QueuedPutObjectOutput = []*s3.PutObjectOutput{nil}

	keys, err = Publish(remote, []string{containerPath}, "bucket", "", &logger.NullLogger{})
	assert.Error(t, err)
	assert.Empty(t, keys)
	assert.NoError(t, mockS3.FinishTest())
}
