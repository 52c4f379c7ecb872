package imgFormat

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/constraints"
)

// WarningKind - class of non-fatal condition found while decoding
type WarningKind int

const (
	// NotGeoreferenced - no "map info" in the header. Expected for handheld cameras.
	NotGeoreferenced WarningKind = iota + 1

	// HeaderMismatch - header fields disagree with each other, eg wavelength count != bands
	HeaderMismatch
)

type Warning struct {
	Kind    WarningKind
	Path    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%v: %v", w.Path, w.Message)
}

// WarningHandler - called for each warning, nil means warnings are dropped
type WarningHandler func(Warning)

// ENVIRaster - decoded cube, Data is band-major: (band*Lines + line)*Samples + sample
type ENVIRaster struct {
	Header ENVIHeader
	Data   []float32
}

// ENVIDecoder - opens ENVI data files by path, reading all bands
type ENVIDecoder struct {
}

func (d ENVIDecoder) DecodeRaster(path string, onWarning WarningHandler) (ENVIRaster, error) {
	return ReadENVIFile(path, onWarning)
}

// ReadENVIFile - finds the header for dataPath, reads it and decodes the whole cube
func ReadENVIFile(dataPath string, onWarning WarningHandler) (ENVIRaster, error) {
	result := ENVIRaster{}

	hdrPath, err := FindENVIHeader(dataPath)
	if err != nil {
		return result, err
	}

	result.Header, err = ReadENVIHeaderFile(hdrPath)
	if err != nil {
		return result, err
	}

	warn := func(kind WarningKind, format string, a ...interface{}) {
		if onWarning != nil {
			onWarning(Warning{Kind: kind, Path: dataPath, Message: fmt.Sprintf(format, a...)})
		}
	}

	if !result.Header.IsGeoreferenced() {
		warn(NotGeoreferenced, "dataset has no geotransform, the identity matrix will be returned")
	}
	if len(result.Header.Wavelengths) > 0 && len(result.Header.Wavelengths) != result.Header.Bands {
		warn(HeaderMismatch, "header lists %v wavelengths for %v bands", len(result.Header.Wavelengths), result.Header.Bands)
	}

	f, err := os.Open(dataPath)
	if err != nil {
		return result, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return result, err
	}

	// Header dimensions are checked against the file before anything is allocated for them
	need := int64(result.Header.HeaderOffset) + int64(result.Header.SampleCount())*int64(result.Header.SampleBytes())
	if need > info.Size() {
		return result, fmt.Errorf("%v: header describes %v bytes of data but file is %v bytes", dataPath, need, info.Size())
	}

	result.Data, err = DecodeENVI(result.Header, f)
	if err != nil {
		return result, fmt.Errorf("failed to decode %v: %v", dataPath, err)
	}

	return result, nil
}

// DecodeENVI - reads the pixel data described by hdr from r (positioned at the start of the file)
// and returns it reordered to band-major
func DecodeENVI(hdr ENVIHeader, r io.Reader) ([]float32, error) {
	if hdr.HeaderOffset > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(hdr.HeaderOffset)); err != nil {
			return nil, fmt.Errorf("failed to skip header offset of %v bytes: %v", hdr.HeaderOffset, err)
		}
	}

	count := hdr.SampleCount()
	raw := make([]byte, count*hdr.SampleBytes())
	readBytes, err := io.ReadFull(r, raw)
	if err != nil {
		return nil, fmt.Errorf("expected %v bytes of pixel data, got %v: %v", len(raw), readBytes, err)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if hdr.ByteOrder == 1 {
		order = binary.BigEndian
	}

	var samples []float32
	switch hdr.DataType {
	case 1:
		samples, err = decodeSamples[uint8](raw, order, count)
	case 2:
		samples, err = decodeSamples[int16](raw, order, count)
	case 3:
		samples, err = decodeSamples[int32](raw, order, count)
	case 4:
		samples, err = decodeSamples[float32](raw, order, count)
	case 5:
		samples, err = decodeSamples[float64](raw, order, count)
	case 12:
		samples, err = decodeSamples[uint16](raw, order, count)
	case 13:
		samples, err = decodeSamples[uint32](raw, order, count)
	case 14:
		samples, err = decodeSamples[int64](raw, order, count)
	case 15:
		samples, err = decodeSamples[uint64](raw, order, count)
	default:
		return nil, fmt.Errorf("unsupported data type: %v", hdr.DataType)
	}

	if err != nil {
		return nil, err
	}

	return toBandMajor(hdr, samples), nil
}

func decodeSamples[T constraints.Integer | constraints.Float](raw []byte, order binary.ByteOrder, count int) ([]float32, error) {
	values := make([]T, count)
	if err := binary.Read(bytes.NewReader(raw), order, values); err != nil {
		return nil, err
	}

	result := make([]float32, count)
	for c, v := range values {
		result[c] = float32(v)
	}
	return result, nil
}

// toBandMajor - reorders file order samples into (band, line, sample)
func toBandMajor(hdr ENVIHeader, samples []float32) []float32 {
	if hdr.Interleave == "bsq" {
		return samples
	}

	bands, lines, width := hdr.Bands, hdr.Lines, hdr.Samples
	result := make([]float32, len(samples))

	for l := 0; l < lines; l++ {
		for b := 0; b < bands; b++ {
			for s := 0; s < width; s++ {
				var readIdx int
				if hdr.Interleave == "bil" {
					readIdx = (l*bands+b)*width + s
				} else {
					// bip
					readIdx = (l*width+s)*bands + b
				}
				result[(b*lines+l)*width+s] = samples[readIdx]
			}
		}
	}

	return result
}
