package imgFormat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pixlise/specimiq/core/utils"
)

// Reading ENVI headers, as written by the Specim IQ next to each raw cube.
// We read a strict subset of what's possible, enough to locate and decode the pixel data.
// Reference:
// https://www.nv5geospatialsoftware.com/docs/ENVIHeaderFiles.html
//
// Looks like:
// ENVI
// samples = 512
// lines = 512
// bands = 204
// header offset = 0
// data type = 12
// interleave = bil
// byte order = 0
// wavelength = {
//  397.32, 400.20, ...
// }

// ENVIHeader - the fields we care about, plus everything else as raw strings
type ENVIHeader struct {
	Samples      int
	Lines        int
	Bands        int
	HeaderOffset int
	DataType     int
	ByteOrder    int
	Interleave   string
	MapInfo      string
	Wavelengths  []float64

	Fields map[string]string
}

// Bytes per sample for each ENVI data type code we support
var enviDataTypeSizes = map[int]int{
	1:  1, // uint8
	2:  2, // int16
	3:  4, // int32
	4:  4, // float32
	5:  8, // float64
	12: 2, // uint16
	13: 4, // uint32
	14: 8, // int64
	15: 8, // uint64
}

// SampleBytes - size in bytes of one sample of this header's data type, 0 if unsupported
func (h ENVIHeader) SampleBytes() int {
	return enviDataTypeSizes[h.DataType]
}

// SampleCount - total samples in the cube. Header parsing rejects dimensions where this overflows.
func (h ENVIHeader) SampleCount() int {
	return h.Samples * h.Lines * h.Bands
}

// IsGeoreferenced - ENVI stores the geotransform in "map info". The Specim IQ never writes one.
func (h ENVIHeader) IsGeoreferenced() bool {
	return len(h.MapInfo) > 0
}

// FindENVIHeader - ENVI headers live next to the data file, either with the extension swapped
// (capture/366.raw -> capture/366.hdr) or appended (capture/366.raw.hdr). We try both in that order.
func FindENVIHeader(dataPath string) (string, error) {
	ext := filepath.Ext(dataPath)
	candidates := []string{
		strings.TrimSuffix(dataPath, ext) + ".hdr",
		dataPath + ".hdr",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no ENVI header found for %v, tried: %v", dataPath, strings.Join(candidates, ", "))
}

// ReadENVIHeaderFile - reads and parses the header at the given path
func ReadENVIHeaderFile(hdrPath string) (ENVIHeader, error) {
	hdrBytes, err := os.ReadFile(hdrPath)
	if err != nil {
		return ENVIHeader{}, err
	}

	hdr, err := ParseENVIHeader(string(hdrBytes))
	if err != nil {
		return hdr, fmt.Errorf("failed to parse ENVI header %v: %v", hdrPath, err)
	}
	return hdr, nil
}

// ParseENVIHeader - parses header text. Values in braces can span multiple lines.
func ParseENVIHeader(text string) (ENVIHeader, error) {
	hdr := ENVIHeader{Fields: map[string]string{}}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) <= 0 || strings.TrimSpace(lines[0]) != "ENVI" {
		return hdr, errors.New("expected to start with ENVI")
	}

	key := ""
	value := ""
	inBraces := false

	for _, line := range lines[1:] {
		if inBraces {
			value += " " + strings.TrimSpace(line)
			if strings.Contains(line, "}") {
				inBraces = false
				hdr.Fields[key] = trimBraces(value)
			}
			continue
		}

		line = strings.TrimSpace(line)
		if len(line) <= 0 || strings.HasPrefix(line, ";") {
			continue
		}

		eqPos := strings.Index(line, "=")
		if eqPos <= 0 {
			// Not a key = value line, ENVI ignores these
			continue
		}

		key = strings.ToLower(strings.TrimSpace(line[0:eqPos]))
		value = strings.TrimSpace(line[eqPos+1:])

		if strings.HasPrefix(value, "{") && !strings.Contains(value, "}") {
			inBraces = true
			continue
		}

		hdr.Fields[key] = trimBraces(value)
	}

	if inBraces {
		return hdr, fmt.Errorf("unterminated value for %v", key)
	}

	return hdr, hdr.readFields()
}

func trimBraces(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "{")
	value = strings.TrimSuffix(value, "}")
	return strings.TrimSpace(value)
}

func (h *ENVIHeader) readFields() error {
	var err error

	ints := []struct {
		name     string
		dest     *int
		required bool
	}{
		{"samples", &h.Samples, true},
		{"lines", &h.Lines, true},
		{"bands", &h.Bands, true},
		{"data type", &h.DataType, true},
		{"header offset", &h.HeaderOffset, false},
		{"byte order", &h.ByteOrder, false},
	}

	for _, item := range ints {
		str, ok := h.Fields[item.name]
		if !ok {
			if item.required {
				return fmt.Errorf("%v not found", item.name)
			}
			continue
		}

		*item.dest, err = strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("invalid %v: %v", item.name, err)
		}
	}

	if h.Samples <= 0 || h.Lines <= 0 || h.Bands <= 0 {
		return fmt.Errorf("invalid dimensions: samples=%v, lines=%v, bands=%v", h.Samples, h.Lines, h.Bands)
	}
	if h.SampleBytes() <= 0 {
		return fmt.Errorf("unsupported data type: %v", h.DataType)
	}
	if _, ok := utils.ProductFits(h.Samples, h.Lines, h.Bands, h.SampleBytes()); !ok {
		return fmt.Errorf("dimensions too large: samples=%v, lines=%v, bands=%v", h.Samples, h.Lines, h.Bands)
	}
	if h.ByteOrder != 0 && h.ByteOrder != 1 {
		return fmt.Errorf("unexpected byte order: %v", h.ByteOrder)
	}
	if h.HeaderOffset < 0 {
		return fmt.Errorf("invalid header offset: %v", h.HeaderOffset)
	}

	h.Interleave = strings.ToLower(h.Fields["interleave"])
	if len(h.Interleave) <= 0 {
		h.Interleave = "bsq"
	}
	if h.Interleave != "bsq" && h.Interleave != "bil" && h.Interleave != "bip" {
		return fmt.Errorf("unsupported interleave: %v", h.Interleave)
	}

	h.MapInfo = h.Fields["map info"]

	if wl, ok := h.Fields["wavelength"]; ok {
		for _, item := range strings.Split(wl, ",") {
			item = strings.TrimSpace(item)
			if len(item) <= 0 {
				continue
			}
			f, err := strconv.ParseFloat(item, 64)
			if err != nil {
				return fmt.Errorf("invalid wavelength %v: %v", item, err)
			}
			h.Wavelengths = append(h.Wavelengths, f)
		}
	}

	return nil
}
