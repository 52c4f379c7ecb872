package imgFormat

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
)

// ENVIHeaderPath - header written for dataPath: the extension swapped for .hdr
func ENVIHeaderPath(dataPath string) string {
	return strings.TrimSuffix(dataPath, filepath.Ext(dataPath)) + ".hdr"
}

// WriteENVIFile - writes band-major data to dataPath in the layout described by hdr, with the
// header next to it at ENVIHeaderPath
func WriteENVIFile(dataPath string, hdr ENVIHeader, bandMajor []float32) error {
	if len(hdr.Interleave) <= 0 {
		hdr.Interleave = "bsq"
	}
	if len(bandMajor) != hdr.SampleCount() {
		return fmt.Errorf("expected %v samples, got %v", hdr.SampleCount(), len(bandMajor))
	}

	if err := os.WriteFile(ENVIHeaderPath(dataPath), []byte(FormatENVIHeader(hdr)), 0644); err != nil {
		return err
	}

	f, err := os.Create(dataPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if hdr.HeaderOffset > 0 {
		if _, err := w.Write(make([]byte, hdr.HeaderOffset)); err != nil {
			return err
		}
	}

	var order binary.ByteOrder = binary.LittleEndian
	if hdr.ByteOrder == 1 {
		order = binary.BigEndian
	}

	fileOrder := fromBandMajor(hdr, bandMajor)

	switch hdr.DataType {
	case 1:
		err = encodeSamples[uint8](w, order, fileOrder)
	case 2:
		err = encodeSamples[int16](w, order, fileOrder)
	case 3:
		err = encodeSamples[int32](w, order, fileOrder)
	case 4:
		err = encodeSamples[float32](w, order, fileOrder)
	case 5:
		err = encodeSamples[float64](w, order, fileOrder)
	case 12:
		err = encodeSamples[uint16](w, order, fileOrder)
	case 13:
		err = encodeSamples[uint32](w, order, fileOrder)
	case 14:
		err = encodeSamples[int64](w, order, fileOrder)
	case 15:
		err = encodeSamples[uint64](w, order, fileOrder)
	default:
		err = fmt.Errorf("unsupported data type: %v", hdr.DataType)
	}

	if err != nil {
		return err
	}
	return w.Flush()
}

// FormatENVIHeader - header text for hdr. Interleave defaults to bsq.
func FormatENVIHeader(hdr ENVIHeader) string {
	interleave := hdr.Interleave
	if len(interleave) <= 0 {
		interleave = "bsq"
	}

	var sb strings.Builder
	sb.WriteString("ENVI\n")
	fmt.Fprintf(&sb, "samples = %v\n", hdr.Samples)
	fmt.Fprintf(&sb, "lines = %v\n", hdr.Lines)
	fmt.Fprintf(&sb, "bands = %v\n", hdr.Bands)
	fmt.Fprintf(&sb, "header offset = %v\n", hdr.HeaderOffset)
	sb.WriteString("file type = ENVI Standard\n")
	fmt.Fprintf(&sb, "data type = %v\n", hdr.DataType)
	fmt.Fprintf(&sb, "interleave = %v\n", interleave)
	fmt.Fprintf(&sb, "byte order = %v\n", hdr.ByteOrder)
	if len(hdr.MapInfo) > 0 {
		fmt.Fprintf(&sb, "map info = {%v}\n", hdr.MapInfo)
	}
	if len(hdr.Wavelengths) > 0 {
		sb.WriteString("wavelength = {\n")
		for c, wl := range hdr.Wavelengths {
			sep := ","
			if c == len(hdr.Wavelengths)-1 {
				sep = ""
			}
			fmt.Fprintf(&sb, " %.2f%v\n", wl, sep)
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

func encodeSamples[T constraints.Integer | constraints.Float](w *bufio.Writer, order binary.ByteOrder, samples []float32) error {
	values := make([]T, len(samples))
	for c, v := range samples {
		values[c] = T(v)
	}
	return binary.Write(w, order, values)
}

func fromBandMajor(hdr ENVIHeader, bandMajor []float32) []float32 {
	interleave := hdr.Interleave
	if interleave == "bsq" || len(interleave) <= 0 {
		return bandMajor
	}

	bands, lines, width := hdr.Bands, hdr.Lines, hdr.Samples
	result := make([]float32, len(bandMajor))

	for l := 0; l < lines; l++ {
		for b := 0; b < bands; b++ {
			for s := 0; s < width; s++ {
				var writeIdx int
				if interleave == "bil" {
					writeIdx = (l*bands+b)*width + s
				} else {
					writeIdx = (l*width+s)*bands + b
				}
				result[writeIdx] = bandMajor[(b*lines+l)*width+s]
			}
		}
	}

	return result
}
