// Writes container entries to HDF5, one dataset per entry at the root of the file
package h5

import (
	"fmt"

	"github.com/pixlise/specimiq/core/container"
	"github.com/pixlise/specimiq/core/logger"
	"github.com/pkg/errors"
	"github.com/scigolib/hdf5"
)

// Writer - container.Writer producing HDF5 files
type Writer struct {
	Log logger.ILogger
}

func NewWriter(log logger.ILogger) *Writer {
	return &Writer{Log: log}
}

func (w *Writer) WriteContainer(path string, entries map[string]container.Entry) error {
	names := container.SortedNames(entries)

	// Validate everything before the file is created
	for _, name := range names {
		if err := entries[name].Validate(); err != nil {
			return fmt.Errorf("container entry %v: %v", name, err)
		}
	}

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	if err != nil {
		return errors.Wrapf(err, "failed to create %v", path)
	}

	closed := false
	defer func() {
		if !closed {
			fw.Close()
		}
	}()

	for _, name := range names {
		entry := entries[name]

		if entry.Len() <= 0 {
			// HDF5 contiguous datasets can't be empty
			w.logf("Skipping empty container entry: %v", name)
			continue
		}

		// One case per element type, the dataset is created with the matching HDF5 type
		switch data := entry.Data.(type) {
		case []float64:
			ds, err := fw.CreateDataset("/"+name, hdf5.Float64, entry.Dims)
			if err == nil {
				err = ds.Write(data)
			}
			if err != nil {
				return errors.Wrapf(err, "failed to write dataset %v", name)
			}
		case []float32:
			ds, err := fw.CreateDataset("/"+name, hdf5.Float32, entry.Dims)
			if err == nil {
				err = ds.Write(data)
			}
			if err != nil {
				return errors.Wrapf(err, "failed to write dataset %v", name)
			}
		case []uint8:
			ds, err := fw.CreateDataset("/"+name, hdf5.Uint8, entry.Dims)
			if err == nil {
				err = ds.Write(data)
			}
			if err != nil {
				return errors.Wrapf(err, "failed to write dataset %v", name)
			}
		case []string:
			ds, err := fw.CreateDataset("/"+name, hdf5.String, entry.Dims, hdf5.WithStringSize(stringSize(data)))
			if err == nil {
				err = ds.Write(data)
			}
			if err != nil {
				return errors.Wrapf(err, "failed to write dataset %v", name)
			}
		}

		w.logf("Wrote %v %v", name, entry.Dims)
	}

	closed = true
	if err := fw.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %v", path)
	}
	return nil
}

// Fixed string size for a dataset: the longest value plus its null terminator, so an empty
// string still gets a valid size
func stringSize(values []string) uint32 {
	longest := 0
	for _, v := range values {
		if len(v) > longest {
			longest = len(v)
		}
	}
	return uint32(longest + 1)
}

func (w *Writer) logf(format string, a ...interface{}) {
	if w.Log != nil {
		w.Log.Debugf(format, a...)
	}
}
