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
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pixlise/specimiq/core/imageedit"
	"github.com/pixlise/specimiq/core/utils"
	"github.com/pkg/errors"
)

// Region - rectangle in image pixels, X/Y being the top-left corner
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func (r Region) String() string {
	return fmt.Sprintf("%v,%v,%v,%v", r.X, r.Y, r.Width, r.Height)
}

// ParseRegion - reads "x,y,width,height". Width and height must be positive.
func ParseRegion(text string) (Region, error) {
	parts := strings.Split(strings.TrimSpace(text), ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("expected x,y,width,height, got: %v", text)
	}

	values := make([]int, 4)
	for c, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Region{}, fmt.Errorf("expected x,y,width,height, got: %v", text)
		}
		values[c] = v
	}

	region := Region{X: values[0], Y: values[1], Width: values[2], Height: values[3]}
	if region.Width <= 0 || region.Height <= 0 {
		return Region{}, fmt.Errorf("region width and height must be positive, got: %v", text)
	}
	return region, nil
}

// ErrNoInteraction - returned by pickers that can't ask anyone
var ErrNoInteraction = errors.New("no interactive terminal available for picking a region")

// RegionPicker - chooses a white region given a greyscale preview of the scene
type RegionPicker interface {
	PickRegion(preview image.Image) (Region, error)
}

// FixedRegionPicker - always picks the same region, eg one supplied on the command line
type FixedRegionPicker struct {
	Region Region
}

func (p FixedRegionPicker) PickRegion(preview image.Image) (Region, error) {
	return p.Region, nil
}

// NoRegionPicker - for when nobody is there to pick
type NoRegionPicker struct {
}

func (p NoRegionPicker) PickRegion(preview image.Image) (Region, error) {
	return Region{}, ErrNoInteraction
}

// PromptRegionPicker - saves an enlarged preview as a PNG and asks on the terminal for the region
// as seen in that PNG
type PromptRegionPicker struct {
	PreviewDir string
	Scale      int
	In         io.Reader
	Out        io.Writer
	IsTerminal func() bool
}

const defaultPreviewScale = 2

// NewTerminalRegionPicker - prompts on stderr, reads stdin, only works if stdin is a terminal
func NewTerminalRegionPicker(previewDir string) *PromptRegionPicker {
	return &PromptRegionPicker{
		PreviewDir: previewDir,
		Scale:      defaultPreviewScale,
		In:         os.Stdin,
		Out:        os.Stderr,
		IsTerminal: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
}

func (p *PromptRegionPicker) PickRegion(preview image.Image) (Region, error) {
	if p.IsTerminal != nil && !p.IsTerminal() {
		return Region{}, ErrNoInteraction
	}

	scale := p.Scale
	if scale < 1 {
		scale = 1
	}

	dir := p.PreviewDir
	if len(dir) <= 0 {
		dir = os.TempDir()
	}

	scaled := imageedit.ScaleImageBy(preview, scale)
	previewPath, err := utils.WritePNGImageFile(filepath.Join(dir, "whiteref-preview"), scaled)
	if err != nil {
		return Region{}, errors.Wrap(err, "failed to write preview image")
	}

	fmt.Fprintf(p.Out, "Preview written to: %v\n", previewPath)
	fmt.Fprintf(p.Out, "Enter white region as x,y,width,height in pixels of that image: ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && (err != io.EOF || len(strings.TrimSpace(line)) <= 0) {
		return Region{}, errors.Wrap(err, "failed to read region")
	}

	picked, err := ParseRegion(line)
	if err != nil {
		return Region{}, err
	}

	// Entered in scaled pixels, cover every source pixel the picked area touches
	region := Region{
		X: picked.X / scale,
		Y: picked.Y / scale,
	}
	region.Width = (picked.X+picked.Width+scale-1)/scale - region.X
	region.Height = (picked.Y+picked.Height+scale-1)/scale - region.Y

	marked := imageedit.MarkRegion(scaled, picked.Rect(), color.RGBA{R: 255, A: 255})
	if markedPath, err := utils.WritePNGImageFile(filepath.Join(dir, "whiteref-selected"), marked); err == nil {
		fmt.Fprintf(p.Out, "Selected region %v drawn in: %v\n", region, markedPath)
	}

	return region, nil
}
