/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"studybench/internal/domain"
	"studybench/internal/storage"
)

// PNGOptions controls the raster layout diagram.
//   - Width/Height in pixels; defaults 1280x800.
//   - IncludeLabels draws the region ordinal and selected pane title with the
//     built-in bitmap face.
type PNGOptions struct {
	Width         int
	Height        int
	IncludeLabels bool
	RegionStroke  domain.Stroke
	Background    domain.Color
}

// ExportLayoutPNG renders the workspace's split layout as a PNG diagram at
// outPath. A relative outPath lands in the workspace's exports folder.
func ExportLayoutPNG(wh *storage.WorkspaceHandle, outPath string, opt PNGOptions) error {
	if wh == nil {
		return fmt.Errorf("workspace handle is nil")
	}
	layout := wh.Workspace.Layout
	if !layout.Consistent() {
		return fmt.Errorf("layout sections disagree; refusing to render")
	}

	if opt.Width <= 0 {
		opt.Width = 1280
	}
	if opt.Height <= 0 {
		opt.Height = 800
	}
	stroke := opt.RegionStroke
	if stroke.Width == 0 {
		stroke = domain.Stroke{Color: domain.Color{A: 255}, Width: 1}
	}
	bg := opt.Background
	if bg.A == 0 && bg.R == 0 && bg.G == 0 && bg.B == 0 {
		bg = domain.Color{R: 255, G: 255, B: 255, A: 255}
	}

	bounds := domain.Rect{Width: float64(opt.Width - 1), Height: float64(opt.Height - 1)}
	regions, err := LeafRegions(layout.Structure, layout.Fractions, bounds)
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: toRGBA(bg)}, image.Point{}, draw.Src)

	sc := toRGBA(stroke.Color)
	for i, r := range regions {
		x0 := int(math.Round(r.X))
		y0 := int(math.Round(r.Y))
		x1 := int(math.Round(r.X + r.Width))
		y1 := int(math.Round(r.Y + r.Height))
		strokeRect(img, x0, y0, x1, y1, sc)
		if opt.IncludeLabels {
			drawLabel(img, x0+5, y0+15, regionLabel(layout, i), sc)
		}
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(wh.Root, "exports", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

func toRGBA(c domain.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

// drawLabel renders text with the fixed 7x13 bitmap face.
func drawLabel(img *image.RGBA, x, y int, s string, col color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
