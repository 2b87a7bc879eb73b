/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"studybench/internal/domain"
	"studybench/internal/storage"
)

// SVGOptions controls the vector layout diagram. Coordinates are CSS pixels.
type SVGOptions struct {
	Width         float64
	Height        float64
	IncludeLabels bool
	RegionStroke  domain.Stroke
}

// ExportLayoutSVG renders the workspace's split layout as an SVG diagram at
// outPath. A relative outPath lands in the workspace's exports folder.
func ExportLayoutSVG(wh *storage.WorkspaceHandle, outPath string, opt SVGOptions) error {
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

	bounds := domain.Rect{Width: opt.Width, Height: opt.Height}
	regions, err := LeafRegions(layout.Structure, layout.Fractions, bounds)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		opt.Width, opt.Height, opt.Width, opt.Height)
	strokeAttr := fmt.Sprintf("rgb(%d,%d,%d)", stroke.Color.R, stroke.Color.G, stroke.Color.B)
	for i, r := range regions {
		fmt.Fprintf(&buf, `  <rect x="%g" y="%g" width="%g" height="%g" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
			r.X, r.Y, r.Width, r.Height, strokeAttr, stroke.Width)
		if opt.IncludeLabels {
			var esc bytes.Buffer
			_ = xml.EscapeText(&esc, []byte(regionLabel(layout, i)))
			fmt.Fprintf(&buf, `  <text x="%g" y="%g" font-family="sans-serif" font-size="13" fill="%s">%s</text>`+"\n",
				r.X+5, r.Y+16, strokeAttr, esc.String())
		}
	}
	buf.WriteString("</svg>\n")

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(wh.Root, "exports", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
