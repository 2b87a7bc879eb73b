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
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"studybench/internal/domain"
	"studybench/internal/storage"
)

// PDFOptions controls the PDF layout diagram. Units are points (pt); the
// page origin is top-left. Built-in Helvetica keeps labels vector without
// font embedding.
type PDFOptions struct {
	PageWidth     float64 // pt, default A4 landscape
	PageHeight    float64 // pt
	Margin        float64 // pt around the diagram
	IncludeLabels bool
	RegionStroke  domain.Stroke
}

// ExportLayoutPDF renders the workspace's split layout as a one-page PDF
// diagram at outPath. A relative outPath lands in the workspace's exports
// folder.
func ExportLayoutPDF(wh *storage.WorkspaceHandle, outPath string, opt PDFOptions) error {
	if wh == nil {
		return fmt.Errorf("workspace handle is nil")
	}
	layout := wh.Workspace.Layout
	if !layout.Consistent() {
		return fmt.Errorf("layout sections disagree; refusing to render")
	}

	if opt.PageWidth <= 0 {
		opt.PageWidth = 842
	}
	if opt.PageHeight <= 0 {
		opt.PageHeight = 595
	}
	if opt.Margin <= 0 {
		opt.Margin = 36
	}
	stroke := opt.RegionStroke
	if stroke.Width == 0 {
		stroke = domain.Stroke{Color: domain.Color{A: 255}, Width: 1}
	}

	bounds := domain.Rect{
		X:      opt.Margin,
		Y:      opt.Margin,
		Width:  opt.PageWidth - 2*opt.Margin,
		Height: opt.PageHeight - 2*opt.Margin,
	}
	regions, err := LeafRegions(layout.Structure, layout.Fractions, bounds)
	if err != nil {
		return err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: opt.PageWidth, Ht: opt.PageHeight},
		OrientationStr: "",
	})
	pdf.SetTitle(fmt.Sprintf("%s layout", wh.Workspace.Name), false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: opt.PageWidth, Ht: opt.PageHeight})

	pdf.SetDrawColor(int(stroke.Color.R), int(stroke.Color.G), int(stroke.Color.B))
	pdf.SetLineWidth(stroke.Width)
	for i, r := range regions {
		pdf.Rect(r.X, r.Y, r.Width, r.Height, "D")
		if opt.IncludeLabels {
			pdf.Text(r.X+6, r.Y+14, regionLabel(layout, i))
		}
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(wh.Root, "exports", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
