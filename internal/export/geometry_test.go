/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"math"
	"testing"

	"studybench/internal/domain"
)

func TestLeafRegionsSingleLeaf(t *testing.T) {
	bounds := domain.Rect{X: 10, Y: 20, Width: 100, Height: 50}
	regions, err := LeafRegions("L", nil, bounds)
	if err != nil {
		t.Fatalf("LeafRegions: %v", err)
	}
	if len(regions) != 1 || regions[0] != bounds {
		t.Fatalf("regions: %+v", regions)
	}
}

func TestLeafRegionsTileExactly(t *testing.T) {
	bounds := domain.Rect{Width: 1000, Height: 600}
	regions, err := LeafRegions("VHLLL", []float64{0.37, 0.61}, bounds)
	if err != nil {
		t.Fatalf("LeafRegions: %v", err)
	}
	if len(regions) != 3 {
		t.Fatalf("region count: %d", len(regions))
	}
	// Column split: left column width is 370 exactly, right is the remainder.
	left := bounds.Width * 0.37
	if regions[0].Width != left || regions[1].Width != left {
		t.Fatalf("left column widths: %v %v", regions[0].Width, regions[1].Width)
	}
	if regions[2].X != left || regions[2].Width != bounds.Width-left {
		t.Fatalf("right column: %+v", regions[2])
	}
	// Row split inside the left column: heights sum exactly.
	if regions[0].Height+regions[1].Height != bounds.Height {
		t.Fatalf("row heights do not tile: %v + %v", regions[0].Height, regions[1].Height)
	}
	if regions[1].Y != regions[0].Y+regions[0].Height {
		t.Fatalf("rows overlap or gap: %+v %+v", regions[0], regions[1])
	}
	// Total area is preserved.
	var area float64
	for _, r := range regions {
		area += r.Width * r.Height
	}
	if math.Abs(area-bounds.Width*bounds.Height) > 1e-9 {
		t.Fatalf("area: %v", area)
	}
}

func TestLeafRegionsDegenerateRatio(t *testing.T) {
	regions, err := LeafRegions("VLL", []float64{1.0}, domain.Rect{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("LeafRegions: %v", err)
	}
	if regions[1].Width != 0 {
		t.Fatalf("degenerate split should yield a zero-width region: %+v", regions[1])
	}
}

func TestLeafRegionsErrors(t *testing.T) {
	bounds := domain.Rect{Width: 10, Height: 10}
	cases := []struct {
		desc string
		fs   []float64
	}{
		{"V", []float64{0.5}},
		{"VLL", nil},
		{"VLL", []float64{0.5, 0.5}},
		{"LL", nil},
		{"XL", nil},
	}
	for _, c := range cases {
		if _, err := LeafRegions(c.desc, c.fs, bounds); err == nil {
			t.Fatalf("descriptor %q with %v should fail", c.desc, c.fs)
		}
	}
}

func TestRegionLabel(t *testing.T) {
	layout := domain.Layout{
		Containers: []domain.Container{
			{Panes: []domain.Pane{{Title: "lecture"}}, Selected: 0},
			{Panes: []domain.Pane{}, Selected: -1},
		},
	}
	if got := regionLabel(layout, 0); got != "1 lecture" {
		t.Fatalf("label: %q", got)
	}
	if got := regionLabel(layout, 1); got != "2" {
		t.Fatalf("empty container label: %q", got)
	}
}
