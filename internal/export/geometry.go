/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a workspace's split layout into shareable diagram
// files (PDF, PNG, SVG). The geometry comes straight from the persisted
// structure descriptor and fraction vector; nothing here touches the live
// board.
package export

import (
	"fmt"

	"studybench/internal/domain"
)

// LeafRegions computes the rectangle of every container from a structure
// descriptor and its fraction vector, tiling bounds exactly: for each split
// the primary child gets extent*fraction and the secondary child the exact
// remainder. Rectangles come back in canonical leaf order.
func LeafRegions(structure string, fractions []float64, bounds domain.Rect) ([]domain.Rect, error) {
	g := &geom{desc: structure, fractions: fractions}
	if err := g.region(bounds); err != nil {
		return nil, err
	}
	if g.pos != len(g.desc) {
		return nil, fmt.Errorf("structure descriptor: %d trailing tokens", len(g.desc)-g.pos)
	}
	if g.fpos != len(g.fractions) {
		return nil, fmt.Errorf("fraction vector: %d values for %d splits", len(g.fractions), g.fpos)
	}
	return g.out, nil
}

type geom struct {
	desc      string
	fractions []float64
	pos       int
	fpos      int
	out       []domain.Rect
}

func (g *geom) region(r domain.Rect) error {
	if g.pos >= len(g.desc) {
		return fmt.Errorf("structure descriptor: truncated")
	}
	tok := g.desc[g.pos]
	g.pos++
	switch tok {
	case 'L':
		g.out = append(g.out, r)
		return nil
	case 'V', 'H':
		if g.fpos >= len(g.fractions) {
			return fmt.Errorf("fraction vector shorter than split count")
		}
		frac := g.fractions[g.fpos]
		g.fpos++
		var primary, secondary domain.Rect
		if tok == 'V' {
			wp := r.Width * frac
			primary = domain.Rect{X: r.X, Y: r.Y, Width: wp, Height: r.Height}
			secondary = domain.Rect{X: r.X + wp, Y: r.Y, Width: r.Width - wp, Height: r.Height}
		} else {
			hp := r.Height * frac
			primary = domain.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: hp}
			secondary = domain.Rect{X: r.X, Y: r.Y + hp, Width: r.Width, Height: r.Height - hp}
		}
		if err := g.region(primary); err != nil {
			return err
		}
		return g.region(secondary)
	default:
		return fmt.Errorf("structure descriptor: invalid token %q", tok)
	}
}

// regionLabel is the caption for a container region: its ordinal in leaf
// order plus the selected pane's title, if any.
func regionLabel(layout domain.Layout, i int) string {
	label := fmt.Sprintf("%d", i+1)
	if i < len(layout.Containers) {
		c := layout.Containers[i]
		if c.Selected >= 0 && c.Selected < len(c.Panes) && c.Panes[c.Selected].Title != "" {
			label += " " + c.Panes[c.Selected].Title
		}
	}
	return label
}
