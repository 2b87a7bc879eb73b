/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "strings"

// This file defines the persisted data model of a Study Bench workspace.
// It serializes to the human-readable bench.json manifest; the live layout
// tree in internal/board is rebuilt from it on open.

// Workspace is the root of the manifest.
type Workspace struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata,omitempty"`
	Layout   Layout   `json:"layout"`
}

// Metadata contains optional descriptive metadata for a workspace.
type Metadata struct {
	Course  string `json:"course,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Authors string `json:"authors,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Layout captures the split arrangement: the topology as a structure
// descriptor over {V,H,L}, the per-split primary fractions in the same
// preorder, and one container per leaf in canonical leaf order.
type Layout struct {
	Structure  string      `json:"structure"`
	Fractions  []float64   `json:"fractions"`
	Containers []Container `json:"containers"`
	// Active is the index (in leaf order) of the focused container.
	Active int `json:"active"`
}

// Container is the persisted form of one tabbed pane container.
type Container struct {
	Panes    []Pane `json:"panes"`
	Selected int    `json:"selected"`
}

// Pane describes one piece of content hosted in a container. The content
// itself lives outside the workspace; the manifest keeps enough to reopen it.
type Pane struct {
	Title  string  `json:"title"`
	Kind   string  `json:"kind"` // editor, notes, chart, pdf, map
	Source string  `json:"source,omitempty"`
	Scroll float64 `json:"scroll,omitempty"`
}

// Geometry and rendering primitives used by the export diagrams.

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

type Stroke struct {
	Color Color   `json:"color"`
	Width float64 `json:"width"`
}

// LeafCount returns the number of leaves the structure descriptor encodes.
func (l Layout) LeafCount() int {
	return strings.Count(l.Structure, "L")
}

// SplitCount returns the number of binary splits the descriptor encodes.
func (l Layout) SplitCount() int {
	return strings.Count(l.Structure, "V") + strings.Count(l.Structure, "H")
}

// Consistent reports whether the layout's parts agree with each other:
// containers match leaves, fractions match splits, and the active index and
// selections are in range.
func (l Layout) Consistent() bool {
	if len(l.Containers) != l.LeafCount() {
		return false
	}
	if len(l.Fractions) != l.SplitCount() {
		return false
	}
	if l.Active < 0 || l.Active >= len(l.Containers) {
		return false
	}
	for _, c := range l.Containers {
		if len(c.Panes) == 0 {
			if c.Selected != -1 {
				return false
			}
			continue
		}
		if c.Selected < 0 || c.Selected >= len(c.Panes) {
			return false
		}
	}
	return true
}
