/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import "fmt"

// PaneContainer is the ordered, tabbed set of panes living in one leaf.
// Exactly one pane is selected whenever the container is non-empty. Each
// selection is stamped with a globally monotonic sequence number so the
// board can answer "which pane was active most recently" across containers.
// Containers are mutated only through the Manager, which holds the board
// lock.
type PaneContainer struct {
	panes    []PaneID
	selected int
	stamps   map[PaneID]uint64
}

// NewPaneContainer returns an empty container.
func NewPaneContainer() *PaneContainer {
	return &PaneContainer{selected: -1, stamps: make(map[PaneID]uint64)}
}

// Len returns the number of panes.
func (c *PaneContainer) Len() int { return len(c.panes) }

// Empty reports whether the container holds no panes.
func (c *PaneContainer) Empty() bool { return len(c.panes) == 0 }

// Panes returns the panes in tab order.
func (c *PaneContainer) Panes() []PaneID {
	out := make([]PaneID, len(c.panes))
	copy(out, c.panes)
	return out
}

// Contains reports whether p is in the container.
func (c *PaneContainer) Contains(p PaneID) bool { return c.indexOf(p) >= 0 }

// Selected returns the selected pane, or NoPane for an empty container.
func (c *PaneContainer) Selected() PaneID {
	if c.selected < 0 {
		return NoPane
	}
	return c.panes[c.selected]
}

// SelectedIndex returns the tab index of the selected pane, -1 when empty.
func (c *PaneContainer) SelectedIndex() int { return c.selected }

// Stamp returns the selection sequence number last assigned to p, 0 if p was
// never selected here.
func (c *PaneContainer) Stamp(p PaneID) uint64 { return c.stamps[p] }

// add appends p and selects it with the given sequence stamp.
func (c *PaneContainer) add(p PaneID, seq uint64) {
	if c.indexOf(p) >= 0 {
		panic(fmt.Sprintf("board: pane %d added twice to one container", p))
	}
	c.panes = append(c.panes, p)
	c.selected = len(c.panes) - 1
	c.stamps[p] = seq
}

// selectPane makes p the selected pane, stamping it. It reports false when p
// is not in the container.
func (c *PaneContainer) selectPane(p PaneID, seq uint64) bool {
	i := c.indexOf(p)
	if i < 0 {
		return false
	}
	c.selected = i
	c.stamps[p] = seq
	return true
}

// remove deletes p, keeping the remaining tab order. When the selected pane
// is removed, selection moves to the pane now occupying its index, or the
// new last pane if the removed one was last. It reports false when p is not
// in the container.
func (c *PaneContainer) remove(p PaneID) bool {
	i := c.indexOf(p)
	if i < 0 {
		return false
	}
	c.panes = append(c.panes[:i], c.panes[i+1:]...)
	delete(c.stamps, p)
	switch {
	case len(c.panes) == 0:
		c.selected = -1
	case i < c.selected:
		c.selected--
	case i == c.selected && c.selected >= len(c.panes):
		c.selected = len(c.panes) - 1
	}
	return true
}

func (c *PaneContainer) indexOf(p PaneID) int {
	for i, q := range c.panes {
		if q == p {
			return i
		}
	}
	return -1
}
