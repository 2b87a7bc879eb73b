/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"fmt"

	"studybench/internal/board"
	"studybench/internal/domain"
)

// PaneInfo resolves a live pane id to its persisted attributes. The board
// core knows nothing about pane content, so the caller (which opened the
// panes) supplies this.
type PaneInfo func(p board.PaneID) domain.Pane

// PaneLoader opens persisted pane content into a freshly created live pane.
// It must complete the load before returning: restoration is strictly
// sequential so partially initialized containers are never observed.
type PaneLoader func(p board.PaneID, src domain.Pane) error

// CaptureLayout serializes the live board into the manifest's layout
// section: structure descriptor, fraction vector, containers in canonical
// leaf order with their tab order and selection, and the focused container's
// index.
func CaptureLayout(m *board.Manager, info PaneInfo) domain.Layout {
	order := m.LeafOrder()
	layout := domain.Layout{
		Structure:  m.Structure(),
		Fractions:  m.LeftFractions(),
		Containers: make([]domain.Container, 0, len(order)),
	}
	if layout.Fractions == nil {
		layout.Fractions = []float64{}
	}
	active := m.ActiveContainer()
	for i, c := range order {
		if c == active {
			layout.Active = i
		}
		panes := m.Panes(c)
		dc := domain.Container{Panes: make([]domain.Pane, 0, len(panes)), Selected: -1}
		selected := m.SelectedPane(c)
		for j, p := range panes {
			if p == selected {
				dc.Selected = j
			}
			var dp domain.Pane
			if info != nil {
				dp = info(p)
			}
			dc.Panes = append(dc.Panes, dp)
		}
		layout.Containers = append(layout.Containers, dc)
	}
	return layout
}

// RestoreLayout rebuilds a captured layout onto a fresh single-leaf board:
// grows the structure, applies the fractions, then opens each container's
// panes in tab order through load, one at a time, restoring selection and
// focus last.
func RestoreLayout(m *board.Manager, layout domain.Layout, load PaneLoader) error {
	if !layout.Consistent() {
		return errors.New("layout sections disagree (containers/fractions/structure)")
	}
	if m.ContainerCount() != 1 {
		return errors.New("restore requires a fresh single-leaf board")
	}
	if err := m.SetStructure(layout.Structure); err != nil {
		return err
	}
	if len(layout.Fractions) > 0 {
		if err := m.SetLeftFractions(layout.Fractions); err != nil {
			return err
		}
	}
	order := m.LeafOrder()
	if len(order) != len(layout.Containers) {
		return fmt.Errorf("grew %d containers for %d persisted", len(order), len(layout.Containers))
	}
	for i, c := range order {
		dc := layout.Containers[i]
		opened := make([]board.PaneID, 0, len(dc.Panes))
		for _, dp := range dc.Panes {
			p := m.OpenPane(c)
			if load != nil {
				if err := load(p, dp); err != nil {
					return fmt.Errorf("load pane %q: %w", dp.Title, err)
				}
			}
			opened = append(opened, p)
		}
		if dc.Selected >= 0 && dc.Selected < len(opened) {
			if err := m.SelectPane(c, opened[dc.Selected]); err != nil {
				return err
			}
		}
	}
	return m.SetActive(order[layout.Active])
}
